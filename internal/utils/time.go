package utils

import "time"

// TimeToMinutes converts an "HH:MM" string to minutes since midnight.
// Malformed input yields 0.
func TimeToMinutes(timeStr string) int {
	t, _ := time.Parse("15:04", timeStr)
	return t.Hour()*60 + t.Minute()
}

// ValidTime24 reports whether timeStr is a well-formed "HH:MM" clock time.
func ValidTime24(timeStr string) bool {
	_, err := time.Parse("15:04", timeStr)
	return err == nil && len(timeStr) == 5
}

// ValidDateISO reports whether dateStr is a well-formed "YYYY-MM-DD" date.
func ValidDateISO(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

// MinutesOfDay returns t's wall-clock position as minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
