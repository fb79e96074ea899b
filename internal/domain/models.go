package domain

import (
	"time"
)

// PlantStatus is the coarse health classification of a plant.
type PlantStatus string

const (
	StatusHealthy  PlantStatus = "healthy"
	StatusWarning  PlantStatus = "warning"
	StatusCritical PlantStatus = "critical"
)

// ValidPlantStatus reports whether s is one of the known statuses.
func ValidPlantStatus(s PlantStatus) bool {
	switch s {
	case StatusHealthy, StatusWarning, StatusCritical:
		return true
	}
	return false
}

// StatusFromHealthScore maps an analysis health score (0-100) to a status.
// Scores on a 0-1 scale are normalized first.
func StatusFromHealthScore(score float64) PlantStatus {
	if score <= 1.0 {
		score *= 100
	}
	switch {
	case score >= 70:
		return StatusHealthy
	case score >= 40:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// Plant is a tracked plant. ID is assigned once and never reused.
type Plant struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	ScientificName string            `json:"scientificName,omitempty"`
	Status         PlantStatus       `json:"status"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ActivityKind is the type of a care activity.
type ActivityKind string

const (
	KindWatering    ActivityKind = "watering"
	KindFertilizing ActivityKind = "fertilizing"
	KindSpraying    ActivityKind = "spraying"
	KindRepotting   ActivityKind = "repotting"
	KindLeafCheck   ActivityKind = "leafcheck"
)

// ActivityKinds lists every known kind in a fixed order.
var ActivityKinds = []ActivityKind{
	KindWatering,
	KindFertilizing,
	KindSpraying,
	KindRepotting,
	KindLeafCheck,
}

// ValidActivityKind reports whether k is one of the known kinds.
func ValidActivityKind(k ActivityKind) bool {
	for _, known := range ActivityKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ActivitySource records who created an activity entry.
type ActivitySource string

const (
	SourceUser      ActivitySource = "user"
	SourceAI        ActivitySource = "ai"
	SourceScheduled ActivitySource = "scheduled"
)

// ValidActivitySource reports whether s is one of the known sources.
func ValidActivitySource(s ActivitySource) bool {
	switch s {
	case SourceUser, SourceAI, SourceScheduled:
		return true
	}
	return false
}

// NPK is a fertilizer ratio. Each component is a numeric string.
type NPK struct {
	N string `json:"n"`
	P string `json:"p"`
	K string `json:"k"`
}

// ActivityEntry is a single care event belonging to one plant's log.
// PlantID is an advisory reference: deleting a plant does not delete its
// entries, so an entry may outlive its plant.
type ActivityEntry struct {
	ID         string         `json:"id"`
	PlantID    string         `json:"plantId"`
	Kind       ActivityKind   `json:"kind"`
	Quantity   string         `json:"quantity,omitempty"`
	Unit       string         `json:"unit,omitempty"`
	NPK        *NPK           `json:"npk,omitempty"`
	Note       string         `json:"note,omitempty"`
	DateISO    string         `json:"dateISO"`
	Time24     string         `json:"time24,omitempty"`
	Source     ActivitySource `json:"source"`
	Confidence float64        `json:"confidence,omitempty"`
}

// DeliveryChannels controls per-channel notification delivery.
type DeliveryChannels struct {
	Push      bool `json:"push"`
	Sound     bool `json:"sound"`
	Vibration bool `json:"vibration"`
	Badge     bool `json:"badge"`
}

// SmartScheduling controls adaptive reminder behavior.
type SmartScheduling struct {
	Enabled                   bool `json:"enabled"`
	WeatherIntegration        bool `json:"weatherIntegration"`
	SeasonalAdjustments       bool `json:"seasonalAdjustments"`
	BatchSimilarNotifications bool `json:"batchSimilarNotifications"`
	PriorityBasedDelivery     bool `json:"priorityBasedDelivery"`
}

// QuietHours is a daily suppression window. The interval is circular on a
// 24h clock: Start "22:00" / End "06:00" covers late evening through dawn.
type QuietHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"` // "HH:MM"
	End     string `json:"end"`   // "HH:MM"
}

// NotificationTiming controls when reminders fire.
type NotificationTiming struct {
	PreferredTime string     `json:"preferredTime"` // "HH:MM"
	DaysOfWeek    []int      `json:"daysOfWeek"`    // 0 = Sunday .. 6 = Saturday
	QuietHours    QuietHours `json:"quietHours"`
}

// NotificationPreferences is the process-wide preference tree, one per
// user/device. Enabled gates the effect of every child setting without
// erasing stored values.
type NotificationPreferences struct {
	Enabled         bool               `json:"enabled"`
	Delivery        DeliveryChannels   `json:"delivery"`
	SmartScheduling SmartScheduling    `json:"smartScheduling"`
	Timing          NotificationTiming `json:"timing"`
}

// DefaultNotificationPreferences returns the canonical default tree used at
// first run and by ResetToDefaults.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		Enabled: true,
		Delivery: DeliveryChannels{
			Push:      true,
			Sound:     true,
			Vibration: true,
			Badge:     true,
		},
		SmartScheduling: SmartScheduling{
			Enabled:                   true,
			WeatherIntegration:        false,
			SeasonalAdjustments:       true,
			BatchSimilarNotifications: true,
			PriorityBasedDelivery:     false,
		},
		Timing: NotificationTiming{
			PreferredTime: "09:00",
			DaysOfWeek:    []int{0, 1, 2, 3, 4, 5, 6},
			QuietHours: QuietHours{
				Enabled: false,
				Start:   "22:00",
				End:     "08:00",
			},
		},
	}
}

// PlantStats are aggregates over the whole plant collection, recomputed at
// the end of every mutating store call.
type PlantStats struct {
	Total             int     `json:"total"`
	HealthyCount      int     `json:"healthyCount"`
	WarningCount      int     `json:"warningCount"`
	CriticalCount     int     `json:"criticalCount"`
	HealthyPercentage float64 `json:"healthyPercentage"`
}

// ActivityStats are per-plant aggregates over one plant's log.
type ActivityStats struct {
	TotalActivities      int                      `json:"totalActivities"`
	ByKind               map[ActivityKind]int     `json:"byKind"`
	AverageFrequencyDays map[ActivityKind]float64 `json:"averageFrequencyDays"`
}

// ActivityFilter selects entries from a plant's log. All set predicates
// must hold for an entry to pass.
type ActivityFilter struct {
	Kinds       []ActivityKind  `json:"kinds,omitempty"`
	DateRange   *DateRange      `json:"dateRange,omitempty"`
	HasQuantity *bool           `json:"hasQuantity,omitempty"`
	Source      *ActivitySource `json:"source,omitempty"`
}

// DateRange is an inclusive calendar-day interval over DateISO values.
type DateRange struct {
	Start string `json:"start"` // "YYYY-MM-DD"
	End   string `json:"end"`   // "YYYY-MM-DD"
}
