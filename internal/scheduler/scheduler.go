// Package scheduler plans care reminders from preferences and activity
// history. It only reads store state and hands planned batches to an
// injected Notifier; platform delivery lives outside this module.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/logger"
	"github.com/acework2u/ai-smart-plants/internal/store"
	"github.com/acework2u/ai-smart-plants/internal/utils"
)

// reminderKinds are the activity kinds reminders are planned for.
var reminderKinds = []domain.ActivityKind{domain.KindWatering, domain.KindFertilizing}

// Scheduler plans and emits reminder batches.
type Scheduler struct {
	prefs      *store.PreferenceStore
	plants     *store.PlantStore
	activities *store.ActivityStore
	notifier   domain.Notifier
}

// New creates a scheduler over the three stores
func New(prefs *store.PreferenceStore, plants *store.PlantStore, activities *store.ActivityStore, notifier domain.Notifier) *Scheduler {
	return &Scheduler{
		prefs:      prefs,
		plants:     plants,
		activities: activities,
		notifier:   notifier,
	}
}

// NextRun returns the next instant a reminder batch may fire. The
// preferred time is advanced to the next allowed day of week and shifted
// out of the quiet-hours window; shifting may roll into the following day
// when the window wraps midnight. Returns false when notifications are
// disabled or no day is allowed.
func NextRun(prefs domain.NotificationPreferences, now time.Time) (time.Time, bool) {
	if !prefs.Enabled || len(prefs.Timing.DaysOfWeek) == 0 {
		return time.Time{}, false
	}

	prefMin := utils.TimeToMinutes(prefs.Timing.PreferredTime)
	for offset := 0; offset < 8; offset++ {
		day := now.AddDate(0, 0, offset)
		candidate := time.Date(day.Year(), day.Month(), day.Day(),
			prefMin/60, prefMin%60, 0, 0, now.Location())
		if !candidate.After(now) {
			continue
		}
		if !dayAllowed(prefs.Timing.DaysOfWeek, candidate.Weekday()) {
			continue
		}
		candidate = shiftOutOfQuiet(prefs.Timing.QuietHours, candidate)
		if candidate.After(now) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

func dayAllowed(days []int, weekday time.Weekday) bool {
	for _, day := range days {
		if day == int(weekday) {
			return true
		}
	}
	return false
}

// shiftOutOfQuiet delays t to the end of the quiet-hours window when it
// falls inside one. For a wrapped window entered before midnight the end
// is on the following day.
func shiftOutOfQuiet(qh domain.QuietHours, t time.Time) time.Time {
	if !qh.Enabled || !store.InQuietWindow(qh.Start, qh.End, t) {
		return t
	}

	startMin := utils.TimeToMinutes(qh.Start)
	endMin := utils.TimeToMinutes(qh.End)
	end := time.Date(t.Year(), t.Month(), t.Day(), endMin/60, endMin%60, 0, 0, t.Location())
	if startMin > endMin && utils.MinutesOfDay(t) >= startMin {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// PlanBatch collects the reminders due at now. A plant is due for a kind
// when the gap since its last entry of that kind has reached the plant's
// average frequency for it. Returns false when notifications are disabled
// or nothing is due.
func (s *Scheduler) PlanBatch(now time.Time) (domain.ReminderBatch, bool) {
	prefs := s.prefs.Preferences()
	if !prefs.Enabled {
		return domain.ReminderBatch{}, false
	}

	batch := domain.ReminderBatch{DueAt: now}
	for _, plant := range s.plants.Plants() {
		stats := s.activities.Stats(plant.ID)
		for _, kind := range reminderKinds {
			avg, known := stats.AverageFrequencyDays[kind]
			if !known || avg <= 0 {
				continue
			}
			last, ok := s.lastEntryDay(plant.ID, kind)
			if !ok {
				continue
			}
			if now.Sub(last).Hours()/24 >= avg {
				batch.Reminders = append(batch.Reminders, domain.Reminder{
					PlantID: plant.ID,
					Kind:    kind,
					Message: fmt.Sprintf("%s is due for %s", plant.Name, kind),
				})
			}
		}
	}

	if len(batch.Reminders) == 0 {
		return domain.ReminderBatch{}, false
	}
	if prefs.SmartScheduling.Enabled && prefs.SmartScheduling.BatchSimilarNotifications {
		batch.Reminders = mergeSimilar(batch.Reminders)
	}
	return batch, true
}

// mergeSimilar collapses reminders of the same kind into one message so a
// large collection produces a single "n plants are due" nudge per kind.
func mergeSimilar(reminders []domain.Reminder) []domain.Reminder {
	byKind := make(map[domain.ActivityKind][]domain.Reminder)
	kinds := make([]domain.ActivityKind, 0)
	for _, reminder := range reminders {
		if _, seen := byKind[reminder.Kind]; !seen {
			kinds = append(kinds, reminder.Kind)
		}
		byKind[reminder.Kind] = append(byKind[reminder.Kind], reminder)
	}

	merged := make([]domain.Reminder, 0, len(kinds))
	for _, kind := range kinds {
		group := byKind[kind]
		if len(group) == 1 {
			merged = append(merged, group[0])
			continue
		}
		merged = append(merged, domain.Reminder{
			Kind:    kind,
			Message: fmt.Sprintf("%d plants are due for %s", len(group), kind),
		})
	}
	return merged
}

func (s *Scheduler) lastEntryDay(plantID string, kind domain.ActivityKind) (time.Time, bool) {
	entries := s.activities.GetFilteredActivities(plantID, domain.ActivityFilter{
		Kinds: []domain.ActivityKind{kind},
	})
	var latest time.Time
	found := false
	for _, entry := range entries {
		day, ok := parseDay(entry.DateISO)
		if !ok {
			continue
		}
		if !found || day.After(latest) {
			latest = day
			found = true
		}
	}
	return latest, found
}

func parseDay(dateISO string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", dateISO)
	return t, err == nil
}

// Run emits batches at each planned instant until the context is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next, ok := NextRun(s.prefs.Preferences(), time.Now())
		if !ok {
			// Disabled: poll until preferences change.
			next = time.Now().Add(time.Minute)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if s.prefs.IsQuietNow(time.Now()) {
			continue
		}
		batch, due := s.PlanBatch(time.Now())
		if !due {
			continue
		}
		if err := s.notifier.Notify(ctx, batch); err != nil {
			logger.Error("Reminder delivery failed", "error", err.Error(), "reminders", len(batch.Reminders))
		}
	}
}
