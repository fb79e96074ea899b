package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/store"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

// monday is a fixed reference instant: Monday 2025-06-16, 08:00 UTC.
var monday = time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)

func TestNextRun(t *testing.T) {
	t.Run("same day when preferred time is still ahead", func(t *testing.T) {
		prefs := domain.DefaultNotificationPreferences()
		next, ok := NextRun(prefs, monday)
		require.True(t, ok)
		require.Equal(t, monday.Add(time.Hour), next) // 09:00 today
	})

	t.Run("rolls to the next day once preferred time has passed", func(t *testing.T) {
		prefs := domain.DefaultNotificationPreferences()
		next, ok := NextRun(prefs, monday.Add(2*time.Hour)) // 10:00
		require.True(t, ok)
		require.Equal(t, time.Date(2025, 6, 17, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("skips to the next allowed weekday", func(t *testing.T) {
		prefs := domain.DefaultNotificationPreferences()
		prefs.Timing.DaysOfWeek = []int{int(time.Wednesday)}
		next, ok := NextRun(prefs, monday)
		require.True(t, ok)
		require.Equal(t, time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("shifts out of a linear quiet window", func(t *testing.T) {
		prefs := domain.DefaultNotificationPreferences()
		prefs.Timing.QuietHours = domain.QuietHours{Enabled: true, Start: "08:30", End: "10:00"}
		next, ok := NextRun(prefs, monday)
		require.True(t, ok)
		require.Equal(t, time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC), next)
	})

	t.Run("wrapped quiet window delays into the next day", func(t *testing.T) {
		prefs := domain.DefaultNotificationPreferences()
		prefs.Timing.PreferredTime = "23:00"
		prefs.Timing.QuietHours = domain.QuietHours{Enabled: true, Start: "22:00", End: "06:00"}
		next, ok := NextRun(prefs, monday)
		require.True(t, ok)
		require.Equal(t, time.Date(2025, 6, 17, 6, 0, 0, 0, time.UTC), next)
	})

	t.Run("disabled preferences plan nothing", func(t *testing.T) {
		prefs := domain.DefaultNotificationPreferences()
		prefs.Enabled = false
		_, ok := NextRun(prefs, monday)
		require.False(t, ok)

		prefs = domain.DefaultNotificationPreferences()
		prefs.Timing.DaysOfWeek = nil
		_, ok = NextRun(prefs, monday)
		require.False(t, ok)
	})
}

func newTestScheduler(t *testing.T) (*Scheduler, *store.PlantStore, *store.ActivityStore, *store.PreferenceStore) {
	t.Helper()
	validator := validation.NewEntityValidator()
	plants := store.NewPlantStore(validator)
	activities := store.NewActivityStore(validator)
	prefs := store.NewPreferenceStore(validator)
	return New(prefs, plants, activities, nil), plants, activities, prefs
}

func water(t *testing.T, activities *store.ActivityStore, plantID, date string) {
	t.Helper()
	_, err := activities.AddActivity(domain.ActivityInput{
		PlantID: plantID,
		Kind:    domain.KindWatering,
		DateISO: date,
	})
	require.NoError(t, err)
}

func TestPlanBatch(t *testing.T) {
	t.Run("plant is due once the average gap has elapsed", func(t *testing.T) {
		sched, plants, activities, _ := newTestScheduler(t)
		id, err := plants.AddPlant(domain.PlantInput{Name: "Monstera"})
		require.NoError(t, err)
		water(t, activities, id, "2025-01-01")
		water(t, activities, id, "2025-01-04") // average gap: 3 days

		_, due := sched.PlanBatch(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
		require.False(t, due)

		batch, due := sched.PlanBatch(time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC))
		require.True(t, due)
		require.Len(t, batch.Reminders, 1)
		require.Equal(t, id, batch.Reminders[0].PlantID)
		require.Equal(t, domain.KindWatering, batch.Reminders[0].Kind)
		require.Contains(t, batch.Reminders[0].Message, "Monstera")
	})

	t.Run("single entry gives no frequency and no reminder", func(t *testing.T) {
		sched, plants, activities, _ := newTestScheduler(t)
		id, err := plants.AddPlant(domain.PlantInput{Name: "Aloe"})
		require.NoError(t, err)
		water(t, activities, id, "2025-01-01")

		_, due := sched.PlanBatch(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		require.False(t, due)
	})

	t.Run("similar reminders merge into one nudge per kind", func(t *testing.T) {
		sched, plants, activities, _ := newTestScheduler(t)
		for _, name := range []string{"Monstera", "Aloe", "Fern"} {
			id, err := plants.AddPlant(domain.PlantInput{Name: name})
			require.NoError(t, err)
			water(t, activities, id, "2025-01-01")
			water(t, activities, id, "2025-01-03")
		}

		batch, due := sched.PlanBatch(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
		require.True(t, due)
		require.Len(t, batch.Reminders, 1)
		require.Equal(t, "3 plants are due for watering", batch.Reminders[0].Message)
	})

	t.Run("merging is off when batching is disabled", func(t *testing.T) {
		sched, plants, activities, prefs := newTestScheduler(t)
		off := false
		require.NoError(t, prefs.UpdateGlobal(domain.PreferencesPatch{
			SmartScheduling: &domain.SmartSchedulingPatch{BatchSimilarNotifications: &off},
		}))
		for _, name := range []string{"Monstera", "Aloe"} {
			id, err := plants.AddPlant(domain.PlantInput{Name: name})
			require.NoError(t, err)
			water(t, activities, id, "2025-01-01")
			water(t, activities, id, "2025-01-03")
		}

		batch, due := sched.PlanBatch(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
		require.True(t, due)
		require.Len(t, batch.Reminders, 2)
	})

	t.Run("disabled notifications plan nothing", func(t *testing.T) {
		sched, plants, activities, prefs := newTestScheduler(t)
		off := false
		require.NoError(t, prefs.UpdateGlobal(domain.PreferencesPatch{Enabled: &off}))
		id, err := plants.AddPlant(domain.PlantInput{Name: "Monstera"})
		require.NoError(t, err)
		water(t, activities, id, "2025-01-01")
		water(t, activities, id, "2025-01-03")

		_, due := sched.PlanBatch(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
		require.False(t, due)
	})
}
