package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

func TestPlantSnapshotRoundTrip(t *testing.T) {
	validator := validation.NewEntityValidator()
	source := NewPlantStore(validator)

	id, err := source.AddPlant(domain.PlantInput{Name: "Monstera Deliciosa", Status: domain.StatusWarning})
	require.NoError(t, err)
	_, err = source.AddPlant(domain.PlantInput{Name: "Snake Plant", Status: domain.StatusHealthy})
	require.NoError(t, err)
	source.SelectPlant(id)

	blob, err := source.Serialize()
	require.NoError(t, err)

	restored := NewPlantStore(validator)
	require.NoError(t, restored.Hydrate(blob))

	require.Equal(t, source.Plants(), restored.Plants())
	require.Equal(t, source.Stats(), restored.Stats())

	active, ok := restored.ActivePlant()
	require.True(t, ok)
	require.Equal(t, id, active.ID)
}

func TestPlantHydrateRejectsBadBlob(t *testing.T) {
	validator := validation.NewEntityValidator()
	store := NewPlantStore(validator)
	_, err := store.AddPlant(domain.PlantInput{Name: "Monstera Deliciosa"})
	require.NoError(t, err)
	before := store.Plants()

	require.Error(t, store.Hydrate([]byte("not json")))
	require.Error(t, store.Hydrate([]byte(`{"plants":[{"id":"","name":"x","status":"healthy"}]}`)))

	// a failed hydrate leaves the store exactly as it was
	require.Equal(t, before, store.Plants())
	require.Equal(t, 1, store.Stats().Total)
}

func TestActivitySnapshotRoundTrip(t *testing.T) {
	validator := validation.NewEntityValidator()
	source := NewActivityStore(validator)

	_, err := source.AddActivity(domain.ActivityInput{
		PlantID: "p1",
		Kind:    domain.KindFertilizing,
		NPK:     &domain.NPK{N: "15", P: "5", K: "10"},
		DateISO: "2025-01-10",
	})
	require.NoError(t, err)
	_, err = source.AddActivity(domain.ActivityInput{
		PlantID: "p1",
		Kind:    domain.KindWatering,
		DateISO: "2025-01-12",
	})
	require.NoError(t, err)

	blob, err := source.Serialize()
	require.NoError(t, err)

	restored := NewActivityStore(validator)
	require.NoError(t, restored.Hydrate(blob))

	require.Equal(t, source.Activities("p1"), restored.Activities("p1"))
	require.Equal(t, source.Stats("p1"), restored.Stats("p1"))
}

func TestActivityHydrateValidatesEntries(t *testing.T) {
	validator := validation.NewEntityValidator()
	store := NewActivityStore(validator)

	// NPK on a watering entry violates the invariant even inside a snapshot
	bad := []byte(`{"entries":{"p1":[{"id":"a1","plantId":"p1","kind":"watering","npk":{"n":"1","p":"1","k":"1"},"dateISO":"2025-01-10","source":"user"}]}}`)
	require.Error(t, store.Hydrate(bad))
	require.Empty(t, store.Activities("p1"))
}

func TestPreferenceSnapshotRoundTrip(t *testing.T) {
	validator := validation.NewEntityValidator()
	source := NewPreferenceStore(validator)

	enabled := true
	start := "21:30"
	require.NoError(t, source.UpdateGlobal(domain.PreferencesPatch{
		Timing: &domain.TimingPatch{
			QuietHours: &domain.QuietHoursPatch{Enabled: &enabled, Start: &start},
		},
	}))

	blob, err := source.Serialize()
	require.NoError(t, err)

	restored := NewPreferenceStore(validator)
	require.NoError(t, restored.Hydrate(blob))
	require.Equal(t, source.Preferences(), restored.Preferences())

	require.Error(t, restored.Hydrate([]byte(`{"timing":{"preferredTime":"nope"}}`)))
	require.Equal(t, source.Preferences(), restored.Preferences())
}
