package store

import (
	"encoding/json"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	apperrors "github.com/acework2u/ai-smart-plants/internal/errors"
)

// Snapshot names used by the persistence layer.
const (
	SnapshotPlants      = "plants"
	SnapshotActivities  = "activities"
	SnapshotPreferences = "preferences"
)

// The stores own what gets serialized and when; the persistence backend is
// the caller's concern. Hydrate validates the blob in full before touching
// the store: a malformed snapshot leaves in-memory state exactly as it was.

type plantSnapshot struct {
	Plants   []domain.Plant `json:"plants"`
	ActiveID string         `json:"activePlantId,omitempty"`
}

// Serialize renders the registry as a JSON blob.
func (s *PlantStore) Serialize() ([]byte, error) {
	s.mu.RLock()
	snapshot := plantSnapshot{
		Plants:   s.plantsLocked(),
		ActiveID: s.activeID,
	}
	s.mu.RUnlock()

	blob, err := json.Marshal(snapshot)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return blob, nil
}

// Hydrate replaces the registry's contents with the snapshot.
func (s *PlantStore) Hydrate(blob []byte) error {
	var snapshot plantSnapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeValidation, "BAD_SNAPSHOT", "plant snapshot is not valid JSON")
	}

	plants := make(map[string]domain.Plant, len(snapshot.Plants))
	order := make([]string, 0, len(snapshot.Plants))
	for _, plant := range snapshot.Plants {
		if err := s.validator.ValidatePlant(plant); err != nil {
			return err
		}
		if _, dup := plants[plant.ID]; dup {
			return apperrors.NewValidationError("id", "duplicate plant id in snapshot")
		}
		plants[plant.ID] = copyPlant(plant)
		order = append(order, plant.ID)
	}

	activeID := snapshot.ActiveID
	if _, ok := plants[activeID]; !ok {
		activeID = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plants = plants
	s.order = order
	s.activeID = activeID
	s.recomputeStatsLocked()
	return nil
}

type activitySnapshot struct {
	Entries map[string][]domain.ActivityEntry `json:"entries"`
}

// Serialize renders every plant's log as a JSON blob.
func (s *ActivityStore) Serialize() ([]byte, error) {
	s.mu.RLock()
	snapshot := activitySnapshot{Entries: make(map[string][]domain.ActivityEntry, len(s.entries))}
	for plantID, log := range s.entries {
		snapshot.Entries[plantID] = copyEntries(log)
	}
	s.mu.RUnlock()

	blob, err := json.Marshal(snapshot)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return blob, nil
}

// Hydrate replaces every log with the snapshot's contents and recomputes
// each plant's aggregates.
func (s *ActivityStore) Hydrate(blob []byte) error {
	var snapshot activitySnapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeValidation, "BAD_SNAPSHOT", "activity snapshot is not valid JSON")
	}

	entries := make(map[string][]domain.ActivityEntry, len(snapshot.Entries))
	for plantID, log := range snapshot.Entries {
		for _, entry := range log {
			if err := s.validator.ValidateActivity(entry); err != nil {
				return err
			}
		}
		if len(log) > 0 {
			entries[plantID] = copyEntries(log)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.stats = make(map[string]domain.ActivityStats, len(entries))
	for plantID := range entries {
		s.recomputeStatsLocked(plantID)
	}
	return nil
}

// Serialize renders the preference tree as a JSON blob.
func (s *PreferenceStore) Serialize() ([]byte, error) {
	s.mu.RLock()
	prefs := copyPreferences(s.prefs)
	s.mu.RUnlock()

	blob, err := json.Marshal(prefs)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return blob, nil
}

// Hydrate replaces the preference tree with the snapshot.
func (s *PreferenceStore) Hydrate(blob []byte) error {
	var prefs domain.NotificationPreferences
	if err := json.Unmarshal(blob, &prefs); err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeValidation, "BAD_SNAPSHOT", "preference snapshot is not valid JSON")
	}
	if err := s.validator.ValidatePreferences(prefs); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = copyPreferences(prefs)
	return nil
}
