package services

import (
	"context"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/logger"
	"github.com/acework2u/ai-smart-plants/internal/store"
)

// ActivityService fronts the activity store with write-through persistence.
type ActivityService struct {
	store     *store.ActivityStore
	persister *Persister
}

// NewActivityService creates a new activity service
func NewActivityService(activities *store.ActivityStore, persister *Persister) *ActivityService {
	return &ActivityService{store: activities, persister: persister}
}

// AddActivity records a care event and persists the log.
func (s *ActivityService) AddActivity(ctx context.Context, input domain.ActivityInput) (string, error) {
	id, err := s.store.AddActivity(input)
	if err != nil {
		return "", err
	}
	logger.Info("Activity recorded", "activity_id", id, "plant_id", input.PlantID, "kind", input.Kind)
	return id, s.persister.Persist(ctx, store.SnapshotActivities, s.store)
}

// UpdateActivity applies a partial update and persists the log.
func (s *ActivityService) UpdateActivity(ctx context.Context, plantID, id string, patch domain.ActivityPatch) error {
	if err := s.store.UpdateActivity(plantID, id, patch); err != nil {
		return err
	}
	return s.persister.Persist(ctx, store.SnapshotActivities, s.store)
}

// DeleteActivity removes an entry and persists the log.
func (s *ActivityService) DeleteActivity(ctx context.Context, plantID, id string) error {
	s.store.DeleteActivity(plantID, id)
	return s.persister.Persist(ctx, store.SnapshotActivities, s.store)
}

// Activities returns a plant's full log, most recent first.
func (s *ActivityService) Activities(plantID string) []domain.ActivityEntry {
	return s.store.Activities(plantID)
}

// GetFilteredActivities returns the entries passing the filter.
func (s *ActivityService) GetFilteredActivities(plantID string, filter domain.ActivityFilter) []domain.ActivityEntry {
	return s.store.GetFilteredActivities(plantID, filter)
}

// Stats returns a plant's activity aggregates.
func (s *ActivityService) Stats(plantID string) domain.ActivityStats {
	return s.store.Stats(plantID)
}
