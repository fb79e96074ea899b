package services

import (
	"context"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/logger"
	"github.com/acework2u/ai-smart-plants/internal/store"
)

// PlantService fronts the plant store with write-through persistence.
// Mutations commit in memory first; a snapshot failure is surfaced so the
// caller can retry persistence, but reads keep serving the committed
// in-memory state.
type PlantService struct {
	store     *store.PlantStore
	persister *Persister
}

// NewPlantService creates a new plant service
func NewPlantService(plants *store.PlantStore, persister *Persister) *PlantService {
	return &PlantService{store: plants, persister: persister}
}

// AddPlant inserts a plant and persists the registry. The returned id is
// valid even when persistence fails.
func (s *PlantService) AddPlant(ctx context.Context, input domain.PlantInput) (string, error) {
	id, err := s.store.AddPlant(input)
	if err != nil {
		return "", err
	}
	logger.Info("Plant added", "plant_id", id, "name", input.Name)
	return id, s.persister.Persist(ctx, store.SnapshotPlants, s.store)
}

// UpdatePlant applies a partial update and persists the registry.
func (s *PlantService) UpdatePlant(ctx context.Context, id string, patch domain.PlantPatch) error {
	if err := s.store.UpdatePlant(id, patch); err != nil {
		return err
	}
	return s.persister.Persist(ctx, store.SnapshotPlants, s.store)
}

// DeletePlant removes a plant and persists the registry.
func (s *PlantService) DeletePlant(ctx context.Context, id string) error {
	s.store.DeletePlant(id)
	logger.Info("Plant deleted", "plant_id", id)
	return s.persister.Persist(ctx, store.SnapshotPlants, s.store)
}

// SelectPlant marks a plant as active and persists the registry.
func (s *PlantService) SelectPlant(ctx context.Context, id string) error {
	s.store.SelectPlant(id)
	return s.persister.Persist(ctx, store.SnapshotPlants, s.store)
}

// ActivePlant resolves the current selection.
func (s *PlantService) ActivePlant() (domain.Plant, bool) {
	return s.store.ActivePlant()
}

// Plant returns a single plant by id.
func (s *PlantService) Plant(id string) (domain.Plant, bool) {
	return s.store.Plant(id)
}

// Plants returns every plant in insertion order.
func (s *PlantService) Plants() []domain.Plant {
	return s.store.Plants()
}

// SearchPlants matches plant names case-insensitively.
func (s *PlantService) SearchPlants(query string) []domain.Plant {
	return s.store.SearchPlants(query)
}

// PlantsByStatus filters plants by status.
func (s *PlantService) PlantsByStatus(status domain.PlantStatus) []domain.Plant {
	return s.store.PlantsByStatus(status)
}

// Stats returns the registry aggregates.
func (s *PlantService) Stats() domain.PlantStats {
	return s.store.Stats()
}
