package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

// PlantStore is the authoritative in-memory plant registry. Every mutating
// method completes validate -> mutate -> recompute stats before unlocking,
// so readers never observe a partially-updated collection. Missing ids on
// update/delete/select are silent no-ops: a late mutation racing a delete
// must degrade gracefully, not crash the caller.
type PlantStore struct {
	mu        sync.RWMutex
	plants    map[string]domain.Plant
	order     []string // insertion order of ids
	activeID  string
	stats     domain.PlantStats
	validator *validation.EntityValidator
}

// NewPlantStore creates an empty plant store
func NewPlantStore(validator *validation.EntityValidator) *PlantStore {
	return &PlantStore{
		plants:    make(map[string]domain.Plant),
		validator: validator,
	}
}

// AddPlant validates the input, assigns identity and timestamps, inserts
// the plant and returns its new id.
func (s *PlantStore) AddPlant(input domain.PlantInput) (string, error) {
	if input.Status == "" {
		input.Status = domain.StatusHealthy
	}
	if err := s.validator.ValidatePlantInput(input); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	plant := domain.Plant{
		ID:             uuid.NewString(),
		Name:           input.Name,
		ScientificName: input.ScientificName,
		Status:         input.Status,
		ImageURL:       input.ImageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
		Metadata:       copyMetadata(input.Metadata),
	}

	s.plants[plant.ID] = plant
	s.order = append(s.order, plant.ID)
	s.recomputeStatsLocked()
	return plant.ID, nil
}

// AddPlantFromScan maps an external analysis result into a new plant.
// Status derives from the health score, scan details land in Metadata.
func (s *PlantStore) AddPlantFromScan(imageRef string, result domain.ScanResult) (string, error) {
	name := result.PlantName
	if name == "" {
		name = "Unknown plant"
	}

	metadata := map[string]string{
		"scan.confidence": fmt.Sprintf("%.2f", result.Confidence),
	}
	if result.ID != "" {
		metadata["scan.id"] = result.ID
	}
	if len(result.Issues) > 0 {
		codes := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			codes = append(codes, issue.Code)
		}
		metadata["scan.issues"] = strings.Join(codes, ",")
	}
	if len(result.Recommendations) > 0 {
		titles := make([]string, 0, len(result.Recommendations))
		for _, tip := range result.Recommendations {
			titles = append(titles, tip.Title)
		}
		metadata["scan.recommendations"] = strings.Join(titles, "; ")
	}
	if result.Weather != nil {
		metadata["scan.weather"] = result.Weather.Condition
	}

	return s.AddPlant(domain.PlantInput{
		Name:     name,
		Status:   domain.StatusFromHealthScore(result.HealthScore),
		ImageURL: imageRef,
		Metadata: metadata,
	})
}

// UpdatePlant merges the patch into the stored plant and bumps UpdatedAt.
// An unknown id is a no-op, never an error.
func (s *PlantStore) UpdatePlant(id string, patch domain.PlantPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plant, ok := s.plants[id]
	if !ok {
		return nil
	}

	updated := plant
	updated.Metadata = copyMetadata(plant.Metadata)
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.ScientificName != nil {
		updated.ScientificName = *patch.ScientificName
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.ImageURL != nil {
		updated.ImageURL = *patch.ImageURL
	}
	if len(patch.Metadata) > 0 {
		if updated.Metadata == nil {
			updated.Metadata = make(map[string]string, len(patch.Metadata))
		}
		for k, v := range patch.Metadata {
			updated.Metadata[k] = v
		}
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.validator.ValidatePlant(updated); err != nil {
		return err
	}

	s.plants[id] = updated
	s.recomputeStatsLocked()
	return nil
}

// DeletePlant removes the plant. The active pointer is cleared when it
// referenced the deleted plant. An unknown id is a no-op. Activity entries
// for the plant are deliberately left alone: history survives deletion.
func (s *PlantStore) DeletePlant(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plants[id]; !ok {
		return
	}

	delete(s.plants, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = ""
	}
	s.recomputeStatsLocked()
}

// SelectPlant marks a plant as active. The selection is a lookup key, not
// a cached copy: ActivePlant re-resolves it from the live collection, so a
// selection can never go stale relative to later edits. Selecting an
// unknown id is a no-op.
func (s *PlantStore) SelectPlant(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plants[id]; !ok {
		return
	}
	s.activeID = id
}

// ActivePlant resolves the current selection against the live collection.
func (s *PlantStore) ActivePlant() (domain.Plant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeID == "" {
		return domain.Plant{}, false
	}
	plant, ok := s.plants[s.activeID]
	if !ok {
		return domain.Plant{}, false
	}
	return copyPlant(plant), true
}

// Plant returns a single plant by id.
func (s *PlantStore) Plant(id string) (domain.Plant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plant, ok := s.plants[id]
	if !ok {
		return domain.Plant{}, false
	}
	return copyPlant(plant), true
}

// Plants returns every plant in insertion order.
func (s *PlantStore) Plants() []domain.Plant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plantsLocked()
}

// SearchPlants returns plants whose name contains the query,
// case-insensitively. An empty query returns the unfiltered list; an
// unmatched query returns an empty slice.
func (s *PlantStore) SearchPlants(query string) []domain.Plant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return s.plantsLocked()
	}

	needle := strings.ToLower(query)
	matches := make([]domain.Plant, 0)
	for _, id := range s.order {
		plant := s.plants[id]
		if strings.Contains(strings.ToLower(plant.Name), needle) {
			matches = append(matches, copyPlant(plant))
		}
	}
	return matches
}

// PlantsByStatus returns plants with the given status, in insertion order.
func (s *PlantStore) PlantsByStatus(status domain.PlantStatus) []domain.Plant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.Plant, 0)
	for _, id := range s.order {
		plant := s.plants[id]
		if plant.Status == status {
			matches = append(matches, copyPlant(plant))
		}
	}
	return matches
}

// Stats returns the aggregates computed by the last mutating call. Reads
// never recompute; recomputation happens only at write time.
func (s *PlantStore) Stats() domain.PlantStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *PlantStore) plantsLocked() []domain.Plant {
	plants := make([]domain.Plant, 0, len(s.order))
	for _, id := range s.order {
		plants = append(plants, copyPlant(s.plants[id]))
	}
	return plants
}

func (s *PlantStore) recomputeStatsLocked() {
	stats := domain.PlantStats{Total: len(s.plants)}
	for _, plant := range s.plants {
		switch plant.Status {
		case domain.StatusHealthy:
			stats.HealthyCount++
		case domain.StatusWarning:
			stats.WarningCount++
		case domain.StatusCritical:
			stats.CriticalCount++
		}
	}
	if stats.Total > 0 {
		stats.HealthyPercentage = float64(stats.HealthyCount) / float64(stats.Total) * 100
	}
	s.stats = stats
}

func copyPlant(p domain.Plant) domain.Plant {
	p.Metadata = copyMetadata(p.Metadata)
	return p
}

func copyMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
