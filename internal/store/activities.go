package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	mstats "github.com/montanaflynn/stats"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

// ActivityStore keeps one most-recent-first log per plant id. New entries
// are prepended; ties keep insertion order rather than wall-clock order so
// the sequence stays deterministic. Aggregates are per plant and are
// recomputed only at write time, for the written plant only.
type ActivityStore struct {
	mu        sync.RWMutex
	entries   map[string][]domain.ActivityEntry
	stats     map[string]domain.ActivityStats
	validator *validation.EntityValidator
}

// NewActivityStore creates an empty activity store
func NewActivityStore(validator *validation.EntityValidator) *ActivityStore {
	return &ActivityStore{
		entries:   make(map[string][]domain.ActivityEntry),
		stats:     make(map[string]domain.ActivityStats),
		validator: validator,
	}
}

// AddActivity validates the input (including the two-way NPK rule),
// assigns an id, prepends the entry to its plant's log and returns the id.
func (s *ActivityStore) AddActivity(input domain.ActivityInput) (string, error) {
	if input.Source == "" {
		input.Source = domain.SourceUser
	}

	entry := domain.ActivityEntry{
		ID:         uuid.NewString(),
		PlantID:    input.PlantID,
		Kind:       input.Kind,
		Quantity:   input.Quantity,
		Unit:       input.Unit,
		NPK:        copyNPK(input.NPK),
		Note:       input.Note,
		DateISO:    input.DateISO,
		Time24:     input.Time24,
		Source:     input.Source,
		Confidence: input.Confidence,
	}
	if err := s.validator.ValidateActivity(entry); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.PlantID] = append([]domain.ActivityEntry{entry}, s.entries[entry.PlantID]...)
	s.recomputeStatsLocked(entry.PlantID)
	return entry.ID, nil
}

// UpdateActivity merges the patch into the entry and re-validates the
// result. An unresolved (plantID, id) pair is a no-op.
func (s *ActivityStore) UpdateActivity(plantID, id string, patch domain.ActivityPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.entries[plantID]
	if !ok {
		return nil
	}
	idx := -1
	for i, entry := range log {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	updated := log[idx]
	updated.NPK = copyNPK(updated.NPK)
	if patch.Kind != nil {
		updated.Kind = *patch.Kind
	}
	if patch.Quantity != nil {
		updated.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		updated.Unit = *patch.Unit
	}
	if patch.NPK != nil {
		updated.NPK = copyNPK(patch.NPK)
	}
	if patch.ClearNPK {
		updated.NPK = nil
	}
	if patch.Note != nil {
		updated.Note = *patch.Note
	}
	if patch.DateISO != nil {
		updated.DateISO = *patch.DateISO
	}
	if patch.Time24 != nil {
		updated.Time24 = *patch.Time24
	}
	if patch.Source != nil {
		updated.Source = *patch.Source
	}
	if patch.Confidence != nil {
		updated.Confidence = *patch.Confidence
	}

	if err := s.validator.ValidateActivity(updated); err != nil {
		return err
	}

	log[idx] = updated
	s.recomputeStatsLocked(plantID)
	return nil
}

// DeleteActivity removes the entry. An unresolved pair is a no-op.
func (s *ActivityStore) DeleteActivity(plantID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.entries[plantID]
	if !ok {
		return
	}
	for i, entry := range log {
		if entry.ID == id {
			s.entries[plantID] = append(log[:i], log[i+1:]...)
			s.recomputeStatsLocked(plantID)
			return
		}
	}
}

// Activities returns the plant's full log, most recent first.
func (s *ActivityStore) Activities(plantID string) []domain.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEntries(s.entries[plantID])
}

// GetFilteredActivities returns the entries passing every set predicate of
// the filter. The stored log is never touched; the result is a new slice.
func (s *ActivityStore) GetFilteredActivities(plantID string, filter domain.ActivityFilter) []domain.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.ActivityEntry, 0)
	for _, entry := range s.entries[plantID] {
		if !matchesFilter(entry, filter) {
			continue
		}
		matches = append(matches, copyEntry(entry))
	}
	return matches
}

// Stats returns the plant's aggregates as computed by the last write to
// that plant's log. Reads never trigger recomputation.
func (s *ActivityStore) Stats(plantID string) domain.ActivityStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.stats[plantID]
	if !ok {
		return emptyActivityStats()
	}
	return copyActivityStats(stats)
}

func matchesFilter(entry domain.ActivityEntry, filter domain.ActivityFilter) bool {
	if len(filter.Kinds) > 0 {
		found := false
		for _, kind := range filter.Kinds {
			if entry.Kind == kind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.DateRange != nil {
		// DateISO strings compare correctly lexicographically; bounds are inclusive.
		if entry.DateISO < filter.DateRange.Start || entry.DateISO > filter.DateRange.End {
			return false
		}
	}
	if filter.HasQuantity != nil {
		if (entry.Quantity != "") != *filter.HasQuantity {
			return false
		}
	}
	if filter.Source != nil && entry.Source != *filter.Source {
		return false
	}
	return true
}

func (s *ActivityStore) recomputeStatsLocked(plantID string) {
	log := s.entries[plantID]
	if len(log) == 0 {
		delete(s.stats, plantID)
		return
	}

	stats := emptyActivityStats()
	stats.TotalActivities = len(log)

	datesByKind := make(map[domain.ActivityKind][]string)
	for _, entry := range log {
		stats.ByKind[entry.Kind]++
		datesByKind[entry.Kind] = append(datesByKind[entry.Kind], entry.DateISO)
	}

	for kind, dates := range datesByKind {
		if gap, ok := averageGapDays(dates); ok {
			stats.AverageFrequencyDays[kind] = gap
		}
	}
	s.stats[plantID] = stats
}

// averageGapDays returns the mean day gap between consecutive entries of
// one kind. Kinds with fewer than two entries have no defined frequency.
func averageGapDays(dates []string) (float64, bool) {
	if len(dates) < 2 {
		return 0, false
	}
	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev, prevOK := parseDay(sorted[i-1])
		curr, currOK := parseDay(sorted[i])
		if !prevOK || !currOK {
			continue
		}
		gaps = append(gaps, curr.Sub(prev).Hours()/24)
	}
	if len(gaps) == 0 {
		return 0, false
	}
	mean, err := mstats.Mean(gaps)
	if err != nil {
		return 0, false
	}
	return mean, true
}

func parseDay(dateISO string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", dateISO)
	return t, err == nil
}

func emptyActivityStats() domain.ActivityStats {
	return domain.ActivityStats{
		ByKind:               make(map[domain.ActivityKind]int),
		AverageFrequencyDays: make(map[domain.ActivityKind]float64),
	}
}

func copyActivityStats(stats domain.ActivityStats) domain.ActivityStats {
	out := emptyActivityStats()
	out.TotalActivities = stats.TotalActivities
	for k, v := range stats.ByKind {
		out.ByKind[k] = v
	}
	for k, v := range stats.AverageFrequencyDays {
		out.AverageFrequencyDays[k] = v
	}
	return out
}

func copyEntries(entries []domain.ActivityEntry) []domain.ActivityEntry {
	out := make([]domain.ActivityEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, copyEntry(entry))
	}
	return out
}

func copyEntry(entry domain.ActivityEntry) domain.ActivityEntry {
	entry.NPK = copyNPK(entry.NPK)
	return entry
}

func copyNPK(npk *domain.NPK) *domain.NPK {
	if npk == nil {
		return nil
	}
	clone := *npk
	return &clone
}
