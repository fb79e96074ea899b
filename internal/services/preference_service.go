package services

import (
	"context"
	"time"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/logger"
	"github.com/acework2u/ai-smart-plants/internal/store"
)

// PreferenceService fronts the preference store with write-through
// persistence.
type PreferenceService struct {
	store     *store.PreferenceStore
	persister *Persister
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(prefs *store.PreferenceStore, persister *Persister) *PreferenceService {
	return &PreferenceService{store: prefs, persister: persister}
}

// Preferences returns the current tree.
func (s *PreferenceService) Preferences() domain.NotificationPreferences {
	return s.store.Preferences()
}

// UpdateGlobal merges a partial update and persists the tree.
func (s *PreferenceService) UpdateGlobal(ctx context.Context, patch domain.PreferencesPatch) error {
	if err := s.store.UpdateGlobal(patch); err != nil {
		return err
	}
	return s.persister.Persist(ctx, store.SnapshotPreferences, s.store)
}

// IsQuietNow reports whether reminders are currently suppressed.
func (s *PreferenceService) IsQuietNow(now time.Time) bool {
	return s.store.IsQuietNow(now)
}

// ResetToDefaults restores the canonical tree and persists it.
func (s *PreferenceService) ResetToDefaults(ctx context.Context) error {
	s.store.ResetToDefaults()
	logger.Info("Notification preferences reset to defaults")
	return s.persister.Persist(ctx, store.SnapshotPreferences, s.store)
}
