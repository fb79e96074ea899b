package store

import (
	"sync"
	"time"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/utils"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

// PreferenceStore holds the process-wide notification preference tree.
// Partial updates merge leaf-by-leaf: patching one nested field leaves
// every sibling branch untouched. The top-level Enabled flag gates the
// effect of the tree for downstream consumers without clearing any stored
// child value, so re-enabling restores prior settings.
type PreferenceStore struct {
	mu        sync.RWMutex
	prefs     domain.NotificationPreferences
	validator *validation.EntityValidator
}

// NewPreferenceStore creates a store seeded with the default tree.
func NewPreferenceStore(validator *validation.EntityValidator) *PreferenceStore {
	return &PreferenceStore{
		prefs:     domain.DefaultNotificationPreferences(),
		validator: validator,
	}
}

// Preferences returns a copy of the current tree.
func (s *PreferenceStore) Preferences() domain.NotificationPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPreferences(s.prefs)
}

// UpdateGlobal merges the patch into the tree. The merged result is
// validated before it replaces the stored tree; on a validation error the
// store is left unchanged.
func (s *PreferenceStore) UpdateGlobal(patch domain.PreferencesPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := mergePreferences(s.prefs, patch)
	if err := s.validator.ValidatePreferences(merged); err != nil {
		return err
	}
	s.prefs = merged
	return nil
}

// IsQuietNow reports whether now falls inside the enabled quiet-hours
// window. A disabled window is never quiet.
func (s *PreferenceStore) IsQuietNow(now time.Time) bool {
	s.mu.RLock()
	qh := s.prefs.Timing.QuietHours
	s.mu.RUnlock()

	return qh.Enabled && InQuietWindow(qh.Start, qh.End, now)
}

// ResetToDefaults replaces the whole tree with the canonical defaults.
// Idempotent: a second call changes nothing.
func (s *PreferenceStore) ResetToDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = domain.DefaultNotificationPreferences()
}

// InQuietWindow evaluates the circular quiet-hours interval. Start and end
// are "HH:MM"; a window whose end precedes its start wraps past midnight.
// Pure: callers outside the store (the reminder scheduler) use it directly.
func InQuietWindow(start, end string, now time.Time) bool {
	startMin := utils.TimeToMinutes(start)
	endMin := utils.TimeToMinutes(end)
	nowMin := utils.MinutesOfDay(now)

	if startMin <= endMin {
		return startMin <= nowMin && nowMin < endMin
	}
	return nowMin >= startMin || nowMin < endMin
}

func copyPreferences(p domain.NotificationPreferences) domain.NotificationPreferences {
	p.Timing.DaysOfWeek = append([]int(nil), p.Timing.DaysOfWeek...)
	return p
}
