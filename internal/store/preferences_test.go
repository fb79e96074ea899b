package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	apperrors "github.com/acework2u/ai-smart-plants/internal/errors"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

type PreferenceStoreSuite struct {
	suite.Suite
	store *PreferenceStore
}

func (s *PreferenceStoreSuite) SetupTest() {
	s.store = NewPreferenceStore(validation.NewEntityValidator())
}

func TestPreferenceStoreSuite(t *testing.T) {
	suite.Run(t, new(PreferenceStoreSuite))
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

// TestLeafMergeLeavesSiblingsUntouched verifies a deep partial update
// touches exactly the leaves it carries.
func (s *PreferenceStoreSuite) TestLeafMergeLeavesSiblingsUntouched() {
	before := s.store.Preferences()

	s.Require().NoError(s.store.UpdateGlobal(domain.PreferencesPatch{
		Timing: &domain.TimingPatch{
			QuietHours: &domain.QuietHoursPatch{Enabled: boolPtr(true)},
		},
	}))

	after := s.store.Preferences()
	s.True(after.Timing.QuietHours.Enabled)
	s.Equal(before.Timing.QuietHours.Start, after.Timing.QuietHours.Start)
	s.Equal(before.Timing.QuietHours.End, after.Timing.QuietHours.End)
	s.Equal(before.Timing.PreferredTime, after.Timing.PreferredTime)
	s.Equal(before.Timing.DaysOfWeek, after.Timing.DaysOfWeek)

	beforeJSON, err := json.Marshal(before.Delivery)
	s.Require().NoError(err)
	afterJSON, err := json.Marshal(after.Delivery)
	s.Require().NoError(err)
	s.Equal(beforeJSON, afterJSON)

	s.Equal(before.SmartScheduling, after.SmartScheduling)
	s.Equal(before.Enabled, after.Enabled)
}

func (s *PreferenceStoreSuite) TestMergeAcrossBranches() {
	s.Require().NoError(s.store.UpdateGlobal(domain.PreferencesPatch{
		Delivery: &domain.DeliveryPatch{Sound: boolPtr(false)},
		Timing: &domain.TimingPatch{
			PreferredTime: strPtr("07:30"),
			DaysOfWeek:    []int{1, 3, 5},
		},
	}))

	prefs := s.store.Preferences()
	s.False(prefs.Delivery.Sound)
	s.True(prefs.Delivery.Push) // sibling leaf untouched
	s.Equal("07:30", prefs.Timing.PreferredTime)
	s.Equal([]int{1, 3, 5}, prefs.Timing.DaysOfWeek)
}

// TestCascadingDisablePreservesValues verifies the parent toggle gates
// effect without erasing children.
func (s *PreferenceStoreSuite) TestCascadingDisablePreservesValues() {
	s.Require().NoError(s.store.UpdateGlobal(domain.PreferencesPatch{
		Delivery: &domain.DeliveryPatch{Vibration: boolPtr(false)},
	}))

	s.Require().NoError(s.store.UpdateGlobal(domain.PreferencesPatch{Enabled: boolPtr(false)}))
	disabled := s.store.Preferences()
	s.False(disabled.Enabled)
	s.True(disabled.Delivery.Push)
	s.False(disabled.Delivery.Vibration) // prior edit still there

	s.Require().NoError(s.store.UpdateGlobal(domain.PreferencesPatch{Enabled: boolPtr(true)}))
	restored := s.store.Preferences()
	s.True(restored.Enabled)
	s.False(restored.Delivery.Vibration) // nothing to re-enter
}

func (s *PreferenceStoreSuite) TestInvalidPatchLeavesStoreUnchanged() {
	before := s.store.Preferences()

	err := s.store.UpdateGlobal(domain.PreferencesPatch{
		Timing: &domain.TimingPatch{PreferredTime: strPtr("25:99")},
	})
	s.Require().Error(err)
	s.Equal("timing.preferredTime", apperrors.FieldOf(err))
	s.Equal(before, s.store.Preferences())

	err = s.store.UpdateGlobal(domain.PreferencesPatch{
		Timing: &domain.TimingPatch{DaysOfWeek: []int{0, 7}},
	})
	s.Require().Error(err)
	s.Equal("timing.daysOfWeek", apperrors.FieldOf(err))
}

func (s *PreferenceStoreSuite) TestQuietHoursEvaluation() {
	s.Require().NoError(s.store.UpdateGlobal(domain.PreferencesPatch{
		Timing: &domain.TimingPatch{
			QuietHours: &domain.QuietHoursPatch{
				Enabled: boolPtr(true),
				Start:   strPtr("22:00"),
				End:     strPtr("06:00"),
			},
		},
	}))

	s.True(s.store.IsQuietNow(clock(23, 0)))
	s.True(s.store.IsQuietNow(clock(5, 0)))
	s.False(s.store.IsQuietNow(clock(12, 0)))

	s.Run("disabled window is never quiet", func() {
		s.Require().NoError(s.store.UpdateGlobal(domain.PreferencesPatch{
			Timing: &domain.TimingPatch{
				QuietHours: &domain.QuietHoursPatch{Enabled: boolPtr(false)},
			},
		}))
		s.False(s.store.IsQuietNow(clock(23, 0)))
	})
}

func (s *PreferenceStoreSuite) TestResetToDefaultsIsIdempotent() {
	s.Require().NoError(s.store.UpdateGlobal(domain.PreferencesPatch{
		Enabled:  boolPtr(false),
		Delivery: &domain.DeliveryPatch{Push: boolPtr(false)},
	}))

	s.store.ResetToDefaults()
	first := s.store.Preferences()
	s.store.ResetToDefaults()
	second := s.store.Preferences()

	s.Equal(domain.DefaultNotificationPreferences(), first)
	s.Equal(first, second)
}

func clock(hour, minute int) time.Time {
	return time.Date(2025, 6, 15, hour, minute, 0, 0, time.UTC)
}

// TestInQuietWindow pins the circular-interval arithmetic on its own,
// independent of any store state.
func TestInQuietWindow(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		at    time.Time
		quiet bool
	}{
		{"wrapped, late evening", "22:00", "06:00", clock(23, 0), true},
		{"wrapped, early morning", "22:00", "06:00", clock(5, 0), true},
		{"wrapped, midday", "22:00", "06:00", clock(12, 0), false},
		{"wrapped, exactly at start", "22:00", "06:00", clock(22, 0), true},
		{"wrapped, exactly at end", "22:00", "06:00", clock(6, 0), false},
		{"linear, inside", "13:00", "15:00", clock(14, 0), true},
		{"linear, outside", "13:00", "15:00", clock(16, 0), false},
		{"linear, exactly at start", "13:00", "15:00", clock(13, 0), true},
		{"linear, exactly at end", "13:00", "15:00", clock(15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.quiet, InQuietWindow(tc.start, tc.end, tc.at))
		})
	}
}
