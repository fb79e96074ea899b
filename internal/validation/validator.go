package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	apperrors "github.com/acework2u/ai-smart-plants/internal/errors"
	"github.com/acework2u/ai-smart-plants/internal/utils"
)

const maxNameLength = 100
const maxNoteLength = 500

// quantityPattern accepts plain decimal numbers: "2", "0.5", ".25".
var quantityPattern = regexp.MustCompile(`^\d*\.?\d+$`)

// EntityValidator checks structural and cross-field rules for every entity
// the stores accept. Violations come back as validation-typed AppErrors
// carrying the offending field name.
type EntityValidator struct{}

// NewEntityValidator creates a new entity validator
func NewEntityValidator() *EntityValidator {
	return &EntityValidator{}
}

// ValidatePlantInput checks a caller-supplied plant before the store
// assigns identity and timestamps.
func (v *EntityValidator) ValidatePlantInput(in domain.PlantInput) error {
	nameLen := utf8.RuneCountInString(in.Name)
	if nameLen < 1 || nameLen > maxNameLength {
		return apperrors.NewValidationError("name",
			fmt.Sprintf("name must be 1-%d characters, got %d", maxNameLength, nameLen))
	}
	if !domain.ValidPlantStatus(in.Status) {
		return apperrors.NewValidationError("status",
			fmt.Sprintf("unknown plant status %q", in.Status))
	}
	return nil
}

// ValidatePlant checks a fully-formed plant, including the identity and
// timestamp invariants that only exist after insertion.
func (v *EntityValidator) ValidatePlant(p domain.Plant) error {
	if p.ID == "" {
		return apperrors.NewValidationError("id", "plant id must not be empty")
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		return apperrors.NewValidationError("updatedAt", "updatedAt must not precede createdAt")
	}
	return v.ValidatePlantInput(domain.PlantInput{
		Name:           p.Name,
		ScientificName: p.ScientificName,
		Status:         p.Status,
		ImageURL:       p.ImageURL,
		Metadata:       p.Metadata,
	})
}

// ValidateActivity checks an activity entry. The NPK rule is two-way: a
// fertilizing entry must carry an NPK ratio, and no other kind may.
func (v *EntityValidator) ValidateActivity(e domain.ActivityEntry) error {
	if e.PlantID == "" {
		return apperrors.NewValidationError("plantId", "plantId must not be empty")
	}
	if !domain.ValidActivityKind(e.Kind) {
		return apperrors.NewValidationError("kind",
			fmt.Sprintf("unknown activity kind %q", e.Kind))
	}

	if e.Kind == domain.KindFertilizing && e.NPK == nil {
		return apperrors.NewValidationError("npk", "NPK ratio is required for fertilizing entries")
	}
	if e.Kind != domain.KindFertilizing && e.NPK != nil {
		return apperrors.NewValidationError("npk",
			fmt.Sprintf("NPK ratio is only allowed on fertilizing entries, not %q", e.Kind))
	}
	if e.NPK != nil {
		for _, component := range []string{e.NPK.N, e.NPK.P, e.NPK.K} {
			if !quantityPattern.MatchString(component) {
				return apperrors.NewValidationError("npk",
					fmt.Sprintf("NPK component %q is not a numeric string", component))
			}
		}
	}

	if e.Quantity != "" {
		if !quantityPattern.MatchString(e.Quantity) {
			return apperrors.NewValidationError("quantity",
				fmt.Sprintf("quantity %q is not a numeric string", e.Quantity))
		}
		value, err := strconv.ParseFloat(e.Quantity, 64)
		if err != nil || value <= 0 {
			return apperrors.NewValidationError("quantity", "quantity must be greater than zero")
		}
	}

	if utf8.RuneCountInString(e.Note) > maxNoteLength {
		return apperrors.NewValidationError("note",
			fmt.Sprintf("note must be at most %d characters", maxNoteLength))
	}
	if !utils.ValidDateISO(e.DateISO) {
		return apperrors.NewValidationError("dateISO",
			fmt.Sprintf("dateISO %q is not a YYYY-MM-DD date", e.DateISO))
	}
	if e.Time24 != "" && !utils.ValidTime24(e.Time24) {
		return apperrors.NewValidationError("time24",
			fmt.Sprintf("time24 %q is not an HH:MM clock time", e.Time24))
	}
	if !domain.ValidActivitySource(e.Source) {
		return apperrors.NewValidationError("source",
			fmt.Sprintf("unknown activity source %q", e.Source))
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return apperrors.NewValidationError("confidence", "confidence must be within [0, 1]")
	}
	return nil
}

// ValidatePreferences checks the notification preference tree.
func (v *EntityValidator) ValidatePreferences(p domain.NotificationPreferences) error {
	if !utils.ValidTime24(p.Timing.PreferredTime) {
		return apperrors.NewValidationError("timing.preferredTime",
			fmt.Sprintf("preferredTime %q is not an HH:MM clock time", p.Timing.PreferredTime))
	}
	for _, day := range p.Timing.DaysOfWeek {
		if day < 0 || day > 6 {
			return apperrors.NewValidationError("timing.daysOfWeek",
				fmt.Sprintf("day of week %d is outside 0-6", day))
		}
	}
	if !utils.ValidTime24(p.Timing.QuietHours.Start) {
		return apperrors.NewValidationError("timing.quietHours.start",
			fmt.Sprintf("quiet hours start %q is not an HH:MM clock time", p.Timing.QuietHours.Start))
	}
	if !utils.ValidTime24(p.Timing.QuietHours.End) {
		return apperrors.NewValidationError("timing.quietHours.end",
			fmt.Sprintf("quiet hours end %q is not an HH:MM clock time", p.Timing.QuietHours.End))
	}
	return nil
}
