package domain

import (
	"context"
	"time"
)

// PlantRegistry is the contract of the plant store.
type PlantRegistry interface {
	AddPlant(input PlantInput) (string, error)
	AddPlantFromScan(imageRef string, result ScanResult) (string, error)
	UpdatePlant(id string, patch PlantPatch) error
	DeletePlant(id string)
	SelectPlant(id string)
	ActivePlant() (Plant, bool)
	Plant(id string) (Plant, bool)
	Plants() []Plant
	SearchPlants(query string) []Plant
	PlantsByStatus(status PlantStatus) []Plant
	Stats() PlantStats
}

// ActivityLog is the contract of the per-plant activity store.
type ActivityLog interface {
	AddActivity(input ActivityInput) (string, error)
	UpdateActivity(plantID, id string, patch ActivityPatch) error
	DeleteActivity(plantID, id string)
	Activities(plantID string) []ActivityEntry
	GetFilteredActivities(plantID string, filter ActivityFilter) []ActivityEntry
	Stats(plantID string) ActivityStats
}

// PreferenceEngine is the contract of the notification preference store.
type PreferenceEngine interface {
	Preferences() NotificationPreferences
	UpdateGlobal(patch PreferencesPatch) error
	IsQuietNow(now time.Time) bool
	ResetToDefaults()
}

// PlantAnalyzer identifies a plant and assesses its health from an image.
// Implemented by the external AI service client.
type PlantAnalyzer interface {
	AnalyzePlantImage(ctx context.Context, imageRef string, hint string) (*ScanResult, error)
}

// Notifier delivers a planned reminder batch. The platform transport
// (push, chat, mail) lives behind this interface, outside the core.
type Notifier interface {
	Notify(ctx context.Context, batch ReminderBatch) error
}

// Reminder is one scheduled care nudge for a plant.
type Reminder struct {
	PlantID string       `json:"plantId"`
	Kind    ActivityKind `json:"kind"`
	Message string       `json:"message"`
}

// ReminderBatch is a group of reminders due at the same instant.
type ReminderBatch struct {
	DueAt     time.Time  `json:"dueAt"`
	Reminders []Reminder `json:"reminders"`
}
