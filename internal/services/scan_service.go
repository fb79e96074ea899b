package services

import (
	"context"
	"time"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/logger"
	"github.com/acework2u/ai-smart-plants/internal/store"
)

// ScanService turns an external analysis result into tracked state: a new
// plant in the registry and an initial leaf-check entry in its log.
type ScanService struct {
	analyzer   domain.PlantAnalyzer
	plants     *PlantService
	activities *ActivityService
}

// NewScanService creates a new scan service
func NewScanService(analyzer domain.PlantAnalyzer, plants *PlantService, activities *ActivityService) *ScanService {
	return &ScanService{analyzer: analyzer, plants: plants, activities: activities}
}

// ScanAndRegister analyzes the image, registers the identified plant and
// records the scan as an AI-sourced leaf check.
func (s *ScanService) ScanAndRegister(ctx context.Context, imageRef string, hint string) (string, *domain.ScanResult, error) {
	result, err := s.analyzer.AnalyzePlantImage(ctx, imageRef, hint)
	if err != nil {
		return "", nil, err
	}

	plantID, err := s.plants.store.AddPlantFromScan(imageRef, *result)
	if err != nil {
		return "", nil, err
	}
	if err := s.plants.persister.Persist(ctx, store.SnapshotPlants, s.plants.store); err != nil {
		return plantID, result, err
	}

	_, err = s.activities.AddActivity(ctx, domain.ActivityInput{
		PlantID:    plantID,
		Kind:       domain.KindLeafCheck,
		Note:       scanNote(result),
		DateISO:    time.Now().UTC().Format("2006-01-02"),
		Source:     domain.SourceAI,
		Confidence: result.Confidence,
	})
	if err != nil {
		return plantID, result, err
	}

	logger.Info("Scan registered", "plant_id", plantID, "plant_name", result.PlantName)
	return plantID, result, nil
}

func scanNote(result *domain.ScanResult) string {
	if len(result.Issues) == 0 {
		return "Scan found no visible issues"
	}
	note := "Scan flagged: "
	for i, issue := range result.Issues {
		if i > 0 {
			note += ", "
		}
		note += issue.Code
	}
	return note
}
