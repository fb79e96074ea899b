package store

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	apperrors "github.com/acework2u/ai-smart-plants/internal/errors"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

type PlantStoreSuite struct {
	suite.Suite
	store *PlantStore
}

func (s *PlantStoreSuite) SetupTest() {
	s.store = NewPlantStore(validation.NewEntityValidator())
}

func TestPlantStoreSuite(t *testing.T) {
	suite.Run(t, new(PlantStoreSuite))
}

func (s *PlantStoreSuite) addPlant(name string, status domain.PlantStatus) string {
	id, err := s.store.AddPlant(domain.PlantInput{Name: name, Status: status})
	s.Require().NoError(err)
	return id
}

// TestStatsInvariants verifies aggregates track the collection through any
// sequence of adds and deletes.
func (s *PlantStoreSuite) TestStatsInvariants() {
	ids := []string{
		s.addPlant("Monstera Deliciosa", domain.StatusHealthy),
		s.addPlant("Snake Plant", domain.StatusWarning),
		s.addPlant("Fiddle Leaf Fig", domain.StatusCritical),
		s.addPlant("Pothos", domain.StatusHealthy),
	}

	stats := s.store.Stats()
	s.Equal(len(s.store.Plants()), stats.Total)
	s.Equal(stats.Total, stats.HealthyCount+stats.WarningCount+stats.CriticalCount)
	s.Equal(2, stats.HealthyCount)
	s.InDelta(50.0, stats.HealthyPercentage, 0.001)

	s.store.DeletePlant(ids[0])
	s.store.DeletePlant(ids[2])

	stats = s.store.Stats()
	s.Equal(len(s.store.Plants()), stats.Total)
	s.Equal(stats.Total, stats.HealthyCount+stats.WarningCount+stats.CriticalCount)

	s.store.DeletePlant(ids[1])
	s.store.DeletePlant(ids[3])
	stats = s.store.Stats()
	s.Equal(0, stats.Total)
	s.InDelta(0.0, stats.HealthyPercentage, 0.001)
}

// TestMissingTargetsAreNoOps verifies mutations against unknown ids never
// error and leave state untouched.
func (s *PlantStoreSuite) TestMissingTargetsAreNoOps() {
	id := s.addPlant("Monstera Deliciosa", domain.StatusHealthy)
	before := s.store.Plants()

	name := "Renamed"
	s.Require().NoError(s.store.UpdatePlant("no-such-id", domain.PlantPatch{Name: &name}))
	s.store.DeletePlant("no-such-id")
	s.store.SelectPlant("no-such-id")

	s.Equal(before, s.store.Plants())
	s.Equal(1, s.store.Stats().Total)

	_, active := s.store.ActivePlant()
	s.False(active)

	plant, ok := s.store.Plant(id)
	s.Require().True(ok)
	s.Equal("Monstera Deliciosa", plant.Name)
}

func (s *PlantStoreSuite) TestUpdateMergesAndBumpsTimestamp() {
	id := s.addPlant("Monstera Deliciosa", domain.StatusHealthy)

	status := domain.StatusWarning
	s.Require().NoError(s.store.UpdatePlant(id, domain.PlantPatch{
		Status:   &status,
		Metadata: map[string]string{"location": "living room"},
	}))

	plant, ok := s.store.Plant(id)
	s.Require().True(ok)
	s.Equal("Monstera Deliciosa", plant.Name) // untouched leaf survives
	s.Equal(domain.StatusWarning, plant.Status)
	s.Equal("living room", plant.Metadata["location"])
	s.False(plant.UpdatedAt.Before(plant.CreatedAt))

	stats := s.store.Stats()
	s.Equal(1, stats.WarningCount)
	s.Equal(0, stats.HealthyCount)
}

func (s *PlantStoreSuite) TestUpdateRejectsInvalidResult() {
	id := s.addPlant("Monstera Deliciosa", domain.StatusHealthy)

	empty := ""
	err := s.store.UpdatePlant(id, domain.PlantPatch{Name: &empty})
	s.Require().Error(err)
	s.Equal("name", apperrors.FieldOf(err))

	plant, ok := s.store.Plant(id)
	s.Require().True(ok)
	s.Equal("Monstera Deliciosa", plant.Name)
}

// TestActiveSelection verifies the active reference is a key into the live
// collection, resolved fresh on every read.
func (s *PlantStoreSuite) TestActiveSelection() {
	id := s.addPlant("Monstera Deliciosa", domain.StatusHealthy)
	s.store.SelectPlant(id)

	name := "Monstera Adansonii"
	s.Require().NoError(s.store.UpdatePlant(id, domain.PlantPatch{Name: &name}))

	active, ok := s.store.ActivePlant()
	s.Require().True(ok)
	s.Equal("Monstera Adansonii", active.Name) // selection observed the edit

	s.store.DeletePlant(id)
	_, ok = s.store.ActivePlant()
	s.False(ok)
}

func (s *PlantStoreSuite) TestSearchPlants() {
	s.addPlant("Monstera Deliciosa", domain.StatusHealthy)
	s.addPlant("Snake Plant", domain.StatusHealthy)

	s.Run("matches case-insensitively", func() {
		matches := s.store.SearchPlants("monstera")
		s.Require().Len(matches, 1)
		s.Equal("Monstera Deliciosa", matches[0].Name)
	})

	s.Run("empty query returns everything", func() {
		s.Len(s.store.SearchPlants(""), 2)
	})

	s.Run("unmatched query returns empty slice", func() {
		s.Empty(s.store.SearchPlants("cactus"))
	})
}

func (s *PlantStoreSuite) TestPlantsByStatus() {
	s.addPlant("Monstera Deliciosa", domain.StatusHealthy)
	s.addPlant("Snake Plant", domain.StatusWarning)
	s.addPlant("Pothos", domain.StatusWarning)

	warnings := s.store.PlantsByStatus(domain.StatusWarning)
	s.Require().Len(warnings, 2)
	s.Equal("Snake Plant", warnings[0].Name)
	s.Empty(s.store.PlantsByStatus(domain.StatusCritical))
}

func (s *PlantStoreSuite) TestAddRejectsInvalidInput() {
	_, err := s.store.AddPlant(domain.PlantInput{Name: ""})
	s.Require().Error(err)
	s.Equal("name", apperrors.FieldOf(err))
	s.Equal(0, s.store.Stats().Total)
}

// TestAddPlantFromScan verifies the health-score thresholds and scan
// metadata mapping.
func (s *PlantStoreSuite) TestAddPlantFromScan() {
	cases := []struct {
		score  float64
		status domain.PlantStatus
	}{
		{85, domain.StatusHealthy},
		{0.85, domain.StatusHealthy}, // normalized 0-1 score
		{55, domain.StatusWarning},
		{20, domain.StatusCritical},
	}

	for _, tc := range cases {
		id, err := s.store.AddPlantFromScan("file://scan.jpg", domain.ScanResult{
			PlantName:   "Monstera Deliciosa",
			Confidence:  0.9,
			HealthScore: tc.score,
			Issues:      []domain.ScanIssue{{Code: "yellow_leaf", Severity: "moderate", Confidence: 0.7}},
		})
		s.Require().NoError(err)

		plant, ok := s.store.Plant(id)
		s.Require().True(ok)
		s.Equal(tc.status, plant.Status)
		s.Equal("file://scan.jpg", plant.ImageURL)
		s.Equal("yellow_leaf", plant.Metadata["scan.issues"])
	}

	s.Run("nameless result falls back to a placeholder", func() {
		id, err := s.store.AddPlantFromScan("file://scan.jpg", domain.ScanResult{HealthScore: 90})
		s.Require().NoError(err)
		plant, _ := s.store.Plant(id)
		s.Equal("Unknown plant", plant.Name)
	})
}
