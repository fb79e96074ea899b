package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	apperrors "github.com/acework2u/ai-smart-plants/internal/errors"
	"github.com/acework2u/ai-smart-plants/internal/logger"
	"github.com/acework2u/ai-smart-plants/internal/persistence"
	"github.com/acework2u/ai-smart-plants/internal/store"
	"github.com/acework2u/ai-smart-plants/internal/validation"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// failingStore always refuses writes, standing in for a dead backend.
type failingStore struct{}

func (failingStore) SaveSnapshot(ctx context.Context, name string, blob []byte) error {
	return errors.New("backend down")
}

func (failingStore) LoadSnapshot(ctx context.Context, name string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func TestPersistAndRestore(t *testing.T) {
	ctx := context.Background()
	validator := validation.NewEntityValidator()
	backend := persistence.NewMemoryStore()
	persister := NewPersister(backend)

	source := store.NewPlantStore(validator)
	id, err := source.AddPlant(domain.PlantInput{Name: "Monstera Deliciosa"})
	require.NoError(t, err)

	require.NoError(t, persister.Persist(ctx, store.SnapshotPlants, source))

	restored := store.NewPlantStore(validator)
	require.NoError(t, persister.Restore(ctx, store.SnapshotPlants, restored))
	require.Equal(t, source.Plants(), restored.Plants())

	plant, ok := restored.Plant(id)
	require.True(t, ok)
	require.Equal(t, "Monstera Deliciosa", plant.Name)
}

func TestRestoreMissingSnapshotIsNotAnError(t *testing.T) {
	persister := NewPersister(persistence.NewMemoryStore())
	target := store.NewPlantStore(validation.NewEntityValidator())

	require.NoError(t, persister.Restore(context.Background(), store.SnapshotPlants, target))
	require.Empty(t, target.Plants())
}

// TestFailedSaveLeavesStoreAuthoritative pins the write-through contract:
// a mutation commits in memory first, and a failed snapshot save surfaces
// an error without rolling it back.
func TestFailedSaveLeavesStoreAuthoritative(t *testing.T) {
	ctx := context.Background()
	persister := NewPersister(failingStore{})
	source := store.NewPlantStore(validation.NewEntityValidator())

	_, err := source.AddPlant(domain.PlantInput{Name: "Monstera"})
	require.NoError(t, err)

	err = persister.Persist(ctx, store.SnapshotPlants, source)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Len(t, source.Plants(), 1)
}

func TestRestoreWrapsBackendErrors(t *testing.T) {
	persister := NewPersister(failingStore{})
	target := store.NewPlantStore(validation.NewEntityValidator())

	err := persister.Restore(context.Background(), store.SnapshotPlants, target)
	require.Error(t, err)
	require.Empty(t, target.Plants())
}
