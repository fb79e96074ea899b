package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/selectors"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListPlants returns all plants, optionally sorted or filtered by
// status via query parameters.
func (a *App) handleListPlants(w http.ResponseWriter, r *http.Request) {
	var plants []domain.Plant
	if status := r.URL.Query().Get("status"); status != "" {
		plants = a.plants.PlantsByStatus(domain.PlantStatus(status))
	} else {
		plants = a.plants.Plants()
	}

	if sortKey := r.URL.Query().Get("sort"); sortKey != "" {
		plants = selectors.SortedPlants(plants, selectors.SortKey(sortKey))
	}

	writeDataMeta(w, http.StatusOK, plants, map[string]any{
		"hero": selectors.ComputeHeroStats(plants),
	})
}

func (a *App) handleAddPlant(w http.ResponseWriter, r *http.Request) {
	var input domain.PlantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	id, err := a.plants.AddPlant(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"id": id})
}

func (a *App) handleGetPlant(w http.ResponseWriter, r *http.Request) {
	plant, ok := a.plants.Plant(chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w, "plant not found")
		return
	}
	writeData(w, http.StatusOK, plant)
}

// handleUpdatePlant applies a partial update. An unknown id is a no-op
// and still answers 200, matching the store contract.
func (a *App) handleUpdatePlant(w http.ResponseWriter, r *http.Request) {
	var patch domain.PlantPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := a.plants.UpdatePlant(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) handleDeletePlant(w http.ResponseWriter, r *http.Request) {
	if err := a.plants.DeletePlant(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) handleSelectPlant(w http.ResponseWriter, r *http.Request) {
	if err := a.plants.SelectPlant(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) handleActivePlant(w http.ResponseWriter, r *http.Request) {
	plant, ok := a.plants.ActivePlant()
	if !ok {
		writeNotFound(w, "no active plant")
		return
	}
	writeData(w, http.StatusOK, plant)
}

func (a *App) handleSearchPlants(w http.ResponseWriter, r *http.Request) {
	matches := a.plants.SearchPlants(r.URL.Query().Get("q"))
	writeData(w, http.StatusOK, matches)
}

func (a *App) handlePlantStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.plants.Stats())
}
