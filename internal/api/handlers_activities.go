package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/selectors"
)

// handleListActivities returns a plant's log. Filter predicates arrive as
// query parameters: kinds (comma-separated), from/to (inclusive dates),
// hasQuantity, source. grouped=true buckets the result by calendar day.
func (a *App) handleListActivities(w http.ResponseWriter, r *http.Request) {
	plantID := chi.URLParam(r, "id")
	query := r.URL.Query()

	filter := domain.ActivityFilter{}
	if kinds := query.Get("kinds"); kinds != "" {
		for _, kind := range strings.Split(kinds, ",") {
			filter.Kinds = append(filter.Kinds, domain.ActivityKind(kind))
		}
	}
	if from, to := query.Get("from"), query.Get("to"); from != "" && to != "" {
		filter.DateRange = &domain.DateRange{Start: from, End: to}
	}
	if raw := query.Get("hasQuantity"); raw != "" {
		hasQuantity, err := strconv.ParseBool(raw)
		if err != nil {
			writeBadRequest(w, "hasQuantity must be a boolean")
			return
		}
		filter.HasQuantity = &hasQuantity
	}
	if raw := query.Get("source"); raw != "" {
		source := domain.ActivitySource(raw)
		filter.Source = &source
	}

	entries := a.activities.GetFilteredActivities(plantID, filter)
	if query.Get("grouped") == "true" {
		writeData(w, http.StatusOK, selectors.GroupActivitiesByDay(entries))
		return
	}
	writeData(w, http.StatusOK, entries)
}

func (a *App) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	var input domain.ActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	input.PlantID = chi.URLParam(r, "id")

	id, err := a.activities.AddActivity(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"id": id})
}

func (a *App) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	var patch domain.ActivityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	err := a.activities.UpdateActivity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "activityID"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	err := a.activities.DeleteActivity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "activityID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) handleActivityStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.activities.Stats(chi.URLParam(r, "id")))
}
