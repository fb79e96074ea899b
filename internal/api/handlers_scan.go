package api

import (
	"encoding/json"
	"net/http"
)

type analyzeRequest struct {
	ImageURL  string `json:"imageUrl"`
	PlantName string `json:"plantName,omitempty"`
}

// handleAnalyze runs the identification pipeline and registers the
// resulting plant.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.ImageURL == "" {
		writeBadRequest(w, "imageUrl must be provided")
		return
	}

	plantID, result, err := a.scans.ScanAndRegister(r.Context(), req.ImageURL, req.PlantName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeDataMeta(w, http.StatusCreated, result, map[string]any{"plantId": plantID})
}
