package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/acework2u/ai-smart-plants/internal/domain"
)

func (a *App) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.preferences.Preferences())
}

// handleUpdatePreferences accepts an arbitrarily deep partial tree and
// merges only the leaves it carries.
func (a *App) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var patch domain.PreferencesPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := a.preferences.UpdateGlobal(r.Context(), patch); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, a.preferences.Preferences())
}

func (a *App) handleResetPreferences(w http.ResponseWriter, r *http.Request) {
	if err := a.preferences.ResetToDefaults(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, a.preferences.Preferences())
}

func (a *App) handleQuietNow(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]bool{"quiet": a.preferences.IsQuietNow(time.Now())})
}
