package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/acework2u/ai-smart-plants/internal/services"
)

// App is the HTTP surface over the domain services. It is peripheral glue:
// every rule lives in the stores and validators, the handlers only decode,
// delegate and encode.
type App struct {
	plants      *services.PlantService
	activities  *services.ActivityService
	preferences *services.PreferenceService
	scans       *services.ScanService
}

// NewApp creates the HTTP application
func NewApp(plants *services.PlantService, activities *services.ActivityService,
	preferences *services.PreferenceService, scans *services.ScanService) *App {
	return &App{
		plants:      plants,
		activities:  activities,
		preferences: preferences,
		scans:       scans,
	}
}

// Router wires middlewares and endpoints.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", a.handleHealth)

		api.Route("/plants", func(pr chi.Router) {
			pr.Get("/", a.handleListPlants)
			pr.Post("/", a.handleAddPlant)
			pr.Get("/search", a.handleSearchPlants)
			pr.Get("/stats", a.handlePlantStats)
			pr.Get("/active", a.handleActivePlant)
			pr.Get("/{id}", a.handleGetPlant)
			pr.Put("/{id}", a.handleUpdatePlant)
			pr.Delete("/{id}", a.handleDeletePlant)
			pr.Post("/{id}/select", a.handleSelectPlant)

			pr.Route("/{id}/activities", func(ar chi.Router) {
				ar.Get("/", a.handleListActivities)
				ar.Post("/", a.handleAddActivity)
				ar.Get("/stats", a.handleActivityStats)
				ar.Put("/{activityID}", a.handleUpdateActivity)
				ar.Delete("/{activityID}", a.handleDeleteActivity)
			})
		})

		api.Route("/preferences", func(nr chi.Router) {
			nr.Get("/", a.handleGetPreferences)
			nr.Patch("/", a.handleUpdatePreferences)
			nr.Post("/reset", a.handleResetPreferences)
			nr.Get("/quiet-now", a.handleQuietNow)
		})

		api.Post("/analyze", a.handleAnalyze)
	})

	return r
}
