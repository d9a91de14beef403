package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SynapSnap/quizbot/internal/domain/authoring"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

// NewRouter собирает маршруты служебного API.
func NewRouter(registry *snapshot.Registry, authoringService *authoring.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/tests", func(tr chi.Router) {
		tr.Get("/", ListTestsHandler(registry))
		tr.Post("/link", TestLinkHandler(registry, authoringService))
		tr.Get("/{testID}/stats", TestStatsHandler(registry))
		tr.Get("/{testID}/report", TestReportHandler(registry))
	})

	return r
}
