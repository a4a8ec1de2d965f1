package http

import (
	"net/http"
	"time"

	"exam-scoring-service/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter wires the public API. metricsHandler may be nil to leave /metrics unmounted.
func NewRouter(h *ExamHandler, tokens *auth.TokenService, log *zap.Logger, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observe(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(identity(tokens, log))

		r.Post("/tests/{testID}/submissions", h.Submit)
		r.Get("/tests/{testID}/rank", h.RankForTest)
		r.Get("/tests/{testID}/results", h.ListResults)

		r.Get("/results/{resultID}", h.GetResult)
		r.Get("/results/{resultID}/rank", h.RankForResult)
		r.Post("/results/{resultID}/rank", h.RankForResult)
	})
	return r
}
