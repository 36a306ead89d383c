package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/fxjung/pushover-watchdog/internal/httpapi/middleware"
	"github.com/fxjung/pushover-watchdog/internal/status"
)

// Server exposes the watchdog's latest target statuses read-only.
type Server struct {
	Logger *zap.Logger
	Status *status.Store
}

func NewServer(l *zap.Logger, st *status.Store) *Server {
	return &Server{Logger: l, Status: st}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(120, 60))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/status", s.handleStatus)

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	list := s.Status.List()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		s.Logger.Warn("status_encode_error", zap.Error(err))
	}
}
