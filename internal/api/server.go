// Package api provides the HTTP server for ninth: a per-user JSON API
// over the journal, goals, habits, levels, and reminders.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mounacademy/ninth/internal/app/reminder"
	"github.com/mounacademy/ninth/internal/app/tracker"
	"github.com/mounacademy/ninth/internal/domain"
	"github.com/mounacademy/ninth/internal/health"
)

// Version is reported by /api/version.
const Version = "0.1.0"

// Server is the ninth HTTP API server.
type Server struct {
	tracker        *tracker.Service
	reminders      *reminder.Scheduler
	health         *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(t *tracker.Service, r *reminder.Scheduler) *Server {
	return &Server{tracker: t, reminders: r}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth wires the health checker into /api/health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})
	r.Get("/api/health", s.handleHealthDetail)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Route("/api/{user}", func(r chi.Router) {
		r.Post("/vote", s.handleCastVote)
		r.Get("/vote/today", s.handleTodayVote)
		r.Get("/votes", s.handleVoteHistory)
		r.Get("/streak", s.handleStreak)

		r.Post("/entry", s.handleLogEntry)
		r.Get("/entry/{date}", s.handleGetEntry)
		r.Get("/entries", s.handleListEntries)

		r.Post("/actions", s.handleLogAction)
		r.Get("/actions", s.handleListActions)
		r.Get("/actions/counts", s.handleActionCounts)

		r.Post("/goals", s.handleCreateGoal)
		r.Get("/goals/{type}", s.handleListGoals)
		r.Post("/goals/{id}/toggle", s.handleToggleGoal)
		r.Delete("/goals/{id}", s.handleDeleteGoal)

		r.Post("/habits", s.handleCreateHabit)
		r.Get("/habits", s.handleListHabits)
		r.Post("/habits/{id}/toggle", s.handleToggleHabit)
		r.Patch("/habits/{id}", s.handleUpdateHabit)
		r.Delete("/habits/{id}", s.handleArchiveHabit)

		r.Get("/levels", s.handleLevels)
		r.Post("/levels/refresh", s.handleLevels)
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/trends", s.handleTrends)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	healthy := true
	if s.health != nil {
		healthy = s.health.IsHealthy()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version": Version,
		"healthy": healthy,
	})
}

func (s *Server) handleHealthDetail(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusOK
	if !s.health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"healthy": s.health.IsHealthy(),
		"checks":  s.health.Statuses(),
	})
}

// userID pulls the user segment from the route.
func userID(r *http.Request) string {
	return chi.URLParam(r, "user")
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVoteNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrHabitNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBadDayKey),
		errors.Is(err, domain.ErrBadWeekKey),
		errors.Is(err, domain.ErrBadMonthKey),
		errors.Is(err, domain.ErrInvalidVote),
		errors.Is(err, domain.ErrInvalidScore),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrInvalidGoal),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrInvalidTime):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
