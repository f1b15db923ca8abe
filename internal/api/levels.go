package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mounacademy/ninth/internal/domain"
)

// ─── Levels and Progress ────────────────────────────────────────────────────

// GET /api/{user}/levels
// Reading levels runs a refresh pass first, so progress the user earned
// since the last write is never stale.
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	refresh, err := s.tracker.Refresh(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refresh)
}

// GET /api/{user}/snapshot
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.LoadSnapshot(userID(r)))
}

// GET /api/{user}/trends?end=YYYY-MM-DD
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.tracker.WeeklyTrends(userID(r), r.URL.Query().Get("end"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

// ─── Settings ───────────────────────────────────────────────────────────────

// GET /api/{user}/settings
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.tracker.Settings(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// PUT /api/{user}/settings
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.tracker.UpdateSettings(userID(r), settings); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ─── Notifications ──────────────────────────────────────────────────────────

// GET /api/{user}/notifications
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	pending, err := s.reminders.Pending(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if pending == nil {
		pending = []domain.Reminder{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": pending})
}

// POST /api/{user}/notifications/{id}/shown
func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.reminders.MarkShown(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "shown"})
}
