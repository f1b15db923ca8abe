package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mounacademy/ninth/internal/domain"
)

// ─── Goals ──────────────────────────────────────────────────────────────────

type createGoalRequest struct {
	Type  domain.GoalType `json:"type"`
	Title string          `json:"title"`
}

// POST /api/{user}/goals
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := s.tracker.CreateGoal(userID(r), req.Type, req.Title)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// GET /api/{user}/goals/{type}
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.tracker.ListGoals(userID(r), domain.GoalType(chi.URLParam(r, "type")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// POST /api/{user}/goals/{id}/toggle
// A completion toggle can close out a goal gate, so levels refresh here too.
func (s *Server) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.tracker.ToggleGoal(userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	refresh, err := s.tracker.Refresh(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"goal":   goal,
		"levels": refresh,
	})
}

// DELETE /api/{user}/goals/{id}
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteGoal(userID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── Habits ─────────────────────────────────────────────────────────────────

type createHabitRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// POST /api/{user}/habits
func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	habit, err := s.tracker.CreateHabit(userID(r), req.Name, req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

// GET /api/{user}/habits
func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.tracker.ListHabits(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if habits == nil {
		habits = []domain.Habit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": habits})
}

type toggleHabitRequest struct {
	Date string `json:"date,omitempty"`
}

// POST /api/{user}/habits/{id}/toggle
func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	var req toggleHabitRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	completion, err := s.tracker.ToggleHabit(userID(r), chi.URLParam(r, "id"), req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completion)
}

type updateHabitRequest struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

// PATCH /api/{user}/habits/{id}
func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	var req updateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	habit, err := s.tracker.UpdateHabit(userID(r), chi.URLParam(r, "id"), req.Name, req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// DELETE /api/{user}/habits/{id}
func (s *Server) handleArchiveHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.ArchiveHabit(userID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}
