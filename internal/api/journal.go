package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mounacademy/ninth/internal/domain"
)

// ─── Votes ──────────────────────────────────────────────────────────────────

type castVoteRequest struct {
	Vote domain.VoteValue `json:"vote"`
	Note string           `json:"note,omitempty"`
}

// POST /api/{user}/vote
func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	vote, err := s.tracker.CastVote(userID(r), req.Vote, req.Note)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	streak, err := s.tracker.Streak(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vote":   vote,
		"streak": streak,
	})
}

// GET /api/{user}/vote/today
func (s *Server) handleTodayVote(w http.ResponseWriter, r *http.Request) {
	vote, err := s.tracker.TodayVote(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if vote == nil {
		writeError(w, http.StatusNotFound, domain.ErrVoteNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, vote)
}

// GET /api/{user}/votes
func (s *Server) handleVoteHistory(w http.ResponseWriter, r *http.Request) {
	votes, err := s.tracker.VoteHistory(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if votes == nil {
		votes = []domain.DailyVote{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"votes": votes})
}

// GET /api/{user}/streak
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.tracker.Streak(userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

// ─── Entries ────────────────────────────────────────────────────────────────

type logEntryRequest struct {
	Date              string `json:"date,omitempty"`
	PresenceScore     *int   `json:"presence_score,omitempty"`
	ProductivityScore *int   `json:"productivity_score,omitempty"`
	DeepWorkSets      *int   `json:"deep_work_sets,omitempty"`
	TimeWasterMinutes *int   `json:"time_waster_minutes,omitempty"`
}

// POST /api/{user}/entry
// Levels refresh after every entry write, so a measurement that completes
// a tier advances the user immediately.
func (s *Server) handleLogEntry(w http.ResponseWriter, r *http.Request) {
	var req logEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.tracker.LogEntry(userID(r), domain.DailyEntry{
		Date:              req.Date,
		PresenceScore:     req.PresenceScore,
		ProductivityScore: req.ProductivityScore,
		DeepWorkSets:      req.DeepWorkSets,
		TimeWasterMinutes: req.TimeWasterMinutes,
	})
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
		"entry":  entry,
		"levels": refresh,
	})
}

// GET /api/{user}/entries?start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := s.tracker.ListEntries(userID(r), q.Get("start"), q.Get("end"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.DailyEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// GET /api/{user}/entry/{date}
func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.tracker.GetEntry(userID(r), chi.URLParam(r, "date"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, domain.ErrEntryNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ─── Actions ────────────────────────────────────────────────────────────────

type logActionRequest struct {
	Category domain.ActionCategory `json:"category"`
	Note     string                `json:"note,omitempty"`
}

// POST /api/{user}/actions
func (s *Server) handleLogAction(w http.ResponseWriter, r *http.Request) {
	var req logActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	action, err := s.tracker.LogAction(userID(r), req.Category, req.Note)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	counts, err := s.tracker.ActionCounts(userID(r), action.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"action": action,
		"counts": counts,
	})
}

// GET /api/{user}/actions?date=YYYY-MM-DD
func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	actions, err := s.tracker.ListActions(userID(r), r.URL.Query().Get("date"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if actions == nil {
		actions = []domain.FiveSecondRuleAction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"actions": actions,
		"counts":  domain.CountActions(actions),
	})
}

// GET /api/{user}/actions/counts?date=YYYY-MM-DD
func (s *Server) handleActionCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.tracker.ActionCounts(userID(r), r.URL.Query().Get("date"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
