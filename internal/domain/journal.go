package domain

import "time"

// ─── Daily Vote ─────────────────────────────────────────────────────────────

// VoteValue is the yes/no identity vote. Any vote counts toward the
// streak — a streak measures participation, not a positive outcome.
type VoteValue string

const (
	VoteYes VoteValue = "yes"
	VoteNo  VoteValue = "no"
)

// Valid reports whether v is a known vote value.
func (v VoteValue) Valid() bool {
	return v == VoteYes || v == VoteNo
}

// DailyVote is the once-per-day identity vote. The day key is the natural
// document key: a second vote for the same day overwrites, never duplicates.
type DailyVote struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // day key
	Vote      VoteValue `json:"vote"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ─── Daily Entry ────────────────────────────────────────────────────────────

// DailyEntry holds the numeric measurements for one day. Every field is
// independently optional: nil means "not measured", never zero. Entries
// are upserted field by field as the user logs through the day.
type DailyEntry struct {
	ID                string    `json:"id"`
	Date              string    `json:"date"` // day key
	PresenceScore     *int      `json:"presence_score,omitempty"`      // 1–10
	ProductivityScore *int      `json:"productivity_score,omitempty"`  // 1–10
	DeepWorkSets      *int      `json:"deep_work_sets,omitempty"`      // 30-min sets
	TimeWasterMinutes *int      `json:"time_waster_minutes,omitempty"` // manual input
	Timestamp         time.Time `json:"timestamp"`
}

// Merge overlays the non-nil fields of update onto e, keeping existing
// measurements for fields the update does not carry.
func (e DailyEntry) Merge(update DailyEntry) DailyEntry {
	out := e
	if update.PresenceScore != nil {
		out.PresenceScore = update.PresenceScore
	}
	if update.ProductivityScore != nil {
		out.ProductivityScore = update.ProductivityScore
	}
	if update.DeepWorkSets != nil {
		out.DeepWorkSets = update.DeepWorkSets
	}
	if update.TimeWasterMinutes != nil {
		out.TimeWasterMinutes = update.TimeWasterMinutes
	}
	out.Timestamp = update.Timestamp
	return out
}

// ─── 5-Second-Rule Actions ──────────────────────────────────────────────────

// ActionCategory tags a 5-second-rule tap.
type ActionCategory string

const (
	ActionSocial       ActionCategory = "social"
	ActionProductivity ActionCategory = "productivity"
	ActionPresence     ActionCategory = "presence"
)

// Valid reports whether c is a known category.
func (c ActionCategory) Valid() bool {
	switch c {
	case ActionSocial, ActionProductivity, ActionPresence:
		return true
	}
	return false
}

// FiveSecondRuleAction is one tap in the append-only action log.
// Multiple actions per day are expected.
type FiveSecondRuleAction struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"` // day key
	Category  ActionCategory `json:"category"`
	Note      string         `json:"note,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ActionCounts is the per-category tally for a single day.
type ActionCounts struct {
	Social       int `json:"social"`
	Productivity int `json:"productivity"`
	Presence     int `json:"presence"`
}

// CountActions tallies actions by category.
func CountActions(actions []FiveSecondRuleAction) ActionCounts {
	var c ActionCounts
	for _, a := range actions {
		switch a.Category {
		case ActionSocial:
			c.Social++
		case ActionProductivity:
			c.Productivity++
		case ActionPresence:
			c.Presence++
		}
	}
	return c
}

// IntPtr is a convenience for building optional entry fields.
func IntPtr(v int) *int { return &v }
