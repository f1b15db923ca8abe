package domain

// ─── Levels Game State ──────────────────────────────────────────────────────

// MaxLevel is the terminal tier of both progressions.
const MaxLevel = 5

// LevelsGameState is the per-user singleton driving both level games.
// A start date marks the day the user entered their current tier and is
// the left edge of every rolling-window calculation for that tier. It is
// monotonically non-decreasing: level-ups only ever move it forward.
type LevelsGameState struct {
	PresenceLevel              int    `json:"presence_level"` // 1–5
	PresenceLevelStartDate     string `json:"presence_level_start_date"`
	ProductivityLevel          int    `json:"productivity_level"` // 1–5
	ProductivityLevelStartDate string `json:"productivity_level_start_date"`
}

// NewLevelsGameState returns the level-1 state created on first use.
func NewLevelsGameState(today string) LevelsGameState {
	return LevelsGameState{
		PresenceLevel:              1,
		PresenceLevelStartDate:     today,
		ProductivityLevel:          1,
		ProductivityLevelStartDate: today,
	}
}

// ─── Streak ─────────────────────────────────────────────────────────────────

// StreakInfo is the derived vote-streak summary.
type StreakInfo struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalVotes    int `json:"total_votes"`
}

// ─── Presence Progress ──────────────────────────────────────────────────────

// PresenceProgress is the display snapshot of the presence level game.
// RequiredDays/RequiredScore describe the NEXT tier's threshold (clamped
// to the final tier once at level 5).
type PresenceProgress struct {
	CurrentLevel       int     `json:"current_level"`
	DaysAtCurrentLevel int     `json:"days_at_current_level"`
	AverageScore       float64 `json:"average_score"` // 1 decimal
	RequiredDays       int     `json:"required_days"`
	RequiredScore      float64 `json:"required_score"`
}

// ─── Productivity Progress ──────────────────────────────────────────────────

// ProductivityRequirements is the requirement row shown for the next
// productivity tier. MaxTimeWasterMinutes is nil when the tier has no
// time-waster ceiling.
type ProductivityRequirements struct {
	MinProductivityScore float64 `json:"min_productivity_score"`
	MinPresenceScore     float64 `json:"min_presence_score"`
	MinSetsPerDay        float64 `json:"min_sets_per_day"`
	MaxTimeWasterMinutes *int    `json:"max_time_waster_minutes,omitempty"`
	DailyGoals           bool    `json:"daily_goals"`
	WeeklyGoals          bool    `json:"weekly_goals"`
	MonthlyGoals         bool    `json:"monthly_goals"`
}

// ProductivityProgress is the display snapshot of the Character 9 level
// game. It is deliberately more permissive than the level-up gate: the
// day count covers every window entry regardless of which fields are
// populated, and each average uses its own denominator.
type ProductivityProgress struct {
	CurrentLevel              int                      `json:"current_level"`
	DaysAtCurrentLevel        int                      `json:"days_at_current_level"`
	AverageProductivityScore  float64                  `json:"average_productivity_score"` // 1 decimal
	AveragePresenceScore      float64                  `json:"average_presence_score"`     // 1 decimal
	AverageSetsPerDay         float64                  `json:"average_sets_per_day"`       // 1 decimal
	AverageTimeWasterMinutes  int                      `json:"average_time_waster_minutes"`
	DailyGoalsAchievedRate    int                      `json:"daily_goals_achieved_rate"`   // percent
	WeeklyGoalsAchievedRate   int                      `json:"weekly_goals_achieved_rate"`  // percent
	MonthlyGoalsAchievedRate  int                      `json:"monthly_goals_achieved_rate"` // percent
	RequiredDays              int                      `json:"required_days"`
	Requirements              ProductivityRequirements `json:"requirements"`
}

// ─── Weekly Trends ──────────────────────────────────────────────────────────

// WeeklyTrends is the 7-day chart series for the progress screen.
// Score slots are nil for days with no measurement.
type WeeklyTrends struct {
	Dates                      []string   `json:"dates"`
	PresenceScores             []*int     `json:"presence_scores"`
	ProductivityScores         []*int     `json:"productivity_scores"`
	FiveSecondRuleSocial       []int      `json:"five_second_rule_social"`
	FiveSecondRuleProductivity []int      `json:"five_second_rule_productivity"`
	FiveSecondRulePresence     []int      `json:"five_second_rule_presence"`
	DeepWorkSets               []int      `json:"deep_work_sets"`
	HabitCompletionRates       []float64  `json:"habit_completion_rates"` // percent per day
}
