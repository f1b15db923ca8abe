package progression

import (
	"math"

	"github.com/mounacademy/ninth/internal/domain"
)

// productivityTier is one row of the Character 9 requirement table.
// MaxTimeWasterMinutes is nil when the tier carries no ceiling.
type productivityTier struct {
	Level                int
	RequiredDays         int
	MinProductivityScore float64
	MinPresenceScore     float64
	MinSetsPerDay        float64
	MaxTimeWasterMinutes *int
	RequiresDailyGoals   bool
	RequiresWeeklyGoals  bool
	RequiresMonthlyGoals bool
	Description          string
}

// productivityTiers is the fixed 5-tier table, indexed by level number
// minus one. As with presence, the row of level L+1 governs the jump out
// of level L, and the level-5 row is display-only.
var productivityTiers = [domain.MaxLevel]productivityTier{
	{
		Level: 1, RequiredDays: 3,
		MinProductivityScore: 2, MinPresenceScore: 2, MinSetsPerDay: 12,
		Description: "Productivity >=2, Presence >=2, 12+ sets/day for 3 days",
	},
	{
		Level: 2, RequiredDays: 7,
		MinProductivityScore: 2, MinPresenceScore: 2, MinSetsPerDay: 12,
		MaxTimeWasterMinutes: domain.IntPtr(30),
		RequiresDailyGoals:   true,
		Description:          "Level 1 + time wasters <=30min + daily goals for 7 days",
	},
	{
		Level: 3, RequiredDays: 14,
		MinProductivityScore: 2, MinPresenceScore: 2, MinSetsPerDay: 12,
		MaxTimeWasterMinutes: domain.IntPtr(30),
		RequiresDailyGoals:   true, RequiresWeeklyGoals: true,
		Description: "Level 2 + weekly goals for 14 days",
	},
	{
		Level: 4, RequiredDays: 28,
		MinProductivityScore: 2, MinPresenceScore: 2, MinSetsPerDay: 12,
		MaxTimeWasterMinutes: domain.IntPtr(30),
		RequiresDailyGoals:   true, RequiresWeeklyGoals: true, RequiresMonthlyGoals: true,
		Description: "Level 3 + monthly goals for 28 days",
	},
	{
		Level: 5, RequiredDays: 28,
		MinProductivityScore: 3, MinPresenceScore: 3, MinSetsPerDay: 12,
		MaxTimeWasterMinutes: domain.IntPtr(30),
		RequiresDailyGoals:   true, RequiresWeeklyGoals: true, RequiresMonthlyGoals: true,
		Description: "Level 4 + Productivity >=3, Presence >=3 for 28 days",
	},
}

// nextProductivityTier clamps to the final row at level 5.
func nextProductivityTier(level int) productivityTier {
	if level < domain.MaxLevel {
		return productivityTiers[level]
	}
	return productivityTiers[domain.MaxLevel-1]
}

// ProductivityLevelProgress computes the display snapshot of the
// Character 9 game. The day count covers every window entry regardless of
// which fields are populated, and each average uses only the entries
// where that specific field is present (independent denominators). This
// is deliberately looser than the level-up gate — reward visibility vs
// strict advancement — and must stay a separate code path.
func ProductivityLevelProgress(
	entries []domain.DailyEntry,
	dailyGoals, weeklyGoals, monthlyGoals []domain.Goal,
	currentLevel int,
	levelStartDate string,
) domain.ProductivityProgress {
	window := entriesSince(entries, levelStartDate)

	avgProductivity := fieldAverage(window, func(e domain.DailyEntry) *int { return e.ProductivityScore })
	avgPresence := fieldAverage(window, func(e domain.DailyEntry) *int { return e.PresenceScore })
	avgSets := fieldAverage(window, func(e domain.DailyEntry) *int { return e.DeepWorkSets })
	avgTimeWaster := fieldAverage(window, func(e domain.DailyEntry) *int { return e.TimeWasterMinutes })

	next := nextProductivityTier(currentLevel)
	return domain.ProductivityProgress{
		CurrentLevel:             currentLevel,
		DaysAtCurrentLevel:       len(window),
		AverageProductivityScore: round1(avgProductivity),
		AveragePresenceScore:     round1(avgPresence),
		AverageSetsPerDay:        round1(avgSets),
		AverageTimeWasterMinutes: int(math.Round(avgTimeWaster)),
		DailyGoalsAchievedRate:   completionRate(dailyGoals, levelStartDate),
		WeeklyGoalsAchievedRate:  completionRate(weeklyGoals, domain.WeekPrefix(levelStartDate)),
		MonthlyGoalsAchievedRate: completionRate(monthlyGoals, domain.MonthPrefix(levelStartDate)),
		RequiredDays:             next.RequiredDays,
		Requirements: domain.ProductivityRequirements{
			MinProductivityScore: next.MinProductivityScore,
			MinPresenceScore:     next.MinPresenceScore,
			MinSetsPerDay:        next.MinSetsPerDay,
			MaxTimeWasterMinutes: next.MaxTimeWasterMinutes,
			DailyGoals:           next.RequiresDailyGoals,
			WeeklyGoals:          next.RequiresWeeklyGoals,
			MonthlyGoals:         next.RequiresMonthlyGoals,
		},
	}
}

// CheckProductivityLevelUp reports whether the user has met every
// requirement of the next tier. Stricter than the progress display: the
// day quota must be met by entries carrying ALL of productivity score,
// presence score, and deep-work sets — partial-data days display fine but
// do not advance a level. When the tier has a time-waster ceiling, the
// entries carrying that field must meet the quota too.
func CheckProductivityLevelUp(
	entries []domain.DailyEntry,
	dailyGoals, weeklyGoals, monthlyGoals []domain.Goal,
	currentLevel int,
	levelStartDate string,
) bool {
	if currentLevel >= domain.MaxLevel {
		return false
	}

	next := productivityTiers[currentLevel]
	window := entriesSince(entries, levelStartDate)
	if len(window) < next.RequiredDays {
		return false
	}

	var scored []domain.DailyEntry
	for _, e := range window {
		if e.ProductivityScore != nil && e.PresenceScore != nil && e.DeepWorkSets != nil {
			scored = append(scored, e)
		}
	}
	if len(scored) < next.RequiredDays {
		return false
	}

	var sumProd, sumPres, sumSets int
	for _, e := range scored {
		sumProd += *e.ProductivityScore
		sumPres += *e.PresenceScore
		sumSets += *e.DeepWorkSets
	}
	n := float64(len(scored))
	if float64(sumProd)/n < next.MinProductivityScore {
		return false
	}
	if float64(sumPres)/n < next.MinPresenceScore {
		return false
	}
	if float64(sumSets)/n < next.MinSetsPerDay {
		return false
	}

	if next.MaxTimeWasterMinutes != nil {
		var withWaster []domain.DailyEntry
		for _, e := range window {
			if e.TimeWasterMinutes != nil {
				withWaster = append(withWaster, e)
			}
		}
		if len(withWaster) < next.RequiredDays {
			return false
		}
		sum := 0
		for _, e := range withWaster {
			sum += *e.TimeWasterMinutes
		}
		if float64(sum)/float64(len(withWaster)) > float64(*next.MaxTimeWasterMinutes) {
			return false
		}
	}

	// Goal gates: at least one goal of the cadence must exist in the
	// window and every one of them must be completed.
	if next.RequiresDailyGoals && !goalGate(dailyGoals, levelStartDate) {
		return false
	}
	if next.RequiresWeeklyGoals && !goalGate(weeklyGoals, domain.WeekPrefix(levelStartDate)) {
		return false
	}
	if next.RequiresMonthlyGoals && !goalGate(monthlyGoals, domain.MonthPrefix(levelStartDate)) {
		return false
	}
	return true
}

// entriesSince filters to entries dated on/after the level start date.
func entriesSince(entries []domain.DailyEntry, levelStartDate string) []domain.DailyEntry {
	var out []domain.DailyEntry
	for _, e := range entries {
		if e.Date >= levelStartDate {
			out = append(out, e)
		}
	}
	return out
}

// fieldAverage averages one optional field over the entries where it is
// present. Zero when no entry carries the field.
func fieldAverage(entries []domain.DailyEntry, field func(domain.DailyEntry) *int) float64 {
	sum, n := 0, 0
	for _, e := range entries {
		if v := field(e); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// completionRate is the window completion percentage for display: 0 when
// the window holds no goals.
func completionRate(goals []domain.Goal, since string) int {
	total, done := 0, 0
	for _, g := range goals {
		if g.Date >= since {
			total++
			if g.Completed {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// goalGate is the strict advancement check for one goal cadence.
func goalGate(goals []domain.Goal, since string) bool {
	found := false
	for _, g := range goals {
		if g.Date < since {
			continue
		}
		if !g.Completed {
			return false
		}
		found = true
	}
	return found
}
