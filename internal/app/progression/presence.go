package progression

import (
	"math"

	"github.com/mounacademy/ninth/internal/domain"
)

// presenceTier is one row of the presence game's requirement table.
type presenceTier struct {
	Level           int
	RequiredDays    int
	MinAverageScore float64
	Description     string
}

// presenceTiers is the fixed 5-tier table, indexed by level number minus
// one. The requirement governing the jump out of level L is the row of
// level L+1; level 5 is terminal and its row is only ever displayed.
var presenceTiers = [domain.MaxLevel]presenceTier{
	{Level: 1, RequiredDays: 7, MinAverageScore: 0, Description: "Log presence for 7 days"},
	{Level: 2, RequiredDays: 7, MinAverageScore: 9, Description: "Presence for 7 days with average >= 9"},
	{Level: 3, RequiredDays: 14, MinAverageScore: 9, Description: "Presence for 14 days with average >= 9"},
	{Level: 4, RequiredDays: 28, MinAverageScore: 9, Description: "Presence for 28 days with average >= 9"},
	{Level: 5, RequiredDays: 28, MinAverageScore: 10, Description: "Presence for 28 days with average = 10"},
}

// nextPresenceTier returns the requirement row shown (and gated) for a
// user currently at level. Clamped to the final row at level 5.
func nextPresenceTier(level int) presenceTier {
	if level < domain.MaxLevel {
		return presenceTiers[level]
	}
	return presenceTiers[domain.MaxLevel-1]
}

// PresenceLevelProgress computes the display snapshot of the presence
// game. Qualifying entries are those on/after the level start date that
// carry a presence score; days without the measurement are excluded from
// both the day count and the average, never treated as zero.
func PresenceLevelProgress(entries []domain.DailyEntry, currentLevel int, levelStartDate string) domain.PresenceProgress {
	qualifying := presenceQualifying(entries, levelStartDate)

	days := len(qualifying)
	var avg float64
	if days > 0 {
		sum := 0
		for _, e := range qualifying {
			sum += *e.PresenceScore
		}
		avg = float64(sum) / float64(days)
	}

	next := nextPresenceTier(currentLevel)
	return domain.PresenceProgress{
		CurrentLevel:       currentLevel,
		DaysAtCurrentLevel: days,
		AverageScore:       round1(avg),
		RequiredDays:       next.RequiredDays,
		RequiredScore:      next.MinAverageScore,
	}
}

// CheckPresenceLevelUp reports whether the user has met the next tier's
// requirements. Level 5 is terminal. The caller owns the transition:
// bump the level (cap 5) and reset the start date to today.
func CheckPresenceLevelUp(entries []domain.DailyEntry, currentLevel int, levelStartDate string) bool {
	if currentLevel >= domain.MaxLevel {
		return false
	}

	next := presenceTiers[currentLevel]
	qualifying := presenceQualifying(entries, levelStartDate)
	if len(qualifying) < next.RequiredDays {
		return false
	}

	sum := 0
	for _, e := range qualifying {
		sum += *e.PresenceScore
	}
	avg := float64(sum) / float64(len(qualifying))
	return avg >= next.MinAverageScore
}

// presenceQualifying filters to window entries carrying a presence score.
func presenceQualifying(entries []domain.DailyEntry, levelStartDate string) []domain.DailyEntry {
	var out []domain.DailyEntry
	for _, e := range entries {
		if e.Date >= levelStartDate && e.PresenceScore != nil {
			out = append(out, e)
		}
	}
	return out
}

// round1 rounds to one decimal place for display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
