package tracker

import (
	"fmt"

	"github.com/mounacademy/ninth/internal/domain"
)

// WeeklyTrends builds the 7-day chart series ending at (and including)
// end. An empty end means today. Score slots stay nil for days without a
// measurement so the chart can show gaps instead of zeros.
func (s *Service) WeeklyTrends(userID, end string) (domain.WeeklyTrends, error) {
	if end == "" {
		end = s.today()
	}
	endTime, err := domain.ParseDay(end)
	if err != nil {
		return domain.WeeklyTrends{}, err
	}

	days := domain.LastNDays(endTime, 7)
	since := days[0]

	entries, err := s.db.ListEntriesSince(userID, since)
	if err != nil {
		return domain.WeeklyTrends{}, fmt.Errorf("list entries: %w", err)
	}
	entryByDay := make(map[string]domain.DailyEntry, len(entries))
	for _, e := range entries {
		entryByDay[e.Date] = e
	}

	actions, err := s.db.ListActionsSince(userID, since)
	if err != nil {
		return domain.WeeklyTrends{}, fmt.Errorf("list actions: %w", err)
	}
	countsByDay := make(map[string]domain.ActionCounts)
	for _, a := range actions {
		c := countsByDay[a.Date]
		switch a.Category {
		case domain.ActionSocial:
			c.Social++
		case domain.ActionProductivity:
			c.Productivity++
		case domain.ActionPresence:
			c.Presence++
		}
		countsByDay[a.Date] = c
	}

	habits, err := s.db.ListHabits(userID, false)
	if err != nil {
		return domain.WeeklyTrends{}, fmt.Errorf("list habits: %w", err)
	}
	completions, err := s.db.ListCompletionsSince(userID, since)
	if err != nil {
		return domain.WeeklyTrends{}, fmt.Errorf("list completions: %w", err)
	}
	doneByDay := make(map[string]int)
	for _, c := range completions {
		if c.Completed {
			doneByDay[c.Date]++
		}
	}

	trends := domain.WeeklyTrends{
		Dates:                      days,
		PresenceScores:             make([]*int, len(days)),
		ProductivityScores:         make([]*int, len(days)),
		FiveSecondRuleSocial:       make([]int, len(days)),
		FiveSecondRuleProductivity: make([]int, len(days)),
		FiveSecondRulePresence:     make([]int, len(days)),
		DeepWorkSets:               make([]int, len(days)),
		HabitCompletionRates:       make([]float64, len(days)),
	}

	for i, day := range days {
		if e, ok := entryByDay[day]; ok {
			trends.PresenceScores[i] = e.PresenceScore
			trends.ProductivityScores[i] = e.ProductivityScore
			if e.DeepWorkSets != nil {
				trends.DeepWorkSets[i] = *e.DeepWorkSets
			}
		}
		c := countsByDay[day]
		trends.FiveSecondRuleSocial[i] = c.Social
		trends.FiveSecondRuleProductivity[i] = c.Productivity
		trends.FiveSecondRulePresence[i] = c.Presence
		if len(habits) > 0 {
			trends.HabitCompletionRates[i] = float64(doneByDay[day]) / float64(len(habits)) * 100
		}
	}
	return trends, nil
}
