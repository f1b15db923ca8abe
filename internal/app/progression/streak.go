// Package progression implements the derived-metrics engine: the vote
// streak calculator and the two 5-tier level progressions (presence and
// Character 9 / productivity). Everything here is pure and synchronous —
// callers hand in immutable snapshots of history, the functions hand back
// derived summaries and level-up verdicts. No I/O, no shared state.
package progression

import (
	"sort"

	"github.com/mounacademy/ninth/internal/domain"
)

// ComputeStreak derives the streak summary from the full, unordered vote
// history. today is the caller's current day key. Any vote value counts —
// the streak measures participation, not "yes" outcomes.
//
// Current streak walks backward from today; a missing vote for a
// still-open today does not zero an otherwise unbroken streak (the walk
// starts from yesterday instead). Longest streak scans the history
// pairwise: only a gap of exactly one calendar day extends a run.
func ComputeStreak(votes []domain.DailyVote, today string) domain.StreakInfo {
	if len(votes) == 0 {
		return domain.StreakInfo{}
	}

	// Dedupe by date. The store upserts by day key so duplicates should
	// not occur, but a stray duplicate must not double-count adjacency.
	have := make(map[string]struct{}, len(votes))
	dates := make([]string, 0, len(votes))
	for _, v := range votes {
		if _, ok := have[v.Date]; ok {
			continue
		}
		have[v.Date] = struct{}{}
		dates = append(dates, v.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	return domain.StreakInfo{
		CurrentStreak: currentStreak(have, today),
		LongestStreak: longestStreak(dates),
		TotalVotes:    len(votes),
	}
}

// currentStreak counts consecutive voted days ending at today, or at
// yesterday when today has no vote yet (grace policy).
func currentStreak(have map[string]struct{}, today string) int {
	check := today
	if _, ok := have[check]; !ok {
		check = prevDay(today)
		if _, ok := have[check]; !ok {
			return 0
		}
	}

	n := 0
	for check != "" {
		if _, ok := have[check]; !ok {
			break
		}
		n++
		check = prevDay(check)
	}
	return n
}

// longestStreak scans date keys sorted descending; any two consecutive
// records exactly one calendar day apart extend the running streak, any
// larger gap closes it.
func longestStreak(desc []string) int {
	longest, run := 0, 0
	for i, d := range desc {
		if i == 0 {
			run = 1
			continue
		}
		// desc[i-1] is the later date; gap is how many days before it d falls.
		gap, err := domain.DaysBetween(d, desc[i-1])
		if err == nil && gap == 1 {
			run++
			continue
		}
		if run > longest {
			longest = run
		}
		run = 1
	}
	if run > longest {
		longest = run
	}
	return longest
}

// prevDay steps one calendar day back. Day keys are validated at the
// boundary, so a parse failure here just terminates the walk.
func prevDay(key string) string {
	prev, err := domain.PrevDay(key)
	if err != nil {
		return ""
	}
	return prev
}
