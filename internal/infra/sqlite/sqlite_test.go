package sqlite

import (
	"testing"
	"time"

	"github.com/mounacademy/ninth/internal/domain"
)

const testUser = "u1"

func testDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	d, err := Open(dir)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	d.Close()

	// Reopening runs the same migrations against the existing schema.
	d, err = Open(dir)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer d.Close()
	if err := d.Ping(); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestVoteOverwritesSameDay(t *testing.T) {
	d := testDB(t)
	ts := time.Now()

	first := domain.DailyVote{ID: "a", Date: "2025-07-10", Vote: domain.VoteNo, Timestamp: ts}
	if err := d.PutVote(testUser, first); err != nil {
		t.Fatalf("put: %v", err)
	}
	second := domain.DailyVote{ID: "b", Date: "2025-07-10", Vote: domain.VoteYes, Note: "showed up", Timestamp: ts}
	if err := d.PutVote(testUser, second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := d.GetVote(testUser, "2025-07-10")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Vote != domain.VoteYes || got.Note != "showed up" {
		t.Errorf("expected overwritten yes vote, got %+v", got)
	}

	votes, err := d.ListVotes(testUser)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(votes) != 1 {
		t.Errorf("same-day vote must not duplicate, got %d rows", len(votes))
	}
}

func TestVoteMissingDay(t *testing.T) {
	d := testDB(t)
	got, err := d.GetVote(testUser, "2025-07-10")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing vote, got %+v", got)
	}
}

func TestEntryOptionalFieldsRoundTrip(t *testing.T) {
	d := testDB(t)

	e := domain.DailyEntry{
		ID: "e1", Date: "2025-07-10",
		PresenceScore: domain.IntPtr(9),
		DeepWorkSets:  domain.IntPtr(12),
		Timestamp:     time.Now(),
	}
	if err := d.PutEntry(testUser, e); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := d.GetEntry(testUser, "2025-07-10")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry")
	}
	if got.PresenceScore == nil || *got.PresenceScore != 9 {
		t.Errorf("presence score lost: %+v", got)
	}
	if got.ProductivityScore != nil || got.TimeWasterMinutes != nil {
		t.Errorf("absent fields must stay nil, got %+v", got)
	}
}

func TestEntryListSince(t *testing.T) {
	d := testDB(t)
	for _, date := range []string{"2025-07-08", "2025-07-09", "2025-07-10"} {
		e := domain.DailyEntry{ID: date, Date: date, PresenceScore: domain.IntPtr(8), Timestamp: time.Now()}
		if err := d.PutEntry(testUser, e); err != nil {
			t.Fatalf("put %s: %v", date, err)
		}
	}

	entries, err := d.ListEntriesSince(testUser, "2025-07-09")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Date != "2025-07-09" {
		t.Errorf("expected oldest first, got %s", entries[0].Date)
	}
}

func TestActionsAppend(t *testing.T) {
	d := testDB(t)
	ts := time.Now()

	for i, cat := range []domain.ActionCategory{domain.ActionSocial, domain.ActionSocial, domain.ActionPresence} {
		a := domain.FiveSecondRuleAction{
			ID: string(rune('a' + i)), Date: "2025-07-10", Category: cat, Timestamp: ts,
		}
		if err := d.InsertAction(testUser, a); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	actions, err := d.ListActionsByDate(testUser, "2025-07-10")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("actions are append-only, expected 3, got %d", len(actions))
	}
	counts := domain.CountActions(actions)
	if counts.Social != 2 || counts.Presence != 1 {
		t.Errorf("unexpected counts %+v", counts)
	}
}

func TestGoalLifecycle(t *testing.T) {
	d := testDB(t)
	g := domain.Goal{
		ID: "g1", Type: domain.GoalWeekly, Title: "ship the report",
		Date: "2025-W28", CreatedAt: time.Now(),
	}
	if err := d.PutGoal(testUser, g); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := d.SetGoalCompleted(testUser, "g1", true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	goals, err := d.ListGoals(testUser, domain.GoalWeekly)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 1 || !goals[0].Completed {
		t.Errorf("expected one completed weekly goal, got %+v", goals)
	}

	if err := d.DeleteGoal(testUser, "g1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := d.DeleteGoal(testUser, "g1"); err != domain.ErrGoalNotFound {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestGoalCompleteMissing(t *testing.T) {
	d := testDB(t)
	if err := d.SetGoalCompleted(testUser, "nope", true); err != domain.ErrGoalNotFound {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestHabitArchiveKeepsCompletions(t *testing.T) {
	d := testDB(t)
	h := domain.Habit{ID: "h1", Name: "meditate", CreatedAt: time.Now()}
	if err := d.PutHabit(testUser, h); err != nil {
		t.Fatalf("put habit: %v", err)
	}
	c := domain.HabitCompletion{
		ID: domain.CompletionID("h1", "2025-07-10"), HabitID: "h1",
		Date: "2025-07-10", Completed: true, Timestamp: time.Now(),
	}
	if err := d.PutHabitCompletion(testUser, c); err != nil {
		t.Fatalf("put completion: %v", err)
	}

	if err := d.ArchiveHabit(testUser, "h1"); err != nil {
		t.Fatalf("archive: %v", err)
	}

	active, err := d.ListHabits(testUser, false)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("archived habit still listed as active: %+v", active)
	}
	all, err := d.ListHabits(testUser, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 || !all[0].Archived {
		t.Errorf("expected one archived habit, got %+v", all)
	}

	completions, err := d.ListCompletionsByDate(testUser, "2025-07-10")
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("completions must survive archiving, got %d", len(completions))
	}
}

func TestHabitCompletionToggleOverwrites(t *testing.T) {
	d := testDB(t)
	id := domain.CompletionID("h1", "2025-07-10")
	for _, done := range []bool{true, false} {
		c := domain.HabitCompletion{
			ID: id, HabitID: "h1", Date: "2025-07-10",
			Completed: done, Timestamp: time.Now(),
		}
		if err := d.PutHabitCompletion(testUser, c); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	completions, err := d.ListCompletionsByDate(testUser, "2025-07-10")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(completions) != 1 {
		t.Fatalf("toggle must overwrite, got %d rows", len(completions))
	}
	if completions[0].Completed {
		t.Error("expected final toggle state false")
	}
}

func TestSettingsDefaultsUntilSaved(t *testing.T) {
	d := testDB(t)

	s, err := d.GetSettings(testUser)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s != domain.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", s)
	}

	s.MorningReminderTime = "06:30"
	s.HourlyNotificationsEnabled = true
	s.HourlyNotificationStart = "09:00"
	s.HourlyNotificationEnd = "17:00"
	if err := d.PutSettings(testUser, s); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := d.GetSettings(testUser)
	if err != nil {
		t.Fatalf("reget: %v", err)
	}
	if got != s {
		t.Errorf("settings round trip mismatch: %+v vs %+v", got, s)
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	d := testDB(t)

	got, err := d.GetGameState(testUser)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil before first save, got %+v", got)
	}

	st := domain.NewLevelsGameState("2025-07-10")
	st.PresenceLevel = 3
	st.PresenceLevelStartDate = "2025-07-01"
	if err := d.PutGameState(testUser, st); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err = d.GetGameState(testUser)
	if err != nil {
		t.Fatalf("reget: %v", err)
	}
	if got == nil || *got != st {
		t.Errorf("state round trip mismatch: %+v vs %+v", got, st)
	}
}

func TestReminderLog(t *testing.T) {
	d := testDB(t)
	now := time.Now().Unix()

	id, err := d.InsertReminder(domain.Reminder{
		UserID: testUser, Kind: domain.ReminderMorning,
		Title: "Morning vote", Body: "Cast today's vote", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	pending, err := d.PendingReminders(testUser)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("expected one pending reminder, got %+v", pending)
	}

	if err := d.MarkReminderShown(id); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, err = d.PendingReminders(testUser)
	if err != nil {
		t.Fatalf("pending after shown: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("shown reminder still pending: %+v", pending)
	}

	n, err := d.CountRemindersSince(testUser, domain.ReminderMorning, now-60)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
	n, err = d.CountRemindersSince(testUser, domain.ReminderEvening, now-60)
	if err != nil {
		t.Fatalf("count other kind: %v", err)
	}
	if n != 0 {
		t.Errorf("expected count 0 for other kind, got %d", n)
	}
}
