package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mounacademy/ninth/internal/api"
	"github.com/mounacademy/ninth/internal/app/reminder"
	"github.com/mounacademy/ninth/internal/app/tracker"
	"github.com/mounacademy/ninth/internal/infra/sqlite"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := api.NewServer(tracker.New(db), reminder.NewScheduler(db))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp, out
}

func TestHealthAndVersion(t *testing.T) {
	ts := testServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/health", nil)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("health: %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/version", nil)
	if resp.StatusCode != http.StatusOK || body["version"] == "" {
		t.Errorf("version: %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/status", nil)
	if resp.StatusCode != http.StatusOK || body["healthy"] != true {
		t.Errorf("status: %d %v", resp.StatusCode, body)
	}
}

func TestVoteFlow(t *testing.T) {
	ts := testServer(t)
	base := ts.URL + "/api/u1"

	// No vote yet.
	resp, _ := doJSON(t, http.MethodGet, base+"/vote/today", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 before voting, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, base+"/vote", map[string]string{"vote": "yes"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cast: %d %v", resp.StatusCode, body)
	}
	streak := body["streak"].(map[string]any)
	if streak["current_streak"].(float64) != 1 {
		t.Errorf("expected streak 1, got %v", streak)
	}

	resp, _ = doJSON(t, http.MethodGet, base+"/vote/today", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("today after voting: %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, base+"/vote", map[string]string{"vote": "maybe"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid vote: expected 400, got %d", resp.StatusCode)
	}
}

func TestEntryFlowRefreshesLevels(t *testing.T) {
	ts := testServer(t)
	base := ts.URL + "/api/u1"

	resp, body := doJSON(t, http.MethodPost, base+"/entry", map[string]any{"presence_score": 9})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("entry: %d %v", resp.StatusCode, body)
	}
	if body["entry"] == nil || body["levels"] == nil {
		t.Fatalf("expected entry and levels in response, got %v", body)
	}
	levels := body["levels"].(map[string]any)
	state := levels["state"].(map[string]any)
	if state["presence_level"].(float64) != 1 {
		t.Errorf("one entry must not level up: %v", state)
	}

	// Second write on the same day merges.
	_, body = doJSON(t, http.MethodPost, base+"/entry", map[string]any{"deep_work_sets": 12})
	entry := body["entry"].(map[string]any)
	if entry["presence_score"].(float64) != 9 || entry["deep_work_sets"].(float64) != 12 {
		t.Errorf("merge lost a field: %v", entry)
	}

	resp, _ = doJSON(t, http.MethodPost, base+"/entry", map[string]any{"presence_score": 11})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("score 11: expected 400, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, base+"/entries", nil)
	if resp.StatusCode != http.StatusOK || len(body["entries"].([]any)) != 1 {
		t.Errorf("entries list: %d %v", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, http.MethodGet, base+"/entries?start=bogus", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad range bound: expected 400, got %d", resp.StatusCode)
	}
}

func TestActionFlow(t *testing.T) {
	ts := testServer(t)
	base := ts.URL + "/api/u1"

	resp, body := doJSON(t, http.MethodPost, base+"/actions", map[string]string{"category": "social"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("action: %d %v", resp.StatusCode, body)
	}
	counts := body["counts"].(map[string]any)
	if counts["social"].(float64) != 1 {
		t.Errorf("counts: %v", counts)
	}

	resp, _ = doJSON(t, http.MethodPost, base+"/actions", map[string]string{"category": "chores"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown category: expected 400, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, base+"/actions", nil)
	if resp.StatusCode != http.StatusOK || len(body["actions"].([]any)) != 1 {
		t.Errorf("actions list: %d %v", resp.StatusCode, body)
	}
}

func TestGoalFlow(t *testing.T) {
	ts := testServer(t)
	base := ts.URL + "/api/u1"

	resp, goal := doJSON(t, http.MethodPost, base+"/goals", map[string]string{"type": "daily", "title": "ship"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d %v", resp.StatusCode, goal)
	}
	id := goal["id"].(string)

	resp, body := doJSON(t, http.MethodPost, fmt.Sprintf("%s/goals/%s/toggle", base, id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle: %d %v", resp.StatusCode, body)
	}
	if !body["goal"].(map[string]any)["completed"].(bool) {
		t.Error("toggle should complete the goal")
	}
	if body["levels"] == nil {
		t.Error("goal toggle should refresh levels")
	}

	_, list := doJSON(t, http.MethodGet, base+"/goals/daily", nil)
	if len(list["goals"].([]any)) != 1 {
		t.Errorf("list: %v", list)
	}

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/goals/%s", base, id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/goals/%s", base, id), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("double delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestHabitFlow(t *testing.T) {
	ts := testServer(t)
	base := ts.URL + "/api/u1"

	resp, habit := doJSON(t, http.MethodPost, base+"/habits", map[string]string{"name": "meditate"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d %v", resp.StatusCode, habit)
	}
	id := habit["id"].(string)

	resp, completion := doJSON(t, http.MethodPost, fmt.Sprintf("%s/habits/%s/toggle", base, id), nil)
	if resp.StatusCode != http.StatusOK || completion["completed"] != true {
		t.Fatalf("toggle: %d %v", resp.StatusCode, completion)
	}

	resp, renamed := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/habits/%s", base, id), map[string]string{"name": "meditate daily"})
	if resp.StatusCode != http.StatusOK || renamed["name"] != "meditate daily" {
		t.Fatalf("rename: %d %v", resp.StatusCode, renamed)
	}

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/habits/%s", base, id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("archive: %d", resp.StatusCode)
	}
	_, list := doJSON(t, http.MethodGet, base+"/habits", nil)
	if len(list["habits"].([]any)) != 0 {
		t.Errorf("archived habit still listed: %v", list)
	}
}

func TestSnapshotAndTrends(t *testing.T) {
	ts := testServer(t)
	base := ts.URL + "/api/u1"

	doJSON(t, http.MethodPost, base+"/vote", map[string]string{"vote": "yes"})
	doJSON(t, http.MethodPost, base+"/entry", map[string]any{"presence_score": 8})

	resp, snap := doJSON(t, http.MethodGet, base+"/snapshot", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot: %d", resp.StatusCode)
	}
	if snap["vote"] == nil || snap["entry"] == nil {
		t.Errorf("snapshot missing sections: %v", snap)
	}

	resp, trends := doJSON(t, http.MethodGet, base+"/trends", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("trends: %d", resp.StatusCode)
	}
	if len(trends["dates"].([]any)) != 7 {
		t.Errorf("trends axis: %v", trends["dates"])
	}

	resp, _ = doJSON(t, http.MethodGet, base+"/trends?end=bogus", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad end date: expected 400, got %d", resp.StatusCode)
	}
}

func TestLevelsRefreshRoute(t *testing.T) {
	ts := testServer(t)
	base := ts.URL + "/api/u1"

	resp, body := doJSON(t, http.MethodPost, base+"/levels/refresh", nil)
	if resp.StatusCode != http.StatusOK || body["state"] == nil {
		t.Fatalf("refresh: %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, base+"/levels", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("levels: %d", resp.StatusCode)
	}
	state := body["state"].(map[string]any)
	if state["presence_level"].(float64) != 1 || state["productivity_level"].(float64) != 1 {
		t.Errorf("fresh user should be level 1: %v", state)
	}
}

func TestSettingsFlow(t *testing.T) {
	ts := testServer(t)
	base := ts.URL + "/api/u1"

	_, settings := doJSON(t, http.MethodGet, base+"/settings", nil)
	if settings["morning_reminder_time"] != "07:00" {
		t.Errorf("defaults: %v", settings)
	}

	settings["evening_reminder_time"] = "21:30"
	resp, _ := doJSON(t, http.MethodPut, base+"/settings", settings)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: %d", resp.StatusCode)
	}

	settings["morning_reminder_time"] = "sunrise"
	resp, _ = doJSON(t, http.MethodPut, base+"/settings", settings)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad time: expected 400, got %d", resp.StatusCode)
	}
}

func TestNotificationsEmpty(t *testing.T) {
	ts := testServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/u1/notifications", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("notifications: %d", resp.StatusCode)
	}
	if len(body["notifications"].([]any)) != 0 {
		t.Errorf("expected empty queue, got %v", body)
	}
}
