package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/avezina/skilltrack/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	kv, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Logf("close failed: %v", err)
		}
	})
	return New(kv)
}

func TestCategoriesScopedByUser(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	if err := s.SaveCategories(ctx, "alice", []models.Category{
		{ID: "c1", Name: "Guitar", CreatedAt: time.Now()},
	}); err != nil {
		t.Fatalf("SaveCategories failed: %v", err)
	}
	if err := s.SaveCategories(ctx, "bob", []models.Category{
		{ID: "c2", Name: "Chess", CreatedAt: time.Now()},
	}); err != nil {
		t.Fatalf("SaveCategories failed: %v", err)
	}

	cats, err := s.Categories(ctx, "alice")
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(cats) != 1 || cats[0].ID != "c1" {
		t.Fatalf("expected only alice's category, got %+v", cats)
	}
	if cats[0].UserID != "alice" {
		t.Fatalf("expected owner stamped on save, got %q", cats[0].UserID)
	}
}

func TestSaveCategoriesReplacesOnlyOwnSlice(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	if err := s.SaveCategories(ctx, "alice", []models.Category{{ID: "c1", Name: "Guitar"}}); err != nil {
		t.Fatalf("SaveCategories failed: %v", err)
	}
	if err := s.SaveCategories(ctx, "bob", []models.Category{{ID: "c2", Name: "Chess"}}); err != nil {
		t.Fatalf("SaveCategories failed: %v", err)
	}
	// Alice renames; Bob's record must survive.
	if err := s.SaveCategories(ctx, "alice", []models.Category{{ID: "c1", Name: "Bass"}}); err != nil {
		t.Fatalf("SaveCategories failed: %v", err)
	}

	bobs, err := s.Categories(ctx, "bob")
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(bobs) != 1 || bobs[0].Name != "Chess" {
		t.Fatalf("bob's categories clobbered: %+v", bobs)
	}
	alices, _ := s.Categories(ctx, "alice")
	if len(alices) != 1 || alices[0].Name != "Bass" {
		t.Fatalf("alice's rename lost: %+v", alices)
	}
}

func TestActiveSessionOwnership(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	active := models.ActiveSession{
		UserID:     "alice",
		CategoryID: "c1",
		StartTime:  time.Now().Truncate(time.Millisecond),
	}
	if err := s.SaveActiveSession(ctx, active); err != nil {
		t.Fatalf("SaveActiveSession failed: %v", err)
	}

	got, err := s.ActiveSession(ctx, "alice")
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if got == nil || got.CategoryID != "c1" {
		t.Fatalf("expected alice's active session, got %+v", got)
	}

	other, err := s.ActiveSession(ctx, "bob")
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if other != nil {
		t.Fatalf("bob must not see alice's active session")
	}

	if err := s.ClearActiveSession(ctx); err != nil {
		t.Fatalf("ClearActiveSession failed: %v", err)
	}
	got, err = s.ActiveSession(ctx, "alice")
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected cleared active session, got %+v", got)
	}
}

func TestSessionsRoundTripDurations(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	in := []models.Session{{
		ID:         "s1",
		CategoryID: "c1",
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Duration:   25 * time.Minute,
		Notes:      "scales",
		Date:       "2024-03-01",
		IsTask:     true,
	}}
	if err := s.SaveSessions(ctx, "alice", in); err != nil {
		t.Fatalf("SaveSessions failed: %v", err)
	}
	out, err := s.Sessions(ctx, "alice")
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 session, got %d", len(out))
	}
	if out[0].Duration != 25*time.Minute {
		t.Fatalf("duration lost in round trip: %v", out[0].Duration)
	}
	if !out[0].StartTime.Equal(start) {
		t.Fatalf("start time lost in round trip: %v", out[0].StartTime)
	}
	if !out[0].IsTask {
		t.Fatalf("isTask flag lost in round trip")
	}
}

func TestSettingsDefaultsWhenAbsent(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	defaults := models.Settings{DailyGoalMinutes: 60, CurrentMode: "10000"}
	got, err := s.Settings(ctx, defaults)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if got != defaults {
		t.Fatalf("expected defaults, got %+v", got)
	}

	got.DarkMode = true
	if err := s.SaveSettings(ctx, got); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	reread, err := s.Settings(ctx, defaults)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if !reread.DarkMode {
		t.Fatalf("dark mode setting lost")
	}
}

func TestInitializedMarker(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory())

	ok, err := s.Initialized(ctx, "alice")
	if err != nil {
		t.Fatalf("Initialized failed: %v", err)
	}
	if ok {
		t.Fatalf("fresh store must not be initialized")
	}
	if err := s.MarkInitialized(ctx, "alice"); err != nil {
		t.Fatalf("MarkInitialized failed: %v", err)
	}
	if err := s.MarkInitialized(ctx, "alice"); err != nil {
		t.Fatalf("MarkInitialized must be idempotent: %v", err)
	}
	ok, _ = s.Initialized(ctx, "alice")
	if !ok {
		t.Fatalf("expected initialized after marking")
	}
	ok, _ = s.Initialized(ctx, "bob")
	if ok {
		t.Fatalf("marker must be per user")
	}
}

func TestMemoryPutFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	mem.FailPuts = errors.New("disk full")
	s := New(mem)

	err := s.SaveSettings(ctx, models.Settings{DailyGoalMinutes: 30})
	if err == nil {
		t.Fatalf("expected put failure to surface")
	}
}
