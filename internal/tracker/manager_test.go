package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/avezina/skilltrack/internal/models"
	"github.com/avezina/skilltrack/internal/storage"
)

func TestLoadSeedsDefaultCategoriesOnce(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemory())

	m := NewManager(store, testUser)
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cats := m.Categories()
	if len(cats) != 24 {
		t.Fatalf("expected 24 seeded categories, got %d", len(cats))
	}
	seen := map[string]bool{}
	for _, c := range cats {
		if c.UserID != testUser {
			t.Fatalf("seeded category %q belongs to %q", c.Name, c.UserID)
		}
		if seen[c.Name] {
			t.Fatalf("duplicate seeded category %q", c.Name)
		}
		seen[c.Name] = true
	}
	for _, want := range []string{"English", "System Design", "Leadership", "Critical Thinking"} {
		if !seen[want] {
			t.Fatalf("expected default category %q", want)
		}
	}

	ok, err := store.Initialized(ctx, testUser)
	if err != nil {
		t.Fatalf("Initialized: %v", err)
	}
	if !ok {
		t.Fatal("Load did not mark the user initialized")
	}
}

func TestLoadDoesNotReseedAfterDeletingEverything(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemory())

	m := NewManager(store, testUser)
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for len(m.Categories()) > 0 {
		c := m.Categories()[0]
		if err := m.DeleteCategory(ctx, c.ID); err != nil {
			t.Fatalf("DeleteCategory(%s): %v", c.Name, err)
		}
	}

	again := NewManager(store, testUser)
	if err := again.Load(ctx); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if got := len(again.Categories()); got != 0 {
		t.Fatalf("deliberately emptied registry was reseeded with %d categories", got)
	}
}

func TestLoadSeedsEachUserIndependently(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemory())

	first := NewManager(store, "u1")
	if err := first.Load(ctx); err != nil {
		t.Fatalf("Load u1: %v", err)
	}
	second := NewManager(store, "u2")
	if err := second.Load(ctx); err != nil {
		t.Fatalf("Load u2: %v", err)
	}

	if len(first.Categories()) != 24 || len(second.Categories()) != 24 {
		t.Fatalf("each user should get their own defaults, got %d and %d",
			len(first.Categories()), len(second.Categories()))
	}
	if first.Categories()[0].ID == second.Categories()[0].ID {
		t.Fatal("seeded categories must not be shared across users")
	}
}

func TestStartSurvivesInMemoryWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	kvFail := errors.New("disk full")
	failing, mgr := newFailingManager(t, kvFail)

	if err := mgr.Start(ctx, "cat-guitar", ""); err == nil {
		t.Fatal("expected persist error from Start")
	} else if !errors.Is(err, kvFail) {
		t.Fatalf("persist error not surfaced: %v", err)
	}
	if mgr.Active() == nil {
		t.Fatal("in-memory timer state should survive a failed write")
	}

	// Once the store recovers, the next mutation flushes the state.
	failing.FailPuts = nil
	mgr.Pause(ctx)
	if err := mgr.Resume(ctx); err != nil {
		t.Fatalf("Resume after recovery: %v", err)
	}
	reloaded := NewManager(storage.New(failing), testUser)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Active() == nil {
		t.Fatal("recovered store should hold the active session")
	}
}

// newFailingManager builds a loaded manager whose underlying KV rejects
// writes with the given error.
func newFailingManager(t *testing.T, failWith error) (*storage.Memory, *Manager) {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemory()
	store := storage.New(kv)
	cat := models.Category{ID: "cat-guitar", UserID: testUser, Name: "Guitar", CreatedAt: time.Now()}
	if err := store.SaveCategories(ctx, testUser, []models.Category{cat}); err != nil {
		t.Fatalf("seed categories: %v", err)
	}
	if err := store.MarkInitialized(ctx, testUser); err != nil {
		t.Fatalf("mark initialized: %v", err)
	}
	m := NewManager(store, testUser)
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	kv.FailPuts = failWith
	return kv, m
}

func TestLoadPropagatesRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	boom := errors.New("backend unavailable")
	repo.EXPECT().Categories(gomock.Any(), testUser).Return(nil, boom)

	m := NewManager(repo, testUser)
	if err := m.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Load should surface the repository error, got %v", err)
	}
}

func TestEndPersistsLogBeforeClearingTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2024, 1, 4, 12, 0, 0, 0, time.Local)
	clk := &fakeClock{now: start}

	repo := NewMockRepository(ctrl)
	repo.EXPECT().Categories(gomock.Any(), testUser).Return([]models.Category{
		{ID: "cat-guitar", UserID: testUser, Name: "Guitar"},
	}, nil)
	repo.EXPECT().Initialized(gomock.Any(), testUser).Return(true, nil)
	repo.EXPECT().Sessions(gomock.Any(), testUser).Return(nil, nil)
	repo.EXPECT().ActiveSession(gomock.Any(), testUser).Return(nil, nil)
	repo.EXPECT().Settings(gomock.Any(), gomock.Any()).Return(models.Settings{DailyGoalMinutes: 60, CurrentMode: "10000"}, nil)
	repo.EXPECT().SaveActiveSession(gomock.Any(), gomock.Any()).Return(nil)
	gomock.InOrder(
		repo.EXPECT().SaveSessions(gomock.Any(), testUser, gomock.Any()).Return(nil),
		repo.EXPECT().ClearActiveSession(gomock.Any()).Return(nil),
	)

	m := NewManager(repo, testUser, WithClock(clk.Now))
	ctx := context.Background()
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Start(ctx, "cat-guitar", ""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clk.Advance(90 * time.Minute)
	sess, err := m.End(ctx, false, false)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if sess == nil || sess.Duration != 90*time.Minute {
		t.Fatalf("unexpected session: %+v", sess)
	}
}
