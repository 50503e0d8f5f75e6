package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/avezina/skilltrack/internal/models"
	"github.com/avezina/skilltrack/internal/storage"
	"github.com/avezina/skilltrack/internal/testutil"
)

const testUser = "test-user"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) Set(t time.Time) { c.now = t }

// newTestManager builds a loaded manager over an in-memory store with the
// given categories pre-seeded (so Load does not inject the default set).
func newTestManager(t *testing.T, cats ...models.Category) (*Manager, *fakeClock, *storage.Store) {
	t.Helper()
	ctx := context.Background()
	store := storage.New(storage.NewMemory())
	if len(cats) == 0 {
		cats = []models.Category{testutil.NewCategory("Guitar").WithID("cat-guitar").Build()}
	}
	if err := store.SaveCategories(ctx, testUser, cats); err != nil {
		t.Fatalf("SaveCategories failed: %v", err)
	}
	if err := store.MarkInitialized(ctx, testUser); err != nil {
		t.Fatalf("MarkInitialized failed: %v", err)
	}

	clock := &fakeClock{now: time.Date(2024, 1, 4, 12, 0, 0, 0, time.Local)}
	m := NewManager(store, testUser, WithClock(clock.Now))
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return m, clock, store
}

// seedSessions replaces the manager's log with the given sessions, persisted
// and reloaded so the manager sees exactly them.
func seedSessions(t *testing.T, m *Manager, store *storage.Store, sessions ...models.Session) {
	t.Helper()
	ctx := context.Background()
	if err := store.SaveSessions(ctx, testUser, sessions); err != nil {
		t.Fatalf("SaveSessions failed: %v", err)
	}
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}
