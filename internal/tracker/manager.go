// Package tracker is the session timer and aggregation core: the timer state
// machine, the append-only session log with its aggregation queries, the
// category registry, and startup recovery. A Manager owns all of this for one
// user. Mutations happen on a single logical thread (the UI event loop);
// persistence is a durability snapshot, never the source of truth while the
// process lives.
package tracker

import (
	"context"
	"time"

	"github.com/avezina/skilltrack/internal/config"
	"github.com/avezina/skilltrack/internal/models"
	"github.com/avezina/skilltrack/internal/storage"
)

// Repository is what the manager needs from the record store.
//
//go:generate mockgen -source=manager.go -destination=mock_repository_test.go -package=tracker
type Repository interface {
	Categories(ctx context.Context, userID string) ([]models.Category, error)
	SaveCategories(ctx context.Context, userID string, cats []models.Category) error
	Sessions(ctx context.Context, userID string) ([]models.Session, error)
	SaveSessions(ctx context.Context, userID string, sessions []models.Session) error
	ActiveSession(ctx context.Context, userID string) (*models.ActiveSession, error)
	SaveActiveSession(ctx context.Context, a models.ActiveSession) error
	ClearActiveSession(ctx context.Context) error
	Settings(ctx context.Context, defaults models.Settings) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error
	Initialized(ctx context.Context, userID string) (bool, error)
	MarkInitialized(ctx context.Context, userID string) error
}

var _ Repository = (*storage.Store)(nil)

// Clock supplies the current time. Injected so tests control it.
type Clock func() time.Time

// Manager owns the single active session, the session log, the category
// registry and the settings for one user.
type Manager struct {
	store  Repository
	clock  Clock
	userID string

	categories []models.Category
	sessions   []models.Session
	active     *models.ActiveSession
	settings   models.Settings
}

type Option func(*Manager)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

func NewManager(store Repository, userID string, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		clock:  time.Now,
		userID: userID,
		settings: models.Settings{
			DailyGoalMinutes: config.DefaultDailyGoalMinutes,
			CurrentMode:      config.DefaultTargetMode,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads the user's records into memory and seeds default categories on
// first run. Call once before any other operation.
func (m *Manager) Load(ctx context.Context) error {
	cats, err := m.store.Categories(ctx, m.userID)
	if err != nil {
		return err
	}
	m.categories = cats

	initialized, err := m.store.Initialized(ctx, m.userID)
	if err != nil {
		return err
	}
	if !initialized && len(m.categories) == 0 {
		m.categories = defaultCategories(m.userID, m.clock())
		if err := m.store.SaveCategories(ctx, m.userID, m.categories); err != nil {
			return err
		}
		if err := m.store.MarkInitialized(ctx, m.userID); err != nil {
			return err
		}
	}

	sessions, err := m.store.Sessions(ctx, m.userID)
	if err != nil {
		return err
	}
	m.sessions = sessions

	settings, err := m.store.Settings(ctx, m.settings)
	if err != nil {
		return err
	}
	m.settings = settings

	active, err := m.store.ActiveSession(ctx, m.userID)
	if err != nil {
		return err
	}
	m.active = active
	return nil
}

// Categories returns the user's categories in creation order.
func (m *Manager) Categories() []models.Category { return m.categories }

// Sessions returns the finalized session log.
func (m *Manager) Sessions() []models.Session { return m.sessions }

// Active returns the in-progress session, or nil when idle.
func (m *Manager) Active() *models.ActiveSession { return m.active }

// Settings returns the current settings.
func (m *Manager) Settings() models.Settings { return m.settings }

// CategoryByID looks a category up by id.
func (m *Manager) CategoryByID(id string) (models.Category, bool) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryName resolves a category id for display; "Unknown" when the
// category was deleted out from under the session.
func (m *Manager) CategoryName(id string) string {
	if c, ok := m.CategoryByID(id); ok {
		return c.Name
	}
	return "Unknown"
}
