package storage

import (
	"context"

	"github.com/avezina/skilltrack/internal/models"
)

// Record keys. One logical record per key. These strings are the on-disk
// format; renaming one orphans existing data.
const (
	KeyUsers         = "users"
	KeyCurrentUser   = "currentUser"
	KeyCategories    = "allCategories"
	KeySessions      = "allSessions"
	KeyActiveSession = "currentSession"
	KeySettings      = "settings"
	KeyInitialized   = "initialized"
)

// Store is the typed record layer on top of a KV backend. Multi-tenancy is a
// filtering discipline, not a schema: collections hold every user's entries
// and each read/write scans for the owning user id.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) Close() error { return s.kv.Close() }

// --- Users ---

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	_, err := s.kv.Get(ctx, KeyUsers, &users)
	return users, err
}

func (s *Store) SaveUsers(ctx context.Context, users []models.User) error {
	return s.kv.Put(ctx, KeyUsers, users)
}

// CurrentUser returns the logged-in user, or nil when nobody is logged in.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	found, err := s.kv.Get(ctx, KeyCurrentUser, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetCurrentUser(ctx context.Context, u models.User) error {
	return s.kv.Put(ctx, KeyCurrentUser, u)
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyCurrentUser)
}

// --- Categories ---

func (s *Store) Categories(ctx context.Context, userID string) ([]models.Category, error) {
	var all []models.Category
	if _, err := s.kv.Get(ctx, KeyCategories, &all); err != nil {
		return nil, err
	}
	var out []models.Category
	for _, c := range all {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// SaveCategories replaces the user's slice of the shared record, leaving
// other users' categories untouched.
func (s *Store) SaveCategories(ctx context.Context, userID string, cats []models.Category) error {
	var all []models.Category
	if _, err := s.kv.Get(ctx, KeyCategories, &all); err != nil {
		return err
	}
	merged := all[:0]
	for _, c := range all {
		if c.UserID != userID {
			merged = append(merged, c)
		}
	}
	for _, c := range cats {
		c.UserID = userID
		merged = append(merged, c)
	}
	return s.kv.Put(ctx, KeyCategories, merged)
}

// --- Sessions ---

func (s *Store) Sessions(ctx context.Context, userID string) ([]models.Session, error) {
	var all []models.Session
	if _, err := s.kv.Get(ctx, KeySessions, &all); err != nil {
		return nil, err
	}
	var out []models.Session
	for _, sess := range all {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *Store) SaveSessions(ctx context.Context, userID string, sessions []models.Session) error {
	var all []models.Session
	if _, err := s.kv.Get(ctx, KeySessions, &all); err != nil {
		return err
	}
	merged := all[:0]
	for _, sess := range all {
		if sess.UserID != userID {
			merged = append(merged, sess)
		}
	}
	for _, sess := range sessions {
		sess.UserID = userID
		merged = append(merged, sess)
	}
	return s.kv.Put(ctx, KeySessions, merged)
}

// --- Active session ---

// ActiveSession returns the persisted in-progress session if it belongs to
// the given user, else nil. There is at most one process-wide.
func (s *Store) ActiveSession(ctx context.Context, userID string) (*models.ActiveSession, error) {
	var a models.ActiveSession
	found, err := s.kv.Get(ctx, KeyActiveSession, &a)
	if err != nil || !found {
		return nil, err
	}
	if a.UserID != userID {
		return nil, nil
	}
	return &a, nil
}

func (s *Store) SaveActiveSession(ctx context.Context, a models.ActiveSession) error {
	return s.kv.Put(ctx, KeyActiveSession, a)
}

func (s *Store) ClearActiveSession(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyActiveSession)
}

// --- Settings ---

// Settings returns the stored settings merged over defaults.
func (s *Store) Settings(ctx context.Context, defaults models.Settings) (models.Settings, error) {
	out := defaults
	if _, err := s.kv.Get(ctx, KeySettings, &out); err != nil {
		return defaults, err
	}
	return out, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	return s.kv.Put(ctx, KeySettings, settings)
}

// --- First-run marker ---

// Initialized reports whether default categories were already seeded for the
// user.
func (s *Store) Initialized(ctx context.Context, userID string) (bool, error) {
	var ids []string
	if _, err := s.kv.Get(ctx, KeyInitialized, &ids); err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) MarkInitialized(ctx context.Context, userID string) error {
	var ids []string
	if _, err := s.kv.Get(ctx, KeyInitialized, &ids); err != nil {
		return err
	}
	for _, id := range ids {
		if id == userID {
			return nil
		}
	}
	return s.kv.Put(ctx, KeyInitialized, append(ids, userID))
}
