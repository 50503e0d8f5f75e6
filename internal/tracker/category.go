package tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avezina/skilltrack/internal/models"
	"github.com/google/uuid"
)

// CreateCategory adds a named category. Names are unique per user,
// case-insensitively.
func (m *Manager) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, fmt.Errorf("%w: category name cannot be empty", ErrInvalidInput)
	}
	for _, c := range m.categories {
		if strings.EqualFold(c.Name, name) {
			return models.Category{}, ErrDuplicateName
		}
	}
	cat := models.Category{
		ID:        uuid.NewString(),
		UserID:    m.userID,
		Name:      name,
		CreatedAt: m.clock(),
	}
	m.categories = append(m.categories, cat)
	return cat, m.persistCategories(ctx)
}

// RenameCategory changes a category's name in place, with the same
// uniqueness check excluding the category itself.
func (m *Manager) RenameCategory(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name cannot be empty", ErrInvalidInput)
	}
	idx := -1
	for i, c := range m.categories {
		if c.ID == id {
			idx = i
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return ErrDuplicateName
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, id)
	}
	m.categories[idx].Name = name
	return m.persistCategories(ctx)
}

// DeleteCategory removes the category and cascades: every session referencing
// it disappears from the log, and a matching active session is discarded
// without being finalized.
func (m *Manager) DeleteCategory(ctx context.Context, id string) error {
	found := false
	cats := m.categories[:0]
	for _, c := range m.categories {
		if c.ID == id {
			found = true
			continue
		}
		cats = append(cats, c)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, id)
	}
	m.categories = cats

	sessions := m.sessions[:0]
	for _, s := range m.sessions {
		if s.CategoryID != id {
			sessions = append(sessions, s)
		}
	}
	m.sessions = sessions

	discardActive := m.active != nil && m.active.CategoryID == id
	if discardActive {
		m.active = nil
	}

	if err := m.persistCategories(ctx); err != nil {
		return err
	}
	if err := m.store.SaveSessions(ctx, m.userID, m.sessions); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	if discardActive {
		return m.persistActive(ctx)
	}
	return nil
}

// HasSessions reports whether any logged session references the category,
// so the UI can ask before a cascading delete.
func (m *Manager) HasSessions(categoryID string) bool {
	for _, s := range m.sessions {
		if s.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// SetTarget sets the per-category goal in hours. nil clears it back to the
// global default; anything else must be positive.
func (m *Manager) SetTarget(ctx context.Context, id string, hours *float64) error {
	if hours != nil && *hours <= 0 {
		return fmt.Errorf("%w: target hours must be positive", ErrInvalidInput)
	}
	for i, c := range m.categories {
		if c.ID == id {
			m.categories[i].TargetHours = hours
			return m.persistCategories(ctx)
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidCategory, id)
}

// TargetHours resolves a category's goal: its own target, else the global
// default target mode from settings.
func (m *Manager) TargetHours(cat models.Category) float64 {
	if cat.TargetHours != nil {
		return *cat.TargetHours
	}
	if v, err := strconv.ParseFloat(m.settings.CurrentMode, 64); err == nil && v > 0 {
		return v
	}
	return 10000
}

func (m *Manager) persistCategories(ctx context.Context) error {
	if err := m.store.SaveCategories(ctx, m.userID, m.categories); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}

// defaultCategories is the starter set seeded for each new user.
func defaultCategories(userID string, now time.Time) []models.Category {
	names := []string{
		"English",
		"Artificial Intelligence",
		"Software Engineering",
		"Problem Solving",
		"Web Development",
		"System Design",
		"Data Structures & Algorithms",
		"Database Design",
		"Mobile Development",
		"DevOps",
		"Cloud Computing",
		"Cybersecurity",
		"Communication",
		"Leadership",
		"Teamwork",
		"Presentation Skills",
		"Time Management",
		"Networking",
		"Negotiation",
		"Empathy & Emotional Intelligence",
		"Adaptability",
		"Creativity",
		"Critical Thinking",
		"Conflict Resolution",
	}
	cats := make([]models.Category, 0, len(names))
	for _, name := range names {
		cats = append(cats, models.Category{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      name,
			CreatedAt: now,
		})
	}
	return cats
}
