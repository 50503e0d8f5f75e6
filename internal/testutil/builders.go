package testutil

import (
	"time"

	"github.com/avezina/skilltrack/internal/models"
	"github.com/avezina/skilltrack/internal/util"
)

// SessionBuilder provides a fluent API for creating test sessions.
type SessionBuilder struct {
	session models.Session
}

func NewSession() *SessionBuilder {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	return &SessionBuilder{
		session: models.Session{
			ID:         "test-session",
			UserID:     "test-user",
			CategoryID: "test-category",
			StartTime:  start,
			EndTime:    start.Add(time.Hour),
			Duration:   time.Hour,
			Date:       start.Format("2006-01-02"),
		},
	}
}

func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.session.ID = id
	return b
}

func (b *SessionBuilder) WithUser(userID string) *SessionBuilder {
	b.session.UserID = userID
	return b
}

func (b *SessionBuilder) WithCategory(categoryID string) *SessionBuilder {
	b.session.CategoryID = categoryID
	return b
}

// WithDate pins both the date string and the start time to the given local
// calendar day.
func (b *SessionBuilder) WithDate(date string) *SessionBuilder {
	b.session.Date = date
	if t, err := time.ParseInLocation("2006-01-02", date, time.Local); err == nil {
		start := t.Add(9 * time.Hour)
		b.session.StartTime = start
		b.session.EndTime = start.Add(b.session.Duration)
	}
	return b
}

func (b *SessionBuilder) WithDuration(d time.Duration) *SessionBuilder {
	b.session.Duration = d
	b.session.EndTime = b.session.StartTime.Add(d)
	return b
}

func (b *SessionBuilder) WithNotes(notes string) *SessionBuilder {
	b.session.Notes = notes
	return b
}

func (b *SessionBuilder) AsTask() *SessionBuilder {
	b.session.IsTask = true
	return b
}

func (b *SessionBuilder) Build() models.Session {
	return b.session
}

// CategoryBuilder provides a fluent API for creating test categories.
type CategoryBuilder struct {
	category models.Category
}

func NewCategory(name string) *CategoryBuilder {
	return &CategoryBuilder{
		category: models.Category{
			ID:        "cat-" + name,
			UserID:    "test-user",
			Name:      name,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		},
	}
}

func (b *CategoryBuilder) WithID(id string) *CategoryBuilder {
	b.category.ID = id
	return b
}

func (b *CategoryBuilder) WithUser(userID string) *CategoryBuilder {
	b.category.UserID = userID
	return b
}

func (b *CategoryBuilder) WithTarget(hours float64) *CategoryBuilder {
	b.category.TargetHours = util.Ptr(hours)
	return b
}

func (b *CategoryBuilder) Build() models.Category {
	return b.category
}
