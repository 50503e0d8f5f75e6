package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avezina/skilltrack/internal/config"
	"github.com/avezina/skilltrack/internal/models"
	"github.com/google/uuid"
)

// AddManualSession logs practice time entered by hand for a chosen day.
// Manual entries are recorded as tasks. Hours and minutes are validated the
// same way the entry form does: at least one of them, hours within a day,
// minutes under an hour.
func (m *Manager) AddManualSession(ctx context.Context, categoryID string, hours, minutes int, day time.Time, notes string) (*models.Session, error) {
	if _, ok := m.CategoryByID(categoryID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, categoryID)
	}
	if hours == 0 && minutes == 0 {
		return nil, fmt.Errorf("%w: enter at least some hours or minutes", ErrInvalidInput)
	}
	if hours < 0 || minutes < 0 || hours > 24 || minutes > 59 {
		return nil, fmt.Errorf("%w: hours must be 0-24 and minutes 0-59", ErrInvalidInput)
	}

	duration := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	session := models.Session{
		ID:         uuid.NewString(),
		UserID:     m.userID,
		CategoryID: categoryID,
		StartTime:  start,
		EndTime:    start.Add(duration),
		Duration:   duration,
		Notes:      strings.TrimSpace(notes),
		Date:       start.Format(config.DateFormat),
		IsTask:     true,
	}
	m.sessions = append(m.sessions, session)
	if err := m.store.SaveSessions(ctx, m.userID, m.sessions); err != nil {
		return &session, fmt.Errorf("save sessions: %w", err)
	}
	return &session, nil
}
