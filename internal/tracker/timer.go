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

// Start begins a new session for the category. Fails with ErrAlreadyRunning
// while a session exists and ErrInvalidCategory for an empty or unknown id;
// the existing state is never touched on failure.
func (m *Manager) Start(ctx context.Context, categoryID, notes string) error {
	if m.active != nil {
		return ErrAlreadyRunning
	}
	if categoryID == "" {
		return fmt.Errorf("%w: no category selected", ErrInvalidCategory)
	}
	if _, ok := m.CategoryByID(categoryID); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, categoryID)
	}

	now := m.clock()
	m.active = &models.ActiveSession{
		UserID:     m.userID,
		CategoryID: categoryID,
		StartTime:  now,
		PausedTime: 0,
		IsPaused:   false,
		Notes:      strings.TrimSpace(notes),
		LastUpdate: now,
	}
	return m.persistActive(ctx)
}

// Pause stops accrual. No-op when idle or already paused.
func (m *Manager) Pause(ctx context.Context) error {
	if m.active == nil || m.active.IsPaused {
		return nil
	}
	m.active.IsPaused = true
	m.active.PauseStart = m.clock()
	return m.persistActive(ctx)
}

// Resume folds the finished pause interval into PausedTime and restarts
// accrual. No-op when not paused.
func (m *Manager) Resume(ctx context.Context) error {
	if m.active == nil || !m.active.IsPaused {
		return nil
	}
	now := m.clock()
	m.active.PausedTime += now.Sub(m.active.PauseStart)
	m.active.PauseStart = time.Time{}
	m.active.IsPaused = false
	m.active.LastUpdate = now
	return m.persistActive(ctx)
}

// End finalizes the active session into the log. Idle End is a silent no-op.
// Unless force is set, sessions shorter than a second return ErrShortSession
// without any state change so the caller can confirm intent.
func (m *Manager) End(ctx context.Context, isTask, force bool) (*models.Session, error) {
	if m.active == nil {
		return nil, nil
	}

	now := m.clock()
	totalPaused := m.active.PausedTime
	if m.active.IsPaused {
		totalPaused += now.Sub(m.active.PauseStart)
	}
	duration := now.Sub(m.active.StartTime) - totalPaused
	if duration < 0 {
		duration = 0
	}
	if !force && duration < config.MinSessionLength {
		return nil, ErrShortSession
	}

	session := models.Session{
		ID:         uuid.NewString(),
		UserID:     m.userID,
		CategoryID: m.active.CategoryID,
		StartTime:  m.active.StartTime,
		EndTime:    now,
		Duration:   duration,
		Notes:      m.active.Notes,
		// The session is dated on the day it ends, even across midnight.
		Date:   now.Format(config.DateFormat),
		IsTask: isTask,
	}
	m.sessions = append(m.sessions, session)
	m.active = nil

	if err := m.store.SaveSessions(ctx, m.userID, m.sessions); err != nil {
		return &session, fmt.Errorf("save sessions: %w", err)
	}
	if err := m.store.ClearActiveSession(ctx); err != nil {
		return &session, fmt.Errorf("clear active session: %w", err)
	}
	return &session, nil
}

// ElapsedNow reports the live elapsed time of the active session without
// mutating anything. Zero when idle.
func (m *Manager) ElapsedNow() time.Duration {
	if m.active == nil {
		return 0
	}
	now := m.clock()
	elapsed := now.Sub(m.active.StartTime) - m.active.PausedTime
	if m.active.IsPaused {
		elapsed -= now.Sub(m.active.PauseStart)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Touch is the heartbeat: it refreshes LastUpdate while running so a later
// restart can tell a short interruption from a long absence. No-op when idle
// or paused.
func (m *Manager) Touch(ctx context.Context) error {
	if m.active == nil || m.active.IsPaused {
		return nil
	}
	m.active.LastUpdate = m.clock()
	return m.persistActive(ctx)
}

func (m *Manager) persistActive(ctx context.Context) error {
	if m.active == nil {
		if err := m.store.ClearActiveSession(ctx); err != nil {
			return fmt.Errorf("clear active session: %w", err)
		}
		return nil
	}
	if err := m.store.SaveActiveSession(ctx, *m.active); err != nil {
		return fmt.Errorf("save active session: %w", err)
	}
	return nil
}
