package tracker

import (
	"context"
	"time"

	"github.com/avezina/skilltrack/internal/config"
	"github.com/avezina/skilltrack/internal/models"
)

// Reconcile inspects a persisted active session after a restart and
// force-pauses it when the process was gone longer than the stale window:
// that absence must not count as practice time. The pause is backdated to the
// last heartbeat so nothing after it accrues. Pure; reports whether the
// session was modified.
func Reconcile(a *models.ActiveSession, now time.Time) bool {
	if a == nil || a.IsPaused {
		return false
	}
	lastKnown := a.LastUpdate
	if lastKnown.IsZero() {
		lastKnown = a.StartTime
	}
	if now.Sub(lastKnown) <= config.StaleAfter {
		return false
	}
	a.IsPaused = true
	a.PauseStart = lastKnown
	return true
}

// Recover runs reconciliation once at startup, before any UI interaction,
// rewriting the persisted active session if the gap was too long.
func (m *Manager) Recover(ctx context.Context) error {
	if !Reconcile(m.active, m.clock()) {
		return nil
	}
	return m.persistActive(ctx)
}
