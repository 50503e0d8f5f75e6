package tracker

import (
	"context"
	"fmt"
	"strconv"
)

// SetDailyGoal updates the daily practice goal in minutes.
func (m *Manager) SetDailyGoal(ctx context.Context, minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("%w: daily goal must be at least one minute", ErrInvalidInput)
	}
	m.settings.DailyGoalMinutes = minutes
	return m.persistSettings(ctx)
}

// ToggleDarkMode flips the dark mode flag.
func (m *Manager) ToggleDarkMode(ctx context.Context) error {
	m.settings.DarkMode = !m.settings.DarkMode
	return m.persistSettings(ctx)
}

// SetCurrentMode sets the global default target hours ("10000", "20", ...).
func (m *Manager) SetCurrentMode(ctx context.Context, mode string) error {
	if v, err := strconv.ParseFloat(mode, 64); err != nil || v <= 0 {
		return fmt.Errorf("%w: target mode must be a positive number", ErrInvalidInput)
	}
	m.settings.CurrentMode = mode
	return m.persistSettings(ctx)
}

func (m *Manager) persistSettings(ctx context.Context) error {
	if err := m.store.SaveSettings(ctx, m.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
