package models

import "time"

// User is an account that owns categories and sessions. PasswordHash is a
// bcrypt hash; the plaintext is never stored.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Category is a named practice skill. TargetHours is the per-category goal
// used for progress display; nil means "use the global default target".
type Category struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	TargetHours *float64  `json:"targetHours,omitempty"`
}

// Session is an immutable finalized record of time spent on one category.
// Duration = EndTime - StartTime - total paused time, never negative.
// Date is the local calendar date the session ended on ("2006-01-02").
type Session struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	CategoryID string        `json:"categoryId"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	Duration   time.Duration `json:"duration"`
	Notes      string        `json:"notes"`
	Date       string        `json:"date"`
	IsTask     bool          `json:"isTask"`
}

// ActiveSession is the single in-progress timer. At most one exists per
// process. IsPaused implies PauseStart is set; a running session has a zero
// PauseStart. LastUpdate is refreshed by the heartbeat while running and is
// what the recovery reconciler measures staleness against.
type ActiveSession struct {
	UserID     string        `json:"userId"`
	CategoryID string        `json:"categoryId"`
	StartTime  time.Time     `json:"startTime"`
	PausedTime time.Duration `json:"pausedTime"`
	IsPaused   bool          `json:"isPaused"`
	PauseStart time.Time     `json:"pauseStartTime,omitzero"`
	Notes      string        `json:"notes"`
	LastUpdate time.Time     `json:"lastUpdateTime,omitzero"`
}

// Settings is the single process-wide settings record.
type Settings struct {
	DailyGoalMinutes int    `json:"dailyGoal"`
	DarkMode         bool   `json:"darkMode"`
	CurrentMode      string `json:"currentMode"` // default target hours, e.g. "10000" or "20"
}
