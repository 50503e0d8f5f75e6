package config

import "time"

// Timer behaviour.
const (
	// StaleAfter is how long a running session may go without a heartbeat
	// before recovery force-pauses it on the next startup.
	StaleAfter        = 5 * time.Minute
	HeartbeatInterval = 1 * time.Minute
	// MinSessionLength is the advisory lower bound below which the UI asks
	// for confirmation before ending a session.
	MinSessionLength = 1 * time.Second
)

// Reminder schedule.
const (
	ReminderInitialDelay = 1 * time.Minute
	ReminderInterval     = 24 * time.Hour
)

// Defaults.
const (
	DefaultDailyGoalMinutes = 60
	DefaultTargetMode       = "10000" // global target hours when a category has none
)

// Application settings.
const (
	AppName        = "skilltrack"
	DBFileName     = "skilltrack.db"
	ExportStem     = "practice-tracker-export"
	DateFormat     = "2006-01-02"
	MinPasswordLen = 6
)
