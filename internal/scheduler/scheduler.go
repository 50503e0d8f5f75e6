// Package scheduler drives the periodic background work: the heartbeat
// that keeps the active timer's last-update stamp fresh, and the daily
// practice reminder. It only decides WHEN; subscribers decide what to
// do with each event.
package scheduler

import (
	"context"
	"time"

	"github.com/avezina/skilltrack/internal/config"
)

// Event identifies which schedule fired.
type Event int

const (
	// Heartbeat fires once a minute while the app runs.
	Heartbeat Event = iota
	// DailyReminder fires shortly after startup, then every 24 hours.
	DailyReminder
)

// Scheduler delivers Events to a single notify callback. The callback
// runs on the scheduler goroutine and must not block.
type Scheduler struct {
	heartbeatEvery  time.Duration
	reminderDelay   time.Duration
	reminderEvery   time.Duration
	reminderEnabled bool
	notify          func(Event)
}

type Option func(*Scheduler)

// WithHeartbeatInterval overrides the heartbeat period.
func WithHeartbeatInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.heartbeatEvery = d }
}

// WithReminderSchedule overrides the reminder's initial delay and period.
func WithReminderSchedule(delay, every time.Duration) Option {
	return func(s *Scheduler) {
		s.reminderDelay = delay
		s.reminderEvery = every
	}
}

// WithDailyReminder turns the whole reminder schedule on or off.
func WithDailyReminder(enabled bool) Option {
	return func(s *Scheduler) { s.reminderEnabled = enabled }
}

func New(notify func(Event), opts ...Option) *Scheduler {
	s := &Scheduler{
		heartbeatEvery:  config.HeartbeatInterval,
		reminderDelay:   config.ReminderInitialDelay,
		reminderEvery:   config.ReminderInterval,
		reminderEnabled: true,
		notify:          notify,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is cancelled, delivering events as they come due.
func (s *Scheduler) Run(ctx context.Context) {
	heartbeat := time.NewTicker(s.heartbeatEvery)
	defer heartbeat.Stop()

	// A nil channel keeps the reminder arm of the select dormant.
	var firstC <-chan time.Time
	if s.reminderEnabled {
		first := time.NewTimer(s.reminderDelay)
		defer first.Stop()
		firstC = first.C
	}

	var reminder *time.Ticker
	var reminderC <-chan time.Time
	defer func() {
		if reminder != nil {
			reminder.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			s.notify(Heartbeat)
		case <-firstC:
			s.notify(DailyReminder)
			reminder = time.NewTicker(s.reminderEvery)
			reminderC = reminder.C
		case <-reminderC:
			s.notify(DailyReminder)
		}
	}
}

// ReminderNeeded reports whether the daily reminder should actually be
// shown: only while nothing at all has been logged for today.
func ReminderNeeded(sessionsToday int) bool {
	return sessionsToday == 0
}
