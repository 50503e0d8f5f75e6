package tracker

import (
	"sort"
	"time"

	"github.com/avezina/skilltrack/internal/config"
)

// Streak is a pair of consecutive-day counts over the session log.
type Streak struct {
	Current int
	Best    int
}

// CategoryTotalHours sums the category's logged time in hours, optionally
// adding the live elapsed time when the active session matches.
func (m *Manager) CategoryTotalHours(categoryID string, includeLive bool) float64 {
	var total time.Duration
	for _, s := range m.sessions {
		if s.CategoryID == categoryID {
			total += s.Duration
		}
	}
	if includeLive && m.active != nil && m.active.CategoryID == categoryID {
		total += m.ElapsedNow()
	}
	return total.Hours()
}

// TodayTotal sums today's logged time, optionally filtered to one category,
// plus live elapsed time when the active session qualifies. "Today" is the
// local calendar date at call time.
func (m *Manager) TodayTotal(categoryID string) time.Duration {
	today := m.clock().Format(config.DateFormat)
	var total time.Duration
	for _, s := range m.sessions {
		if s.Date != today {
			continue
		}
		if categoryID != "" && s.CategoryID != categoryID {
			continue
		}
		total += s.Duration
	}
	if m.active != nil && (categoryID == "" || m.active.CategoryID == categoryID) {
		total += m.ElapsedNow()
	}
	return total
}

// TodaySessionCount counts the logged sessions dated today. A running
// session is not counted until it ends.
func (m *Manager) TodaySessionCount() int {
	today := m.clock().Format(config.DateFormat)
	n := 0
	for _, s := range m.sessions {
		if s.Date == today {
			n++
		}
	}
	return n
}

// WeeklyTotal sums sessions started on or after the most recent Sunday
// 00:00:00 local time.
func (m *Manager) WeeklyTotal() time.Duration {
	now := m.clock()
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -int(now.Weekday()))
	var total time.Duration
	for _, s := range m.sessions {
		if !s.StartTime.Before(weekStart) {
			total += s.Duration
		}
	}
	return total
}

// CalculateStreak computes the current and best runs of consecutive calendar
// days with at least one session. A missing today does not break the current
// streak while yesterday is present; it just doesn't count. Order of the
// session log is irrelevant.
func (m *Manager) CalculateStreak() Streak {
	if len(m.sessions) == 0 {
		return Streak{}
	}
	present := make(map[string]bool, len(m.sessions))
	for _, s := range m.sessions {
		present[s.Date] = true
	}

	now := m.clock()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !present[day.Format(config.DateFormat)] {
		// Today is still in progress; start counting from yesterday.
		day = day.AddDate(0, 0, -1)
	}
	current := 0
	for present[day.Format(config.DateFormat)] {
		current++
		day = day.AddDate(0, 0, -1)
	}

	dates := make([]time.Time, 0, len(present))
	for d := range present {
		if t, err := time.ParseInLocation(config.DateFormat, d, now.Location()); err == nil {
			dates = append(dates, t)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	best, run := 0, 0
	for i, d := range dates {
		if i > 0 && dates[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return Streak{Current: current, Best: best}
}
