package tui

import (
	"fmt"
	"time"

	"github.com/avezina/skilltrack/internal/util"
)

// FormatElapsed renders the live timer readout.
func FormatElapsed(d time.Duration) string {
	return util.FormatClock(d)
}

// FormatTargetProgress renders "12.5 / 20 hours (62.5%)".
func FormatTargetProgress(hours, target float64) string {
	if target <= 0 {
		return util.FormatHours(hours) + " hours"
	}
	pct := hours / target * 100
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("%s / %s hours (%.1f%%)", util.FormatHours(hours), trimHours(target), pct)
}

func trimHours(target float64) string {
	if target == float64(int(target)) {
		return fmt.Sprintf("%d", int(target))
	}
	return util.FormatHours(target)
}

// FormatStreak renders the streak line for the progress tab.
func FormatStreak(current, best int) string {
	day := func(n int) string {
		if n == 1 {
			return "day"
		}
		return "days"
	}
	return fmt.Sprintf("Streak: %d %s (best %d %s)", current, day(current), best, day(best))
}

// FormatGoal renders daily goal progress, e.g. "45m / 60m today".
func FormatGoal(practiced time.Duration, goalMinutes int) string {
	return fmt.Sprintf("%s / %dm today", util.FormatDuration(practiced), goalMinutes)
}
