package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration the way the timer displays it:
// "2h 5m", "4m 12s" or "45s" depending on magnitude.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatHours renders a fractional hour count for tables and exports.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// FormatClock renders a live timer as H:MM:SS.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
