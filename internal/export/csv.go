package export

import (
	"encoding/csv"
	"io"
	"sort"
	"time"

	"github.com/avezina/skilltrack/internal/util"
)

var csvHeader = []string{
	"Date", "Category", "Start Time", "End Time",
	"Duration (hours)", "Duration (formatted)", "Notes",
}

// WriteCSV writes one row per session, newest first. Quoting follows
// RFC 4180, so embedded quotes in notes come out doubled.
func WriteCSV(w io.Writer, snap Snapshot) error {
	names := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		names[c.ID] = c.Name
	}
	sessions := make([]sessionRow, 0, len(snap.Sessions))
	for _, s := range snap.Sessions {
		name, ok := names[s.CategoryID]
		if !ok {
			name = "Unknown"
		}
		sessions = append(sessions, sessionRow{
			date:      s.Date,
			category:  name,
			start:     s.StartTime,
			end:       s.EndTime,
			duration:  s.Duration,
			formatted: util.FormatDuration(s.Duration),
			notes:     s.Notes,
		})
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].start.After(sessions[j].start)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range sessions {
		rec := []string{
			r.date,
			r.category,
			r.start.Format("15:04:05"),
			r.end.Format("15:04:05"),
			util.FormatHours(r.duration.Hours()),
			r.formatted,
			r.notes,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type sessionRow struct {
	date      string
	category  string
	start     time.Time
	end       time.Time
	duration  time.Duration
	formatted string
	notes     string
}
