package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/avezina/skilltrack/internal/config"
	"github.com/avezina/skilltrack/internal/util"
)

// PDFToFile writes a weekly practice report into dir and returns the
// path. The report covers the week containing now, starting Sunday.
func PDFToFile(dir string, snap Snapshot, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("practice-report-%s.pdf", now.Format(config.DateFormat)))
	return path, writePDF(path, snap, now)
}

func writePDF(path string, snap Snapshot, now time.Time) error {
	weekStart := startOfWeek(now)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Practice Report: week of %s", weekStart.Format(config.DateFormat)))
	pdf.Ln(12)

	names := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		names[c.ID] = c.Name
	}

	weekTotals := map[string]time.Duration{}
	var weekTotal time.Duration
	weekCount := 0
	for _, s := range snap.Sessions {
		if s.StartTime.Before(weekStart) {
			continue
		}
		weekTotals[s.CategoryID] += s.Duration
		weekTotal += s.Duration
		weekCount++
	}

	order := make([]string, 0, len(weekTotals))
	for id := range weekTotals {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		return weekTotals[order[i]] > weekTotals[order[j]]
	})

	pdf.SetFont("Arial", "", 12)
	if len(order) == 0 {
		pdf.Cell(0, 8, "No practice recorded this week.")
		pdf.Ln(8)
	}
	for _, id := range order {
		name, ok := names[id]
		if !ok {
			name = "Unknown"
		}
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("%s  (%s)", name, util.FormatDuration(weekTotals[id])))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 12)
		for _, s := range snap.Sessions {
			if s.CategoryID != id || s.StartTime.Before(weekStart) {
				continue
			}
			line := fmt.Sprintf("  %s  %s", s.Date, util.FormatDuration(s.Duration))
			if s.Notes != "" {
				line += "  " + s.Notes
			}
			pdf.MultiCell(0, 8, line, "", "", false)
		}
		pdf.Ln(4)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total this week: %s across %d sessions", util.FormatDuration(weekTotal), weekCount))

	return pdf.OutputFileAndClose(path)
}

// startOfWeek returns local midnight of the most recent Sunday.
func startOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(now.Weekday()))
}
