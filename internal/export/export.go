// Package export renders a user's practice data as JSON, CSV and PDF.
// Exports operate on a point-in-time snapshot so the formats stay
// consistent with each other.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/avezina/skilltrack/internal/config"
	"github.com/avezina/skilltrack/internal/models"
)

// Snapshot is the data an export is built from.
type Snapshot struct {
	Categories []models.Category
	Sessions   []models.Session
	Settings   models.Settings
}

// Document is the JSON export payload.
type Document struct {
	ExportDate time.Time         `json:"exportDate"`
	Categories []models.Category `json:"categories"`
	Sessions   []SessionRecord   `json:"sessions"`
	Settings   models.Settings   `json:"settings"`
}

// SessionRecord is a session annotated with its category name so the
// file is readable without joining against the category list.
type SessionRecord struct {
	models.Session
	CategoryName string `json:"categoryName"`
}

// NewDocument builds the JSON payload from a snapshot. Sessions whose
// category has been deleted are labeled "Unknown".
func NewDocument(snap Snapshot, now time.Time) Document {
	names := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		names[c.ID] = c.Name
	}
	records := make([]SessionRecord, 0, len(snap.Sessions))
	for _, s := range snap.Sessions {
		name, ok := names[s.CategoryID]
		if !ok {
			name = "Unknown"
		}
		records = append(records, SessionRecord{Session: s, CategoryName: name})
	}
	return Document{
		ExportDate: now,
		Categories: snap.Categories,
		Sessions:   records,
		Settings:   snap.Settings,
	}
}

// WriteJSON writes the indented JSON document.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadDocument parses a previously written JSON export.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parsing export: %w", err)
	}
	return doc, nil
}

// JSONToFile writes the JSON export into dir with a dated filename and
// returns the path.
func JSONToFile(dir string, snap Snapshot, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", config.ExportStem, now.Format(config.DateFormat)))
	return path, writeFile(path, func(w io.Writer) error {
		return WriteJSON(w, NewDocument(snap, now))
	})
}

// CSVToFile writes the CSV export into dir with a dated filename and
// returns the path.
func CSVToFile(dir string, snap Snapshot, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.csv", config.ExportStem, now.Format(config.DateFormat)))
	return path, writeFile(path, func(w io.Writer) error {
		return WriteCSV(w, snap)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
