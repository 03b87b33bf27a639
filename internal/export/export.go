// Package export writes match batches to JSON and CSV files for offline use.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"

	"github.com/qualcanal/qualcanal/internal/match"
)

// TimestampLayout names export files, e.g. matches_20250921T140000Z.json.
const TimestampLayout = "20060102T150405Z"

// Columns is the CSV header, in order.
var Columns = []string{"date_text", "time", "home", "away", "teams", "competition", "channels", "raw"}

// WriteJSON writes matches as an indented JSON array. Non-ASCII text is kept as is.
func WriteJSON(w io.Writer, matches []*match.Match) error {
	if matches == nil {
		matches = []*match.Match{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(matches); err != nil {
		return fmt.Errorf("encoding matches: %w", err)
	}
	return nil
}

// WriteCSV writes a header row followed by one row per match.
// Channels are joined with ";".
func WriteCSV(w io.Writer, matches []*match.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, m := range matches {
		row := []string{
			m.DateText,
			m.Time,
			m.Home,
			m.Away,
			m.Teams(),
			m.Competition,
			strings.Join(m.Channels, ";"),
			m.Raw,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// Files lists the paths written by ToDir.
type Files struct {
	JSON string
	CSV  string
}

// ToDir writes matches_<timestamp>.json and matches_<timestamp>.csv into dir.
// Each file is replaced atomically.
func ToDir(dir string, matches []*match.Match, now time.Time) (Files, error) {
	if dir == "" {
		dir = "."
	}
	stamp := now.UTC().Format(TimestampLayout)
	files := Files{
		JSON: filepath.Join(dir, "matches_"+stamp+".json"),
		CSV:  filepath.Join(dir, "matches_"+stamp+".csv"),
	}

	var jsonBuf bytes.Buffer
	if err := WriteJSON(&jsonBuf, matches); err != nil {
		return Files{}, err
	}
	if err := renameio.WriteFile(files.JSON, jsonBuf.Bytes(), 0644); err != nil {
		return Files{}, fmt.Errorf("writing %s: %w", files.JSON, err)
	}

	var csvBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, matches); err != nil {
		return Files{}, err
	}
	if err := renameio.WriteFile(files.CSV, csvBuf.Bytes(), 0644); err != nil {
		return Files{}, fmt.Errorf("writing %s: %w", files.CSV, err)
	}

	return files, nil
}
