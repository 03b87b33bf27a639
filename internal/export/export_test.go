package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/qualcanal/qualcanal/internal/match"
)

func sample() []*match.Match {
	return []*match.Match{
		{
			DateText:    "Dom 21 Set",
			Time:        "14:00",
			Home:        "Benfica",
			Away:        "Porto",
			Competition: "Liga Portugal",
			Channels:    []string{"Sport.Tv1", "Sport.Tv+"},
			Raw:         "Dom 21 Set 14:00 Benfica - Porto Liga Portugal Sport.Tv1",
		},
		{
			Time:     "20:30",
			Home:     "Famalicão",
			Channels: []string{},
			Raw:      "20:30 Famalicão, Vitória",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	want := "date_text,time,home,away,teams,competition,channels,raw\n" +
		"Dom 21 Set,14:00,Benfica,Porto,Benfica - Porto,Liga Portugal,Sport.Tv1;Sport.Tv+,Dom 21 Set 14:00 Benfica - Porto Liga Portugal Sport.Tv1\n" +
		",20:30,Famalicão,,,,,\"20:30 Famalicão, Vitória\"\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}
	if got := buf.String(); got != strings.Join(Columns, ",")+"\n" {
		t.Errorf("WriteCSV(nil) = %q, want header only", got)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample()); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	if !strings.Contains(buf.String(), "Famalicão") {
		t.Errorf("WriteJSON() escaped non-ASCII text: %s", buf.String())
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d records, want 2", len(decoded))
	}
	if decoded[0]["teams"] != "Benfica - Porto" {
		t.Errorf("teams = %v, want Benfica - Porto", decoded[0]["teams"])
	}
	if decoded[1]["away"] != nil {
		t.Errorf("away = %v, want null", decoded[1]["away"])
	}
}

func TestWriteJSON_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want []", got)
	}
}

func TestToDir(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 9, 21, 14, 5, 9, 0, time.FixedZone("WEST", 3600))

	files, err := ToDir(dir, sample(), now)
	if err != nil {
		t.Fatalf("ToDir() error: %v", err)
	}

	if want := filepath.Join(dir, "matches_20250921T130509Z.json"); files.JSON != want {
		t.Errorf("JSON path = %q, want %q", files.JSON, want)
	}
	if want := filepath.Join(dir, "matches_20250921T130509Z.csv"); files.CSV != want {
		t.Errorf("CSV path = %q, want %q", files.CSV, want)
	}

	for _, path := range []string{files.JSON, files.CSV} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}
