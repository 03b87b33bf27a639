package calendar

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		input     string
		wantMonth time.Month
		wantDay   int
		wantOK    bool
	}{
		{"Dom 21 Set", time.September, 21, true},
		{"Sáb. 20 set.", time.September, 20, true},
		{"1 de Outubro", time.October, 1, true},
		{"Quarta, 3 Dez", time.December, 3, true},
		{"Dom", 0, 0, false},
		{"21", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		month, day, ok := ParseDay(tt.input)
		if month != tt.wantMonth || day != tt.wantDay || ok != tt.wantOK {
			t.Errorf("ParseDay(%q) = %v, %d, %v, want %v, %d, %v",
				tt.input, month, day, ok, tt.wantMonth, tt.wantDay, tt.wantOK)
		}
	}
}

func TestParseKickoff(t *testing.T) {
	utc := time.UTC
	tests := []struct {
		name     string
		dateText string
		timeText string
		ref      time.Time
		want     time.Time
		wantOK   bool
	}{
		{
			name:     "same year",
			dateText: "Dom 21 Set",
			timeText: "14:00",
			ref:      time.Date(2025, 9, 19, 0, 0, 0, 0, utc),
			want:     time.Date(2025, 9, 21, 14, 0, 0, 0, utc),
			wantOK:   true,
		},
		{
			name:     "january fixture seen in december",
			dateText: "Sáb 3 Jan",
			timeText: "20:30",
			ref:      time.Date(2025, 12, 28, 0, 0, 0, 0, utc),
			want:     time.Date(2026, 1, 3, 20, 30, 0, 0, utc),
			wantOK:   true,
		},
		{
			name:     "december result seen in january",
			dateText: "30 Dez",
			timeText: "9:00",
			ref:      time.Date(2026, 1, 2, 0, 0, 0, 0, utc),
			want:     time.Date(2025, 12, 30, 9, 0, 0, 0, utc),
			wantOK:   true,
		},
		{
			name:     "missing time",
			dateText: "Dom 21 Set",
			ref:      time.Date(2025, 9, 19, 0, 0, 0, 0, utc),
		},
		{
			name:     "missing date",
			timeText: "14:00",
			ref:      time.Date(2025, 9, 19, 0, 0, 0, 0, utc),
		},
		{
			name:     "impossible date",
			dateText: "31 Fev",
			timeText: "14:00",
			ref:      time.Date(2025, 2, 1, 0, 0, 0, 0, utc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKickoff(tt.dateText, tt.timeText, tt.ref, utc)
			if ok != tt.wantOK {
				t.Fatalf("ParseKickoff() ok = %v, want %v", ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseKickoff() = %v, want %v", got, tt.want)
			}
		})
	}
}
