package filter

import (
	"reflect"
	"testing"
	"time"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Famalicão", "famalicao"},
		{"Sáb", "sab"},
		{"VITÓRIA SC", "vitoria sc"},
		{"Qualificação", "qualificacao"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseTerms(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"Benfica", []string{"Benfica"}},
		{" sport  tv , dazn ,, ", []string{"sport tv", "dazn"}},
		{"Famalicão, famalicao", []string{"Famalicão"}},
	}

	for _, tt := range tests {
		if got := ParseTerms(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTerms(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		dateText string
		want     time.Weekday
		wantOK   bool
	}{
		{"Dom 21 Set", time.Sunday, true},
		{"Sáb 20 Set", time.Saturday, true},
		{"sab. 20 set", time.Saturday, true},
		{"Quinta-feira, 25 de Setembro", time.Thursday, true},
		{"Qua 24 Set", time.Wednesday, true},
		{"21 Set", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := Weekday(tt.dateText)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Weekday(%q) = %v, %v, want %v, %v", tt.dateText, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"abbreviations", "sab,dom", []time.Weekday{time.Saturday, time.Sunday}, false},
		{"full names", "Segunda, Sexta", []time.Weekday{time.Monday, time.Friday}, false},
		{"weekend shorthand", "fds", []time.Weekday{time.Saturday, time.Sunday}, false},
		{"weekend words", "fim de semana, sábado", []time.Weekday{time.Saturday, time.Sunday}, false},
		{"empty", "", []time.Weekday{}, false},
		{"invalid", "amanhã", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	f, err := Parse("Benfica, Porto", "", "dazn", "fds")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if !reflect.DeepEqual(f.Teams, []string{"Benfica", "Porto"}) {
		t.Errorf("Teams = %v", f.Teams)
	}
	if len(f.Competitions) != 0 {
		t.Errorf("Competitions = %v, want empty", f.Competitions)
	}
	if !reflect.DeepEqual(f.Channels, []string{"dazn"}) {
		t.Errorf("Channels = %v", f.Channels)
	}
	if !reflect.DeepEqual(f.Weekdays, []time.Weekday{time.Saturday, time.Sunday}) {
		t.Errorf("Weekdays = %v", f.Weekdays)
	}

	empty, err := Parse("", "", "", "")
	if err != nil {
		t.Fatalf("Parse(empty) error: %v", err)
	}
	if !empty.IsEmpty() {
		t.Errorf("Parse(empty) = %+v, want empty filter", empty)
	}

	if _, err := Parse("", "", "", "ontem"); err == nil {
		t.Error("Parse() expected error for invalid day")
	}
}
