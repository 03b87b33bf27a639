package parser

import "testing"

func TestFindChannels(t *testing.T) {
	p := New(DefaultVocabulary())

	tests := []struct {
		input string
		want  string
	}{
		{"Benfica - Porto dazn4", "dazn4"},
		{"Benfica - Porto DAZN 1", "DAZN 1"},
		{"Benfica - Porto Sport.Tv1", "Sport.Tv1"},
		{"Benfica - Porto SportTv2", "SportTv2"},
		{"Benfica - Porto Canal11", "Canal11"},
		{"Benfica - Porto TVI", "TVI"},
		{"Benfica - Porto Benfica.Tv", "Benfica.Tv"},
		{"Benfica - Porto C11", "C11"},
		{"Benfica - Porto RTP1", "RTP1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := p.FindChannels(tt.input)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("FindChannels(%q) = %q, want [%q]", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindChannels_IgnoresTeamNames(t *testing.T) {
	p := New(DefaultVocabulary())

	for _, input := range []string{"Sporting - Clássico", "Benfica - Porto", "Sporting Braga"} {
		if got := p.FindChannels(input); len(got) != 0 {
			t.Errorf("FindChannels(%q) = %q, want none", input, got)
		}
	}
}

func TestFindDate(t *testing.T) {
	p := New(DefaultVocabulary())

	tests := []struct {
		input string
		want  string
	}{
		{"Dom 21 Set 14:00", "Dom 21 Set"},
		{"Sáb 20 Setembro", "Sáb 20 Setembro"},
		{"Segunda-feira, 5 de Outubro", "Segunda-feira, 5 de Outubro"},
		{"3 Mar", "3 Mar"},
		{"14:00 Benfica - Porto", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := p.FindDate(tt.input); got != tt.want {
				t.Errorf("FindDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindTime(t *testing.T) {
	p := New(DefaultVocabulary())

	tests := []struct {
		input string
		want  string
	}{
		{"Dom 21 Set 14:00", "14:00"},
		{"9:30 e 21:00", "9:30"},
		{"resultado 3-1", ""},
		{"25:99", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := p.FindTime(tt.input); got != tt.want {
				t.Errorf("FindTime(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitTeams_Markers(t *testing.T) {
	p := New(DefaultVocabulary())

	tests := []struct {
		input           string
		wantAway        string
		wantCompetition string
	}{
		{"Benfica - Porto Liga Portugal", "Porto", "Liga Portugal"},
		{"Benfica - Real Madrid UEFA Champions League", "Real Madrid", "UEFA Champions League"},
		{"Portugal - Hungria Qual. Mundial", "Hungria", "Qual. Mundial"},
		{"Sporting - Braga Supertaça", "Braga", "Supertaça"},
		{"Flamengo - Palmeiras Brasileirão Série A", "Palmeiras", "Brasileirão Série A"},
		{"Real Madrid - Barcelona LaLiga", "Barcelona", "LaLiga"},
		{"Sevilha - Betis La Liga", "Betis", "La Liga"},
		{"Arouca - Estoril Primeira Liga", "Estoril", "Primeira Liga"},
		{"Copenhaga - Benfica", "Benfica", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, away, competition, found := p.SplitTeams(tt.input)
			if !found {
				t.Fatalf("SplitTeams(%q) found no hyphen", tt.input)
			}
			if away != tt.wantAway {
				t.Errorf("away = %q, want %q", away, tt.wantAway)
			}
			if competition != tt.wantCompetition {
				t.Errorf("competition = %q, want %q", competition, tt.wantCompetition)
			}
		})
	}
}
