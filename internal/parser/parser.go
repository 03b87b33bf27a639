package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/qualcanal/qualcanal/internal/match"
)

const trimSet = " -|–"

// Parser extracts match records from single lines of schedule text.
// It is safe for concurrent use.
type Parser struct {
	vocab *Vocabulary
}

// New creates a Parser bound to the given vocabulary.
func New(vocab *Vocabulary) *Parser {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Parser{vocab: vocab}
}

var defaultParser = New(DefaultVocabulary())

// ParseLine parses a line with the default vocabulary.
func ParseLine(line string) *match.Match {
	return defaultParser.ParseLine(line)
}

// ParseLine converts one text line, or a " | "-joined table row, into a match.
// It returns nil for noise: empty lines, boilerplate, and lines carrying neither
// a kick-off time nor a team name.
func (p *Parser) ParseLine(line string) *match.Match {
	cleaned := match.Clean(line)
	if cleaned == "" || p.IsBoilerplate(cleaned) {
		return nil
	}

	segments := Segments(cleaned)
	head := cleaned
	if len(segments) > 0 {
		head = segments[0]
	}

	timeText := p.FindTime(head)
	if timeText == "" {
		timeText = p.FindTime(cleaned)
	}
	dateText := p.FindDate(head)
	if dateText == "" {
		dateText = p.FindDate(cleaned)
	}

	teamsSegment := cleaned
	if len(segments) > 1 {
		teamsSegment = segments[1]
	}

	home, away, competition, found := p.SplitTeams(p.stripSchedule(teamsSegment))
	if !found {
		home, away, competition, _ = p.MatchTeamPair(p.stripSchedule(cleaned))
	}
	if isScore(home) && isScore(away) {
		home, away = "", ""
	}

	channelText := cleaned
	if len(segments) > 1 {
		channelText = strings.Join(segments[1:], " | ")
	}
	channels := p.FindChannels(channelText)

	if competition == "" && len(segments) > 1 {
		competition = p.FindCompetition(segments[1:])
	}

	if home == "" && away == "" && timeText == "" {
		return nil
	}

	return &match.Match{
		DateText:    dateText,
		Time:        timeText,
		Home:        home,
		Away:        away,
		Competition: competition,
		Channels:    channels,
		Raw:         cleaned,
	}
}

// IsBoilerplate reports whether the line contains a navigation/widget phrase.
func (p *Parser) IsBoilerplate(line string) bool {
	lowered := strings.ToLower(line)
	for _, marker := range p.vocab.Boilerplate {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Segments splits a line on pipes, trimming stray hyphens and pipes from each
// piece. Empty pieces are dropped.
func Segments(line string) []string {
	parts := strings.Split(line, "|")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, trimSet)
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// FindTime returns the first HH:MM token in s.
func (p *Parser) FindTime(s string) string {
	return p.vocab.Time.FindString(s)
}

// FindDate returns the first "[weekday] <day> <month>" token in s.
func (p *Parser) FindDate(s string) string {
	return strings.TrimSpace(p.vocab.Date.FindString(s))
}

// SplitTeams splits "home - away [competition]" on the first hyphen.
// The right-hand side is cut at the first competition marker or channel name.
// found is false when s holds no hyphen at all.
func (p *Parser) SplitTeams(s string) (home, away, competition string, found bool) {
	left, right, ok := p.cutSeparator(s)
	if !ok {
		return "", "", "", false
	}
	away, competition = p.splitAway(right)
	return strings.Trim(left, trimSet), away, competition, true
}

// MatchTeamPair applies the tolerant team-pair pattern anywhere in s.
func (p *Parser) MatchTeamPair(s string) (home, away, competition string, found bool) {
	m := p.vocab.TeamPair.FindStringSubmatch(s)
	if m == nil {
		return "", "", "", false
	}
	away, competition = p.splitAway(m[2])
	return strings.Trim(m[1], trimSet), away, competition, true
}

// FindChannels returns channel names in order of first appearance.
func (p *Parser) FindChannels(s string) []string {
	found := p.vocab.Channel.FindAllString(s, -1)
	channels := make([]string, 0, len(found))
	seen := make(map[string]bool, len(found))
	for _, ch := range found {
		ch = strings.TrimSpace(ch)
		if ch == "" || seen[ch] {
			continue
		}
		seen[ch] = true
		channels = append(channels, ch)
	}
	return channels
}

// FindCompetition scans segments for the first competition marker and returns
// the text from the marker to the end of that segment, without channel names.
func (p *Parser) FindCompetition(segments []string) string {
	for _, seg := range segments {
		if i := p.markerIndex(seg); i >= 0 {
			if competition := p.stripChannels(seg[i:]); competition != "" {
				return competition
			}
		}
	}
	return ""
}

// splitAway separates the away team from a trailing competition/channel run.
func (p *Parser) splitAway(right string) (away, competition string) {
	cut := len(right)
	if i := p.markerIndex(right); i >= 0 {
		cut = i
		competition = p.stripChannels(right[i:])
	}
	if loc := p.vocab.Channel.FindStringIndex(right[:cut]); loc != nil {
		cut = loc[0]
	}
	return strings.Trim(match.Clean(right[:cut]), trimSet), competition
}

func (p *Parser) cutSeparator(s string) (left, right string, ok bool) {
	if loc := p.vocab.Separator.FindStringIndex(s); loc != nil {
		return s[:loc[0]], s[loc[1]:], true
	}
	if i := strings.IndexAny(s, "-–"); i >= 0 {
		_, width := utf8.DecodeRuneInString(s[i:])
		return s[:i], s[i+width:], true
	}
	return "", "", false
}

func (p *Parser) markerIndex(s string) int {
	loc := p.vocab.Marker.FindStringSubmatchIndex(s)
	if loc == nil {
		return -1
	}
	return loc[2]
}

// stripSchedule removes date and time tokens so they don't leak into team names.
func (p *Parser) stripSchedule(s string) string {
	s = p.vocab.Time.ReplaceAllString(s, " ")
	s = p.vocab.Date.ReplaceAllString(s, " ")
	return match.Clean(s)
}

func (p *Parser) stripChannels(s string) string {
	return strings.Trim(match.Clean(p.vocab.Channel.ReplaceAllString(s, " ")), trimSet)
}

// isScore reports whether s is a bare number, as in a "2 - 1" result line.
func isScore(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
