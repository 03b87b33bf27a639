package parser

import (
	"regexp"
	"strings"
)

// Vocabulary holds the source-language patterns used by the line parser.
// A Vocabulary must not be modified after it is handed to New.
type Vocabulary struct {
	// Boilerplate lists lower-case phrases that mark navigation or widget text.
	Boilerplate []string
	// Time matches an HH:MM kick-off time.
	Time *regexp.Regexp
	// Date matches an optional weekday followed by "<day> <month>".
	Date *regexp.Regexp
	// Marker matches competition keywords. Submatch 1 is the keyword itself.
	Marker *regexp.Regexp
	// Channel matches known broadcast channel names.
	Channel *regexp.Regexp
	// TeamPair is the tolerant "home - away" pattern used when no hyphen is
	// found in the teams segment. Submatches 1 and 2 are the two sides.
	TeamPair *regexp.Regexp
	// Separator matches a spaced hyphen between two team names. A bare hyphen
	// is only used when no spaced one exists.
	Separator *regexp.Regexp
}

var (
	boilerplate = []string{
		"agenda de jogos",
		"ver mais jogos",
		"seleccione",
		"fuso horário",
		"instalar site",
	}

	timePattern = `\b(?:[01]?\d|2[0-3]):[0-5]\d\b`

	datePattern = `(?i)(?:\b(?:seg|ter|qua|qui|sex|s[áa]b|dom)[a-zç-]*\.?,?\s+)?` +
		`\b\d{1,2}\s+(?:de\s+)?(?:jan|fev|mar|abr|mai|jun|jul|ago|set|out|nov|dez)[a-zç]*\.?`

	markers = []string{
		`Qual\.?\s*Mundial`,
		`Qualifica[çc][ãa]o`,
		`La\s*Liga`,
		`Primeira\s+Liga`,
		`Liga`,
		`Superta[çc]a`,
		`Ta[çc]a`,
		`UEFA`,
		`Champions`,
		`Europa\s+League`,
		`Conference\s+League`,
		`Premier\s+League`,
		`Bundesliga`,
		`Ligue\s*1`,
		`S[ée]rie\s+[AB]`,
		`Brasileir[ãa]o`,
		`Copa`,
		`Coppa`,
		`Eredivisie`,
		`MLS`,
		`FUTSAL`,
		`Feminino`,
		`Amig[áa]vel`,
		`Mundial`,
		`Euro\s*\d{2,4}`,
		`Jornada`,
		`Fase`,
		`Final`,
	}

	channels = []string{
		`sport\s*\.?\s*tv\s*\d*`,
		`sportt\.tv\d`,
		`benfica\s*\.?\s*tv`,
		`btv\s*\d*`,
		`dazn\s*\d*`,
		`canal\s*\d+`,
		`c11`,
		`eleven\s*\d*`,
		`tvi(?:\s*24)?`,
		`sic(?:\s+not[íi]cias)?`,
		`rtp\s*\d*`,
		`cmtv`,
	}

	teamChars = `[\p{L}\p{N}.'&() ]`
)

// DefaultVocabulary returns the Portuguese vocabulary used by the source site.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Boilerplate: append([]string(nil), boilerplate...),
		Time:        regexp.MustCompile(timePattern),
		Date:        regexp.MustCompile(datePattern),
		Marker: regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + strings.Join(markers, "|") +
			`)(?:[^\p{L}\p{N}]|$)`),
		Channel:   regexp.MustCompile(`(?i)\b(?:` + strings.Join(channels, "|") + `)\b`),
		TeamPair:  regexp.MustCompile(`(` + teamChars + `+?)\s*[-–]\s*(` + teamChars + `+)`),
		Separator: regexp.MustCompile(`\s+[-–]\s+`),
	}
}
