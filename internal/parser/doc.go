// Package parser turns one line of schedule text into a match record.
//
// The source page mixes dates, kick-off times, team pairs, competition names and
// broadcast channels in free text, sometimes pipe-separated when the line comes from
// a table row. Each heuristic lives in its own small function so it can be tested
// and replaced on its own when the page layout drifts. All patterns are compiled
// once into a Vocabulary, which is immutable and shared by every Parser.
package parser
