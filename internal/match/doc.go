// Package match provides the record type produced by the schedule scraper.
//
// A Match is built once by the line parser and never mutated afterwards. Its Raw
// field carries the whitespace-normalized source line, which doubles as the
// deduplication key (first DedupKeyLen runes) and as an audit trail when the
// heuristics get a field wrong.
package match
