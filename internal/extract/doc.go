// Package extract locates the match schedule inside a parsed HTML page.
//
// The extractor anchors on the "Agenda de jogos" heading and then reads either the
// first table that follows it (one row per line) or, when there is no table, the
// text of the heading's following siblings. Every candidate line goes through the
// line parser. A missing heading is a structural miss, not an error: callers get
// an empty result and decide whether to fall back to the whole page text.
package extract
