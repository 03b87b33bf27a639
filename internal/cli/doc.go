// Package cli implements the qualcanal command-line interface.
//
// The cli package provides the Cobra-based commands: serve runs the HTTP API,
// fetch performs one scrape and prints the matches (text or JSON) with optional
// filtering, sorting and persistence, and export writes timestamped JSON and CSV
// files from a fresh fetch or the latest stored snapshot. Configuration comes from
// an optional YAML file plus environment overrides (see the config package).
package cli
