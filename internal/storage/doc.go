// Package storage persists fetched match batches as snapshots.
//
// Every fetch that reaches the source produces one snapshot: a source name, a
// single fetched_at timestamp and the ordered batch of matches. Snapshots go to a
// SQL database (SQLite through modernc.org/sqlite or PostgreSQL through lib/pq)
// or, for single-host setups, to JSON files in a directory. Open picks the
// backend from a DATABASE_URL-style string:
//
//	""                          -> SQLite file qualcanal.db
//	sqlite:///var/lib/qc.db     -> SQLite file
//	postgres://user@host/db     -> PostgreSQL
//	file://~/.local/share/qc    -> JSON snapshot files
//
// The latest snapshot is what the feed serves when the source is unreachable.
package storage
