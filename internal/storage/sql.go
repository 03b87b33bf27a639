package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/qualcanal/qualcanal/internal/logger"
	"github.com/qualcanal/qualcanal/internal/match"
)

// sqliteTimeLayout is fixed width so text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	Name   string
	Driver string
	Schema string
}

var (
	DialectSQLite = Dialect{
		Name:   "sqlite",
		Driver: "sqlite",
		Schema: `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			match_count INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source, id);
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			source TEXT NOT NULL,
			date_text TEXT,
			time TEXT,
			home TEXT,
			away TEXT,
			competition TEXT,
			channels TEXT NOT NULL DEFAULT '[]',
			raw TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_snapshot ON matches(snapshot_id);
		`,
	}

	DialectPostgres = Dialect{
		Name:   "postgres",
		Driver: "postgres",
		Schema: `
		CREATE TABLE IF NOT EXISTS snapshots (
			id BIGSERIAL PRIMARY KEY,
			source VARCHAR(100) NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL,
			match_count INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source, id);
		CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			snapshot_id BIGINT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			source VARCHAR(100) NOT NULL,
			date_text VARCHAR(100),
			time VARCHAR(10),
			home VARCHAR(200),
			away VARCHAR(200),
			competition VARCHAR(200),
			channels TEXT NOT NULL DEFAULT '[]',
			raw TEXT NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_snapshot ON matches(snapshot_id);
		`,
	}
)

// Rebind rewrites ? placeholders into the dialect's form.
func (d Dialect) Rebind(query string) string {
	if d.Name != DialectPostgres.Name {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) encodeTime(t time.Time) any {
	t = t.UTC()
	if d.Name == DialectSQLite.Name {
		return t.Format(sqliteTimeLayout)
	}
	return t
}

func decodeTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
}

// SQLStore is a Sink backed by database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	log     zerolog.Logger
}

var _ Sink = (*SQLStore)(nil)

// OpenSQL opens dsn with dialect, verifies the connection and creates the schema.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLStore, error) {
	if dialect.Name == DialectSQLite.Name && !strings.Contains(dsn, "?") {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dialect.Name, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", dialect.Name, err)
	}

	if _, err := db.ExecContext(ctx, dialect.Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	store := &SQLStore{db: db, dialect: dialect, log: logger.WithComponent("storage")}
	store.log.Info().Str("backend", dialect.Name).Msg("snapshot storage ready")

	return store, nil
}

func (s *SQLStore) Backend() string { return s.dialect.Name }

// SaveSnapshot writes the snapshot header and its rows in one transaction.
func (s *SQLStore) SaveSnapshot(ctx context.Context, snap *Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	fetchedAt := s.dialect.encodeTime(snap.FetchedAt)

	var snapshotID int64
	err = tx.QueryRowContext(ctx,
		s.dialect.Rebind(`INSERT INTO snapshots (source, fetched_at, match_count) VALUES (?, ?, ?) RETURNING id`),
		snap.Source, fetchedAt, len(snap.Matches),
	).Scan(&snapshotID)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.dialect.Rebind(`
		INSERT INTO matches (snapshot_id, source, date_text, time, home, away, competition, channels, raw, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("preparing match insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range snap.Matches {
		channels, err := json.Marshal(nonNil(m.Channels))
		if err != nil {
			return fmt.Errorf("encoding channels: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			snapshotID, snap.Source,
			nullString(m.DateText), nullString(m.Time),
			nullString(m.Home), nullString(m.Away), nullString(m.Competition),
			string(channels), m.Raw, fetchedAt,
		); err != nil {
			return fmt.Errorf("inserting match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently saved snapshot for source.
func (s *SQLStore) LatestSnapshot(ctx context.Context, source string) (*Snapshot, error) {
	var (
		snapshotID int64
		rawTime    any
	)
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id, fetched_at FROM snapshots WHERE source = ? ORDER BY id DESC LIMIT 1`),
		source,
	).Scan(&snapshotID, &rawTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}

	fetchedAt, err := decodeTime(rawTime)
	if err != nil {
		return nil, fmt.Errorf("decoding fetched_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind(`
		SELECT date_text, time, home, away, competition, channels, raw
		FROM matches WHERE snapshot_id = ? ORDER BY id`),
		snapshotID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	snap := &Snapshot{Source: source, FetchedAt: fetchedAt, Matches: []*match.Match{}}
	for rows.Next() {
		var (
			dateText, timeText, home, away, competition sql.NullString
			channels, raw                               string
		)
		if err := rows.Scan(&dateText, &timeText, &home, &away, &competition, &channels, &raw); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}

		m := &match.Match{
			DateText:    dateText.String,
			Time:        timeText.String,
			Home:        home.String,
			Away:        away.String,
			Competition: competition.String,
			Raw:         raw,
		}
		if err := json.Unmarshal([]byte(channels), &m.Channels); err != nil {
			return nil, fmt.Errorf("decoding channels: %w", err)
		}
		m.Channels = nonNil(m.Channels)
		snap.Matches = append(snap.Matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}

	return snap, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
