package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/qualcanal/qualcanal/internal/match"
)

// DefaultSQLitePath is used when no database URL is configured.
const DefaultSQLitePath = "qualcanal.db"

// ErrNoSnapshot is returned when a source has never been persisted.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshot is one persisted fetch.
type Snapshot struct {
	Source    string         `json:"source"`
	FetchedAt time.Time      `json:"fetched_at"`
	Matches   []*match.Match `json:"matches"`
}

// NewSnapshot stamps matches with source and the current UTC time.
func NewSnapshot(source string, matches []*match.Match) *Snapshot {
	if matches == nil {
		matches = []*match.Match{}
	}
	return &Snapshot{
		Source:    source,
		FetchedAt: time.Now().UTC(),
		Matches:   matches,
	}
}

// Sink stores and retrieves snapshots.
type Sink interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	LatestSnapshot(ctx context.Context, source string) (*Snapshot, error)
	// Backend names the storage kind for logs and metrics.
	Backend() string
	Close() error
}

// Open returns the Sink selected by databaseURL's scheme.
func Open(ctx context.Context, databaseURL string) (Sink, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if databaseURL == "" {
		return OpenSQL(ctx, DialectSQLite, DefaultSQLitePath)
	}

	scheme, rest, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return nil, fmt.Errorf("invalid database URL %q: missing scheme", databaseURL)
	}

	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3":
		if rest == "" {
			rest = DefaultSQLitePath
		}
		return OpenSQL(ctx, DialectSQLite, rest)
	case "postgres", "postgresql":
		return OpenSQL(ctx, DialectPostgres, databaseURL)
	case "file":
		return NewFileStore(rest)
	default:
		return nil, fmt.Errorf("unsupported database URL scheme %q", scheme)
	}
}
