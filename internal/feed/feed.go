// Package feed serves the match schedule as a cached payload.
//
// A request is answered from the cache while the entry is fresh. Otherwise
// the schedule is fetched (concurrent callers share one fetch), persisted as a
// snapshot, and written back to the cache. When the source is unreachable the
// latest persisted snapshot is served and flagged as stale.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/qualcanal/qualcanal/internal/cache"
	"github.com/qualcanal/qualcanal/internal/logger"
	"github.com/qualcanal/qualcanal/internal/match"
	"github.com/qualcanal/qualcanal/internal/metrics"
	"github.com/qualcanal/qualcanal/internal/scraper"
	"github.com/qualcanal/qualcanal/internal/storage"
)

// CacheKey is where the payload for the default source is cached.
const CacheKey = "matches:" + scraper.Source

// DefaultTTL is how long a fetched payload is served from the cache.
const DefaultTTL = 300 * time.Second

// Fetcher produces one batch of matches.
type Fetcher interface {
	FetchMatches(ctx context.Context, headers map[string]string) ([]*match.Match, error)
}

// Payload is the body served to API clients.
type Payload struct {
	Count     int            `json:"count"`
	FetchedAt time.Time      `json:"fetched_at"`
	Matches   []*match.Match `json:"matches"`
	Stale     bool           `json:"stale,omitempty"`
}

func newPayload(matches []*match.Match, fetchedAt time.Time) *Payload {
	if matches == nil {
		matches = []*match.Match{}
	}
	return &Payload{Count: len(matches), FetchedAt: fetchedAt, Matches: matches}
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the payload cache. The default is a Noop cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithSink persists every fresh batch and enables the stale fallback.
func WithSink(sink storage.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithTTL sets the cache lifetime. Non-positive values disable caching.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithHeaders sets extra request headers passed to the fetcher.
func WithHeaders(h map[string]string) Option {
	return func(s *Service) { s.headers = h }
}

// Service coordinates cache, fetcher and persistence.
type Service struct {
	fetcher Fetcher
	cache   cache.Cache
	sink    storage.Sink
	ttl     time.Duration
	headers map[string]string
	source  string
	key     string
	group   singleflight.Group
	log     zerolog.Logger
	now     func() time.Time
}

// New creates a Service for the default source.
func New(f Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: f,
		cache:   cache.Noop{},
		ttl:     DefaultTTL,
		source:  scraper.Source,
		key:     CacheKey,
		log:     logger.WithComponent("feed"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	return s
}

// Matches returns the current payload. refresh skips the cache read but the
// fresh result is still cached.
func (s *Service) Matches(ctx context.Context, refresh bool) (*Payload, error) {
	if s.ttl > 0 && !refresh {
		if p, ok := s.cached(ctx); ok {
			metrics.IncCache("hit")
			return p, nil
		}
		metrics.IncCache("miss")
	} else {
		metrics.IncCache("bypass")
	}

	v, err, shared := s.group.Do(s.key, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx))
	})
	if err != nil {
		return s.fallback(ctx, err)
	}
	if shared {
		s.log.Debug().Msg("joined in-flight fetch")
	}
	return v.(*Payload), nil
}

// Refresh fetches, persists and caches a new payload without consulting the cache.
func (s *Service) Refresh(ctx context.Context) (*Payload, error) {
	return s.Matches(ctx, true)
}

// Latest returns the most recent persisted payload, flagged as stale.
func (s *Service) Latest(ctx context.Context) (*Payload, error) {
	if s.sink == nil {
		return nil, storage.ErrNoSnapshot
	}
	snap, err := s.sink.LatestSnapshot(ctx, s.source)
	if err != nil {
		return nil, err
	}
	p := newPayload(snap.Matches, snap.FetchedAt)
	p.Stale = true
	return p, nil
}

func (s *Service) cached(ctx context.Context) (*Payload, bool) {
	data, ok := s.cache.Get(ctx, s.key)
	if !ok {
		return nil, false
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("discarding unreadable cache entry")
		return nil, false
	}
	if p.Matches == nil {
		p.Matches = []*match.Match{}
	}
	return &p, true
}

func (s *Service) fetch(ctx context.Context) (*Payload, error) {
	matches, err := s.fetcher.FetchMatches(ctx, s.headers)
	if err != nil {
		return nil, err
	}

	p := newPayload(matches, s.now().UTC())
	s.persist(ctx, p)

	if s.ttl > 0 {
		data, err := json.Marshal(p)
		if err != nil {
			s.log.Error().Err(err).Msg("encoding payload for cache")
		} else {
			s.cache.Set(ctx, s.key, data, s.ttl)
		}
	}

	return p, nil
}

func (s *Service) persist(ctx context.Context, p *Payload) {
	if s.sink == nil {
		return
	}
	snap := &storage.Snapshot{Source: s.source, FetchedAt: p.FetchedAt, Matches: p.Matches}
	if err := s.sink.SaveSnapshot(ctx, snap); err != nil {
		metrics.IncPersistError(s.sink.Backend())
		s.log.Error().
			Err(err).
			Str("source", s.source).
			Str("backend", s.sink.Backend()).
			Int("matches", len(p.Matches)).
			Msg("failed to persist snapshot")
	}
}

func (s *Service) fallback(ctx context.Context, fetchErr error) (*Payload, error) {
	if !errors.Is(fetchErr, scraper.ErrNetwork) || s.sink == nil {
		return nil, fetchErr
	}

	p, err := s.Latest(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNoSnapshot) {
			s.log.Error().Err(err).Msg("loading latest snapshot")
		}
		return nil, fetchErr
	}

	s.log.Warn().
		Err(fetchErr).
		Time("fetched_at", p.FetchedAt).
		Int("matches", p.Count).
		Msg("serving stale snapshot")
	return p, nil
}
