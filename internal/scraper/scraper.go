package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/qualcanal/qualcanal/internal/extract"
	"github.com/qualcanal/qualcanal/internal/logger"
	"github.com/qualcanal/qualcanal/internal/match"
	"github.com/qualcanal/qualcanal/internal/metrics"
	"github.com/qualcanal/qualcanal/internal/parser"
)

const (
	DefaultURL = "https://ondebola.com/"
	Source     = "ondebola"
	UserAgent  = "qualcanal-backend/1.0 (+https://example.com)"
	Timeout    = 15 * time.Second
)

// ErrNetwork is matched by every transport failure returned from FetchMatches.
var ErrNetwork = errors.New("network failure")

// NetworkError describes a failed fetch. StatusCode is zero when no response
// was received.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// Doer is the part of *http.Client the scraper needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithURL overrides the page to fetch.
func WithURL(url string) Option {
	return func(s *Scraper) {
		if url != "" {
			s.url = url
		}
	}
}

// WithClient replaces the HTTP client.
func WithClient(c Doer) Option {
	return func(s *Scraper) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds each fetch. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithHeaders adds request headers on top of the defaults.
func WithHeaders(h map[string]string) Option {
	return func(s *Scraper) {
		for k, v := range h {
			s.headers[k] = v
		}
	}
}

// WithParser swaps the line parser used by the extractor.
func WithParser(p *parser.Parser) Option {
	return func(s *Scraper) {
		s.extractor = extract.New(p)
	}
}

// Scraper handles fetching and parsing the schedule page.
type Scraper struct {
	client    Doer
	url       string
	timeout   time.Duration
	headers   map[string]string
	extractor *extract.Extractor
	log       zerolog.Logger
}

// New creates a Scraper for DefaultURL.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		url:       DefaultURL,
		timeout:   Timeout,
		headers:   map[string]string{"User-Agent": UserAgent},
		extractor: extract.New(nil),
		log:       logger.WithComponent("scraper"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// URL returns the page the scraper fetches.
func (s *Scraper) URL() string { return s.url }

// FetchMatches downloads the page and extracts a deduplicated batch of matches.
// headers are applied last and override the defaults key by key.
func (s *Scraper) FetchMatches(ctx context.Context, headers map[string]string) ([]*match.Match, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := s.get(ctx, headers)
	if err != nil {
		metrics.RecordFetch("network_error", time.Since(start))
		s.log.Warn().Err(err).Str("url", s.url).Msg("fetch failed")
		return nil, err
	}

	matches, path, err := s.parseMatches(bytes.NewReader(body))
	if err != nil {
		metrics.RecordFetch("error", time.Since(start))
		return nil, err
	}

	metrics.RecordFetch("ok", time.Since(start))
	metrics.RecordExtraction(string(path), len(matches))
	s.log.Info().
		Str("url", s.url).
		Str("path", string(path)).
		Int("matches", len(matches)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched schedule")

	return matches, nil
}

func (s *Scraper) get(ctx context.Context, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			URL:        s.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: s.url, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

// Parse runs extraction, page fallback and dedup over an HTML document.
func (s *Scraper) Parse(r io.Reader) ([]*match.Match, error) {
	matches, _, err := s.parseMatches(r)
	return matches, err
}

func (s *Scraper) parseMatches(r io.Reader) ([]*match.Match, extract.Path, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, extract.PathNone, fmt.Errorf("parsing HTML: %w", err)
	}

	res := s.extractor.Extract(doc)
	if len(res.Matches) == 0 {
		s.log.Debug().Str("path", string(res.Path)).Msg("no matches near heading, reading whole page")
		res = extract.Result{Matches: s.extractor.ExtractPage(doc), Path: extract.PathPage}
	}

	return match.Dedup(res.Matches), res.Path, nil
}
