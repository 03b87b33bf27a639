package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/qualcanal/qualcanal/internal/calendar"
	"github.com/qualcanal/qualcanal/internal/feed"
	"github.com/qualcanal/qualcanal/internal/filter"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.loadMatches(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.loadMatches(w, r)
	if !ok {
		return
	}

	ics, _ := calendar.GenerateICS(payload.Matches, payload.FetchedAt)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="qualcanal.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, ics)
}

// loadMatches fetches the feed and applies the query filter. On failure it
// writes the error response and returns false.
func (s *Server) loadMatches(w http.ResponseWriter, r *http.Request) (*feed.Payload, bool) {
	q := r.URL.Query()

	f, err := filter.Parse(q.Get("team"), q.Get("competition"), q.Get("channel"), q.Get("day"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return nil, false
	}

	payload, err := s.feed.Matches(r.Context(), isRefresh(q.Get("refresh")))
	if err != nil {
		s.log.Error().
			Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Msg("failed to fetch matches")
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "Failed to fetch matches"})
		return nil, false
	}

	if !f.IsEmpty() {
		filtered := f.Apply(payload.Matches)
		payload = &feed.Payload{
			Count:     len(filtered),
			FetchedAt: payload.FetchedAt,
			Matches:   filtered,
			Stale:     payload.Stale,
		}
	}
	return payload, true
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleOptions(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func isRefresh(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// writeJSON encodes v without escaping non-ASCII or HTML characters.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
