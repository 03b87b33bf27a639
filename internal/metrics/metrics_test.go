package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFetch(t *testing.T) {
	before := testutil.ToFloat64(FetchTotal.WithLabelValues("ok"))

	RecordFetch("ok", 120*time.Millisecond)

	if got := testutil.ToFloat64(FetchTotal.WithLabelValues("ok")); got != before+1 {
		t.Errorf("fetch_total{ok} = %v, want %v", got, before+1)
	}
}

func TestRecordFetch_EmptyOutcome(t *testing.T) {
	before := testutil.ToFloat64(FetchTotal.WithLabelValues("unknown"))

	RecordFetch("", time.Second)

	if got := testutil.ToFloat64(FetchTotal.WithLabelValues("unknown")); got != before+1 {
		t.Errorf("fetch_total{unknown} = %v, want %v", got, before+1)
	}
}

func TestRecordExtraction(t *testing.T) {
	before := testutil.ToFloat64(ExtractionPathTotal.WithLabelValues("table"))

	RecordExtraction("table", 7)

	if got := testutil.ToFloat64(ExtractionPathTotal.WithLabelValues("table")); got != before+1 {
		t.Errorf("extraction_path_total{table} = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(MatchesInSnapshot); got != 7 {
		t.Errorf("matches_in_snapshot = %v, want 7", got)
	}
}

func TestIncPersistError(t *testing.T) {
	before := testutil.ToFloat64(PersistErrorsTotal.WithLabelValues("sqlite"))

	IncPersistError("sqlite")

	if got := testutil.ToFloat64(PersistErrorsTotal.WithLabelValues("sqlite")); got != before+1 {
		t.Errorf("persist_errors_total{sqlite} = %v, want %v", got, before+1)
	}
}

func TestIncCache(t *testing.T) {
	before := testutil.ToFloat64(CacheTotal.WithLabelValues("hit"))

	IncCache("hit")
	IncCache("hit")

	if got := testutil.ToFloat64(CacheTotal.WithLabelValues("hit")); got != before+2 {
		t.Errorf("cache_requests_total{hit} = %v, want %v", got, before+2)
	}
}
