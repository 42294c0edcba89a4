package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/hassecalc/internal/algebra"
	"github.com/agbru/hassecalc/internal/logging"
	"github.com/agbru/hassecalc/internal/orchestration"
)

func newEngine(t *testing.T) *algebra.Algebra {
	t.Helper()
	a, err := algebra.New(8, "bcdefgha")
	if err != nil {
		t.Fatalf("algebra.New: %v", err)
	}
	return a
}

func TestObserve(t *testing.T) {
	t.Parallel()
	m := New()
	a := newEngine(t)

	results, err := orchestration.ExecuteBatch(context.Background(), a, []orchestration.Job{
		{Line: 1, Text: "hh + bb"},
		{Line: 2, Text: "b + c"},
		{Line: 3, Text: "b / a"},
		{Line: 4, Text: "zz + b"},
		{Line: 5, Text: "bb"},
	}, orchestration.BatchOptions{Workers: 2, Observer: m}, orchestration.NullProgressReporter{}, io.Discard)
	if err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results", len(results))
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"add values", testutil.ToFloat64(m.evaluations.WithLabelValues("add", "value")), 2},
		{"undefined divisions", testutil.ToFloat64(m.evaluations.WithLabelValues("divide", "undefined")), 1},
		{"invalid digits", testutil.ToFloat64(m.failures.WithLabelValues("invalid_digit")), 1},
		{"invalid expressions", testutil.ToFloat64(m.failures.WithLabelValues("invalid_expression")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if n := testutil.CollectAndCount(m.duration); n != 2 {
		t.Errorf("duration series = %d, want 2 (add, divide)", n)
	}
}

func TestFailureReason(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want string
	}{
		{context.Canceled, "canceled"},
		{algebra.ErrUnknownOp, "unknown_op"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		if got := failureReason(tt.err); got != tt.want {
			t.Errorf("failureReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSetEngine(t *testing.T) {
	t.Parallel()
	m := New()
	m.SetEngine(newEngine(t))
	grouped, err := algebra.New(5, "b{c,d}eea", algebra.WithBounded(true))
	if err != nil {
		t.Fatal(err)
	}
	m.SetEngine(grouped)

	if n := testutil.CollectAndCount(m.engine); n != 1 {
		t.Errorf("engine_info series = %d, want 1", n)
	}
	if got := testutil.ToFloat64(m.engine.WithLabelValues("5", "b{c,d}eea", "4", "true")); got != 1 {
		t.Errorf("engine_info = %v, want 1", got)
	}
}

func TestBatchStarted(t *testing.T) {
	t.Parallel()
	m := New()
	done := m.BatchStarted()
	if got := testutil.ToFloat64(m.active); got != 1 {
		t.Errorf("active = %v, want 1", got)
	}
	done()
	if got := testutil.ToFloat64(m.active); got != 0 {
		t.Errorf("active = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.batches); got != 1 {
		t.Errorf("batches = %v, want 1", got)
	}
}

func TestHandleMetrics(t *testing.T) {
	t.Parallel()
	m := New()
	m.RecordEvaluation(algebra.OpMultiply, algebra.KindValue, time.Millisecond)
	s := NewServer(":0", m, logging.NewNopLogger())

	t.Run("GET returns metrics", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		securityHeaders(s.handleMetrics)(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{"hassecalc_evaluations_total", `op="multiply"`, "go_goroutines"} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
		if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Error("security headers not set")
		}
	})

	t.Run("POST returns method not allowed", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		s.handleMetrics(rec, httptest.NewRequest(http.MethodPost, "/metrics", http.NoBody))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

func TestServerStart(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer("127.0.0.1:0", New(), logging.NewNopLogger())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
