package restserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hidromet/hidromet-server/internal/aggregation"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

type fakeStore struct {
	measurements []aggregation.Measurement
	err          error
}

func (f *fakeStore) FetchDailyMeasurements(ctx context.Context, station string, start, end *time.Time) ([]aggregation.Measurement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.measurements, nil
}

func newTestHandlers(t *testing.T, store aggregation.Store) *Handlers {
	t.Helper()
	ctrl := &Controller{
		engine: aggregation.NewEngine(store, zap.NewNop().Sugar()),
		logger: zap.NewNop().Sugar(),
	}
	return NewHandlers(ctrl)
}

func rainfallMeasurements(t *testing.T) []aggregation.Measurement {
	t.Helper()
	ops, err := aggregation.ParseOperationSet("SUM")
	if err != nil {
		t.Fatalf("failed to parse operation set: %v", err)
	}
	return []aggregation.Measurement{
		{
			MeasuredAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Phenomenon: "Rainfall",
			Allowed:    ops,
			Quantity:   decimal.RequireFromString("5.3"),
		},
	}
}

func TestGetSeriesMonthly(t *testing.T) {
	handlers := newTestHandlers(t, &fakeStore{measurements: rainfallMeasurements(t)})

	req := httptest.NewRequest("GET", "/api/series?mode=monthly", nil)
	w := httptest.NewRecorder()
	handlers.GetSeries(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var series []aggregation.SeriesEntry
	if err := json.Unmarshal(w.Body.Bytes(), &series); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(series))
	}
	if series[0].PeriodLabel != "2024-03-01T00:00:00Z" {
		t.Errorf("unexpected period label %s", series[0].PeriodLabel)
	}
	if got := series[0].Measures["Rainfall"]["SUM"]; got != "5.3" {
		t.Errorf("expected SUM 5.3, got %s", got)
	}
}

func TestGetSeriesMsgPackFormat(t *testing.T) {
	handlers := newTestHandlers(t, &fakeStore{measurements: rainfallMeasurements(t)})

	req := httptest.NewRequest("GET", "/api/series?mode=monthly&format=msgpack", nil)
	w := httptest.NewRecorder()
	handlers.GetSeries(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("expected application/x-msgpack, got %s", ct)
	}

	var decoded []map[string]any
	if err := msgpack.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode msgpack response: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(decoded))
	}
}

func TestGetSeriesValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"missing mode", "/api/series"},
		{"unknown mode", "/api/series?mode=weekly"},
		{"missing end bound", "/api/series?mode=date_range&start=2024-03-01"},
		{"missing both bounds", "/api/series?mode=date_range"},
		{"malformed start", "/api/series?mode=date_range&start=01-03-2024&end=2024-03-02"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handlers := newTestHandlers(t, &fakeStore{})

			req := httptest.NewRequest("GET", tc.url, nil)
			w := httptest.NewRecorder()
			handlers.GetSeries(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetSeriesStoreFailure(t *testing.T) {
	handlers := newTestHandlers(t, &fakeStore{err: fmt.Errorf("dial tcp: connection refused")})

	req := httptest.NewRequest("GET", "/api/series?mode=monthly", nil)
	w := httptest.NewRecorder()
	handlers.GetSeries(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestGetSeriesDateRange(t *testing.T) {
	handlers := newTestHandlers(t, &fakeStore{measurements: rainfallMeasurements(t)})

	req := httptest.NewRequest("GET", "/api/series?mode=date_range&start=2024-03-01&end=2024-03-01", nil)
	w := httptest.NewRecorder()
	handlers.GetSeries(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var series []aggregation.SeriesEntry
	if err := json.Unmarshal(w.Body.Bytes(), &series); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(series))
	}
}
