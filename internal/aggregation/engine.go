package aggregation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Store supplies pre-joined daily measurement rows. Implementations filter
// to active measurements, phenomena and stations, translate an empty station
// reference into "no filter", and return an empty slice (not an error) for a
// station reference that matches nothing.
type Store interface {
	FetchDailyMeasurements(ctx context.Context, station string, start, end *time.Time) ([]Measurement, error)
}

// Request describes one series request as received from the transport layer
type Request struct {
	Mode    string
	Station string
	Start   *time.Time
	End     *time.Time
}

// Engine runs the validate → fetch → aggregate → pivot pipeline. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	store  Store
	logger *zap.SugaredLogger
}

// NewEngine creates a new aggregation engine
func NewEngine(store Store, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// Run executes one series request. Validation failures are reported as
// ErrInvalidMode or ErrMissingRangeBounds before any store query; store
// failures surface as ErrStoreUnavailable. Absence of matching data yields
// an empty series.
func (e *Engine) Run(ctx context.Context, req Request) ([]SeriesEntry, error) {
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	var start, end *time.Time
	if mode == ModeDateRange {
		if req.Start == nil || req.End == nil {
			return nil, ErrMissingRangeBounds
		}
		start, end = req.Start, req.End
	}

	measurements, err := e.store.FetchDailyMeasurements(ctx, req.Station, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	rows := aggregate(mode, measurements)
	series := pivot(rows)

	e.logger.Debugf("aggregated %d measurements into %d periods (mode %s)",
		len(measurements), len(series), mode)

	return series, nil
}
