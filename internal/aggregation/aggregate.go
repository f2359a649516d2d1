package aggregation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// averagePlaces is the number of decimal places AVERAGE is rounded to.
// MAX, MIN and SUM pass through at stored precision.
const averagePlaces = 2

// Measurement is one pre-joined daily measurement row as supplied by the
// measurement store: already filtered to active measurement, phenomenon and
// station.
type Measurement struct {
	MeasuredAt time.Time
	Phenomenon string
	Allowed    OperationSet
	Quantity   decimal.Decimal
}

// AggregatedRow holds the statistics for one (period, phenomenon) group.
// Fields for operations outside the phenomenon's allowed set are nil and
// never appear in output.
type AggregatedRow struct {
	Period      PeriodKey
	PeriodStart time.Time
	Phenomenon  string
	Average     *decimal.Decimal
	Max         *decimal.Decimal
	Min         *decimal.Decimal
	Sum         *decimal.Decimal
}

// groupKey partitions measurements period-major, phenomenon-minor
type groupKey struct {
	period     PeriodKey
	phenomenon string
}

type partition struct {
	periodStart time.Time
	allowed     OperationSet
	quantities  []decimal.Decimal
}

// aggregate partitions the measurements by (period, phenomenon) and computes,
// per partition, only the statistics the phenomenon's operation set permits.
// The result is sorted ascending by period, then by phenomenon name.
func aggregate(mode Mode, measurements []Measurement) []AggregatedRow {
	partitions := make(map[groupKey]*partition)

	for _, m := range measurements {
		period, periodStart := bucket(mode, m.MeasuredAt)
		key := groupKey{period: period, phenomenon: m.Phenomenon}

		p, ok := partitions[key]
		if !ok {
			p = &partition{periodStart: periodStart, allowed: m.Allowed}
			partitions[key] = p
		}
		p.quantities = append(p.quantities, m.Quantity)
	}

	rows := make([]AggregatedRow, 0, len(partitions))
	for key, p := range partitions {
		rows = append(rows, computeRow(key, p))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period.before(rows[j].Period)
		}
		return rows[i].Phenomenon < rows[j].Phenomenon
	})

	return rows
}

// computeRow evaluates the allowed statistics over one partition's quantities
func computeRow(key groupKey, p *partition) AggregatedRow {
	row := AggregatedRow{
		Period:      key.period,
		PeriodStart: p.periodStart,
		Phenomenon:  key.phenomenon,
	}

	sum := decimal.Zero
	max := p.quantities[0]
	min := p.quantities[0]
	for _, q := range p.quantities {
		sum = sum.Add(q)
		if q.GreaterThan(max) {
			max = q
		}
		if q.LessThan(min) {
			min = q
		}
	}

	for _, op := range operationOrder {
		if !p.allowed.Has(op) {
			continue
		}
		switch op {
		case OpAverage:
			avg := sum.Div(decimal.NewFromInt(int64(len(p.quantities)))).Round(averagePlaces)
			row.Average = &avg
		case OpMax:
			v := max
			row.Max = &v
		case OpMin:
			v := min
			row.Min = &v
		case OpSum:
			v := sum
			row.Sum = &v
		}
	}

	return row
}
