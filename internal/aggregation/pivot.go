package aggregation

import (
	"encoding/json"
	"time"
)

// SeriesEntry is one period of the pivoted output: a period label plus a
// phenomenon -> operation -> value mapping containing only the operations
// that were computed for that period.
type SeriesEntry struct {
	PeriodLabel string                            `json:"periodLabel"`
	Measures    map[string]map[string]json.Number `json:"measures"`
}

// pivot reshapes period-ordered aggregated rows into the output series.
// Entries are appended on first encounter of each period, so the output
// preserves the ascending period order the rows arrive in.
func pivot(rows []AggregatedRow) []SeriesEntry {
	series := make([]SeriesEntry, 0, len(rows))
	index := make(map[PeriodKey]int)

	for _, row := range rows {
		i, ok := index[row.Period]
		if !ok {
			i = len(series)
			index[row.Period] = i
			series = append(series, SeriesEntry{
				PeriodLabel: row.PeriodStart.Format(time.RFC3339),
				Measures:    make(map[string]map[string]json.Number),
			})
		}
		series[i].Measures[row.Phenomenon] = leafMeasures(row)
	}

	return series
}

// leafMeasures builds the operation map for one phenomenon. Values are
// emitted as raw JSON numbers so decimal precision survives encoding.
func leafMeasures(row AggregatedRow) map[string]json.Number {
	leaf := make(map[string]json.Number)
	if row.Average != nil {
		leaf[OpAverage.String()] = json.Number(row.Average.StringFixed(averagePlaces))
	}
	if row.Max != nil {
		leaf[OpMax.String()] = json.Number(row.Max.String())
	}
	if row.Min != nil {
		leaf[OpMin.String()] = json.Number(row.Min.String())
	}
	if row.Sum != nil {
		leaf[OpSum.String()] = json.Number(row.Sum.String())
	}
	return leaf
}
