package aggregation

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the period bucketing policy for a series request.
type Mode int

const (
	// ModeMonthly groups measurements by calendar month
	ModeMonthly Mode = iota
	// ModeDateRange groups measurements by exact calendar day within a
	// caller-supplied inclusive date range
	ModeDateRange
)

// String returns the wire name of the mode
func (m Mode) String() string {
	switch m {
	case ModeMonthly:
		return "MONTHLY"
	case ModeDateRange:
		return "DATE_RANGE"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a requested mode, case-insensitively. An empty or
// unrecognized value fails with ErrInvalidMode.
func ParseMode(mode string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(mode)) {
	case "MONTHLY":
		return ModeMonthly, nil
	case "DATE_RANGE":
		return ModeDateRange, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}

// PeriodKey identifies one grouping bucket. Day is zero in monthly mode.
// The zero-day convention keeps a whole month and its first day distinct
// keys across modes.
type PeriodKey struct {
	Year  int
	Month time.Month
	Day   int
}

// bucket maps a measurement timestamp to its grouping key and the canonical
// instant used to render the period label. Bucketing is done on the stored
// civil calendar date; no timezone conversion is introduced here.
func bucket(mode Mode, t time.Time) (PeriodKey, time.Time) {
	year, month, day := t.Date()

	switch mode {
	case ModeDateRange:
		key := PeriodKey{Year: year, Month: month, Day: day}
		return key, time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	default:
		key := PeriodKey{Year: year, Month: month}
		return key, time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	}
}

// before orders period keys chronologically
func (k PeriodKey) before(other PeriodKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}
