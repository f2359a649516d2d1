// Package aggregation implements the time-bucketed conditional aggregation
// engine that turns flat daily measurements into pivoted, chart-ready series.
package aggregation

import (
	"fmt"
	"strings"
)

// Operation identifies a statistical operation over a group of measurements.
type Operation int

const (
	OpAverage Operation = iota
	OpMax
	OpMin
	OpSum
)

// operationOrder fixes the order in which statistics are computed and emitted.
var operationOrder = [...]Operation{OpAverage, OpMax, OpMin, OpSum}

// String returns the canonical wire name of the operation
func (o Operation) String() string {
	switch o {
	case OpAverage:
		return "AVERAGE"
	case OpMax:
		return "MAX"
	case OpMin:
		return "MIN"
	case OpSum:
		return "SUM"
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// OperationSet is the set of operations a phenomenon supports, as a bitmask
// indexed by Operation
type OperationSet uint8

// Has reports whether the set contains the given operation
func (s OperationSet) Has(op Operation) bool {
	return s&(1<<uint(op)) != 0
}

// Add returns the set with the given operation included
func (s OperationSet) Add(op Operation) OperationSet {
	return s | (1 << uint(op))
}

// IsEmpty reports whether no operations are in the set
func (s OperationSet) IsEmpty() bool {
	return s == 0
}

// String returns the comma-separated persisted form, in canonical order
func (s OperationSet) String() string {
	var names []string
	for _, op := range operationOrder {
		if s.Has(op) {
			names = append(names, op.String())
		}
	}
	return strings.Join(names, ",")
}

// ParseOperation parses a single operation name, case-insensitively
func ParseOperation(name string) (Operation, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "AVERAGE":
		return OpAverage, nil
	case "MAX":
		return OpMax, nil
	case "MIN":
		return OpMin, nil
	case "SUM":
		return OpSum, nil
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}

// ParseOperationSet parses the comma-separated persisted form of an
// operation set, e.g. "AVERAGE,MAX,MIN". An empty string yields the empty set.
func ParseOperationSet(list string) (OperationSet, error) {
	var set OperationSet
	if strings.TrimSpace(list) == "" {
		return set, nil
	}

	for _, name := range strings.Split(list, ",") {
		op, err := ParseOperation(name)
		if err != nil {
			return 0, err
		}
		set = set.Add(op)
	}

	return set, nil
}
