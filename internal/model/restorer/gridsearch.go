package restorer

import (
	"fmt"
	"strings"
)

// Metric names a grid-search score column
type Metric string

const (
	MetricPrecision Metric = "precision"
	MetricRecall    Metric = "recall"
	MetricFScore    Metric = "f_score"
)

// ParseMetric validates a metric name
func ParseMetric(name string) (Metric, error) {
	switch Metric(strings.ToLower(name)) {
	case MetricPrecision:
		return MetricPrecision, nil
	case MetricRecall:
		return MetricRecall, nil
	case MetricFScore:
		return MetricFScore, nil
	}
	return "", fmt.Errorf("%w: unknown metric %q", ErrConfiguration, name)
}

// Direction selects whether the optimizer minimizes or maximizes a metric
type Direction string

const (
	Minimize Direction = "minimize"
	Maximize Direction = "maximize"
)

// ParseDirection validates a selection direction
func ParseDirection(name string) (Direction, error) {
	switch Direction(strings.ToLower(name)) {
	case Minimize:
		return Minimize, nil
	case Maximize:
		return Maximize, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", ErrConfiguration, name)
}

// GridRow is one evaluated hyperparameter combination
type GridRow struct {
	L         int     `json:"l"`
	Lambda    float64 `json:"lambda"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	FScore    float64 `json:"f_score"`
}

// Value returns the row's score for the given metric
func (r GridRow) Value(metric Metric) float64 {
	switch metric {
	case MetricPrecision:
		return r.Precision
	case MetricRecall:
		return r.Recall
	default:
		return r.FScore
	}
}

// GridSearch is the result table of one completed search. Rows are stored in
// the deterministic nested iteration order (L outer, lambda inner) and the
// table is never mutated after the search completes.
type GridSearch struct {
	Name string    `json:"name"`
	ID   string    `json:"id"` // run ID assigned when the search starts
	Beta float64   `json:"beta"`
	Rows []GridRow `json:"rows"`
}

// Best scans the rows in insertion order and returns the first row achieving
// the best value of the metric in the given direction. Ties keep the earlier
// row, so selection is deterministic.
func (gs *GridSearch) Best(metric Metric, direction Direction) (GridRow, error) {
	if len(gs.Rows) == 0 {
		return GridRow{}, fmt.Errorf("%w: grid search %q has no rows", ErrNoGridSearchSelected, gs.Name)
	}
	best := gs.Rows[0]
	for _, row := range gs.Rows[1:] {
		v, bestV := row.Value(metric), best.Value(metric)
		if (direction == Maximize && v > bestV) || (direction == Minimize && v < bestV) {
			best = row
		}
	}
	return best, nil
}
