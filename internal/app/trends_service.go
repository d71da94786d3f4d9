package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wellness/internal/domain"
)

// MetricKind selects the reduction applied uniformly across all metrics.
type MetricKind string

// The closed set of supported aggregations; the values are wire values.
const (
	MetricAverage MetricKind = "avg"
	MetricMinimum MetricKind = "min"
	MetricMaximum MetricKind = "max"
)

// ParseMetricKind maps a wire value to a MetricKind.
func ParseMetricKind(s string) (MetricKind, error) {
	switch k := MetricKind(s); k {
	case MetricAverage, MetricMinimum, MetricMaximum:
		return k, nil
	}
	return "", fmt.Errorf("unknown metric type %q", s)
}

// ErrNoTrendData indicates the queried window holds no metric values at all.
// It is distinct from a result with some nil metrics: "nothing to report"
// must not be confused with "reported zero".
var ErrNoTrendData = errors.New("no habit records for the queried window")

// TrendsService computes aggregate metric trends over a trailing day window.
type TrendsService struct {
	repo domain.LogRepository
}

// NewTrendsService creates a TrendsService backed by the given repository.
func NewTrendsService(repo domain.LogRepository) *TrendsService {
	return &TrendsService{repo: repo}
}

// Trends aggregates each metric independently over the inclusive window
// [today-lastDays, today]. A metric with no recorded values anywhere in the
// window maps to nil; if every metric is nil the query fails with
// ErrNoTrendData. The service is day-count-agnostic: any caller-facing cap
// on lastDays belongs to the boundary.
func (s *TrendsService) Trends(ctx context.Context, userID string, lastDays int, kind MetricKind) (map[string]*float64, error) {
	today := time.Now().In(time.Local)
	start := today.AddDate(0, 0, -lastDays)

	logs, err := s.repo.ListByUserInRange(ctx, userID,
		start.Format(domain.DayFormat), today.Format(domain.DayFormat))
	if err != nil {
		return nil, err
	}

	values := make([][]float64, len(domain.MetricNames))
	for _, l := range logs {
		for i, v := range l.MetricValues() {
			if v != nil {
				values[i] = append(values[i], *v)
			}
		}
	}

	out := make(map[string]*float64, len(domain.MetricNames))
	found := false
	for i, name := range domain.MetricNames {
		if len(values[i]) == 0 {
			out[name] = nil
			continue
		}
		v := reduce(kind, values[i])
		out[name] = &v
		found = true
	}
	if !found {
		return nil, ErrNoTrendData
	}
	return out, nil
}

// reduce applies the aggregation for kind over a non-empty value set.
func reduce(kind MetricKind, vals []float64) float64 {
	switch kind {
	case MetricMinimum:
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case MetricMaximum:
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m
	default: // MetricAverage
		var sum float64
		for _, v := range vals {
			sum += v
		}
		return sum / float64(len(vals))
	}
}
