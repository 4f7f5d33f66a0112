package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"weighttracker/internal/domain"

	"github.com/shopspring/decimal"
)

// ChartsService derives chart-ready series from a user's entries.
type ChartsService struct {
	repo domain.EntryRepository
}

// NewChartsService creates a ChartsService backed by the given repository.
func NewChartsService(repo domain.EntryRepository) *ChartsService {
	return &ChartsService{repo: repo}
}

// SeriesPoint is a single chart data point.
type SeriesPoint struct {
	Day    string  `json:"day"`
	Weight float64 `json:"weight"`
}

// ChangeStats summarizes a chronologically-sorted series: the earliest
// weight, the latest weight, the absolute change between them, and the
// percentage change. All four are zero with fewer than two points.
type ChangeStats struct {
	Start            float64 `json:"start"`
	Current          float64 `json:"current"`
	Change           float64 `json:"change"`
	ChangePercentage float64 `json:"changePercentage"`
}

// ChartSeries is everything one chart needs to render.
type ChartSeries struct {
	Timeframe string        `json:"timeframe"`
	Label     string        `json:"label"`
	Points    []SeriesPoint `json:"points"`
	Domain    [2]float64    `json:"domain"`
	Stats     ChangeStats   `json:"stats"`
}

// GetSeries fetches the user's entries and derives the series for the given
// timeframe relative to now.
func (s *ChartsService) GetSeries(ctx context.Context, userID int64, timeframeKey string, now time.Time) (*ChartSeries, error) {
	tf, ok := domain.TimeframeByKey(timeframeKey)
	if !ok {
		return nil, fmt.Errorf("unknown timeframe %q", timeframeKey)
	}
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	series := BuildSeries(entries, tf, now)
	return &series, nil
}

// BuildSeries filters, sorts, and summarizes entries for a timeframe. Pure
// and deterministic given an explicit now; two charts can build independent
// series over the same entry list.
func BuildSeries(entries []domain.WeightEntry, tf domain.Timeframe, now time.Time) ChartSeries {
	cutoff, hasCutoff := tf.CutoffDay(now)

	points := make([]SeriesPoint, 0, len(entries))
	for _, e := range entries {
		if hasCutoff && e.Day < cutoff {
			continue
		}
		points = append(points, SeriesPoint{Day: e.Day, Weight: e.Weight})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })

	return ChartSeries{
		Timeframe: tf.Key,
		Label:     tf.Label,
		Points:    points,
		Domain:    axisDomain(points),
		Stats:     changeStats(points),
	}
}

// axisDomain pads the weight range by one unit on each side. An empty series
// yields [0, 0]: the chart renders nothing rather than failing on the
// min/max of an empty set.
func axisDomain(points []SeriesPoint) [2]float64 {
	if len(points) == 0 {
		return [2]float64{0, 0}
	}
	lo, hi := points[0].Weight, points[0].Weight
	for _, p := range points[1:] {
		if p.Weight < lo {
			lo = p.Weight
		}
		if p.Weight > hi {
			hi = p.Weight
		}
	}
	return [2]float64{lo - 1, hi + 1}
}

func changeStats(points []SeriesPoint) ChangeStats {
	if len(points) < 2 {
		return ChangeStats{}
	}
	start := points[0].Weight
	current := points[len(points)-1].Weight
	if start == 0 {
		// No meaningful percentage baseline; also keeps the division total.
		return ChangeStats{}
	}

	change := decimal.NewFromFloat(current).Sub(decimal.NewFromFloat(start))
	pct := change.Div(decimal.NewFromFloat(start)).Mul(decimal.NewFromInt(100))

	changeF, _ := change.Round(1).Float64()
	pctF, _ := pct.Round(2).Float64()
	return ChangeStats{
		Start:            start,
		Current:          current,
		Change:           changeF,
		ChangePercentage: pctF,
	}
}
