package domain

import "time"

// Timeframe maps a chart range selection to an inclusive cutoff day relative
// to the current time, or to no cutoff at all for "All data".
type Timeframe struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	months int
}

// Timeframes are the selectable chart ranges, shortest first. A zero month
// count means no cutoff.
var Timeframes = []Timeframe{
	{Key: "1m", Label: "1 month", months: 1},
	{Key: "3m", Label: "3 months", months: 3},
	{Key: "6m", Label: "6 months", months: 6},
	{Key: "1y", Label: "1 year", months: 12},
	{Key: "all", Label: "All data"},
}

// TimeframeByKey looks up a timeframe by its key.
func TimeframeByKey(key string) (Timeframe, bool) {
	for _, tf := range Timeframes {
		if tf.Key == key {
			return tf, true
		}
	}
	return Timeframe{}, false
}

// CutoffDay returns the inclusive lower-bound day for the timeframe relative
// to now. ok is false when the timeframe keeps all data.
func (tf Timeframe) CutoffDay(now time.Time) (day string, ok bool) {
	if tf.months == 0 {
		return "", false
	}
	return LocalDay(now.AddDate(0, -tf.months, 0)), true
}
