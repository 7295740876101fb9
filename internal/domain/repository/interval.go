package repository

// Interval represents the candle resolution of a price series.
type Interval string

const (
	Interval1h Interval = "1h"
	Interval1d Interval = "1d"
)

// IsValidInterval returns true if iv is a supported interval.
func IsValidInterval(iv Interval) bool {
	switch iv {
	case Interval1h, Interval1d:
		return true
	default:
		return false
	}
}

// DefaultInterval returns the analytics interval. The factor engine is
// calibrated for hourly bars (periods_per_year defaults to 8760).
func DefaultInterval() Interval { return Interval1h }

// NormalizeInterval converts a raw string to a valid interval (or default).
func NormalizeInterval(s string) Interval {
	if s == "" {
		return DefaultInterval()
	}
	iv := Interval(s)
	if IsValidInterval(iv) {
		return iv
	}
	return DefaultInterval()
}
