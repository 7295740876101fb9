package factors

import "math"

// LogReturns converts a close-price series into log returns
// r_i = ln(p[i+1] / p[i]). Non-positive prices are dropped before
// differencing, preserving order. Returns nil when fewer than 2 valid
// prices remain; that is a data condition, not an error.
func LogReturns(prices []float64) []float64 {
	valid := make([]float64, 0, len(prices))
	for _, p := range prices {
		if p > 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) < 2 {
		return nil
	}

	out := make([]float64, 0, len(valid)-1)
	for i := 1; i < len(valid); i++ {
		out = append(out, math.Log(valid[i]/valid[i-1]))
	}
	return out
}

// Tail returns the most recent n elements of xs, or all of xs when it is
// shorter. The result aliases the input; callers must not mutate it.
func Tail(xs []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
