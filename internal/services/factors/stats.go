package factors

import "math"

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance is the population variance.
func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}

// covariance is the population covariance of two equal-length series.
func covariance(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	mx := mean(xs)
	my := mean(ys)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(n)
}

// pearson is the Pearson correlation coefficient. It returns 0 when either
// series has fewer than 2 points or zero variance.
func pearson(xs, ys []float64) float64 {
	if len(xs) < 2 || len(ys) < 2 {
		return 0
	}
	vx := variance(xs)
	vy := variance(ys)
	if vx == 0 || vy == 0 {
		return 0
	}
	return covariance(xs, ys) / math.Sqrt(vx*vy)
}

// Volatility is the sample standard deviation of a return series.
// Returns 0 for fewer than 2 observations.
func Volatility(returns []float64) float64 {
	n := len(returns)
	if n < 2 {
		return 0
	}
	m := mean(returns)
	sum := 0.0
	for _, r := range returns {
		d := r - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func round3(x float64) float64 { return math.Round(x*1000) / 1000 }

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }

// Round2 rounds to 2 decimals. Exported for the aggregator and analyzer.
func Round2(x float64) float64 { return round2(x) }

// Round3 rounds to 3 decimals.
func Round3(x float64) float64 { return round3(x) }
