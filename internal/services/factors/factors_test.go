package factors

import (
	"math"
	"math/rand"
	"testing"
)

func TestComputeIdenticalSeriesFixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	series := make([]float64, 100)
	for i := range series {
		series[i] = rng.NormFloat64() * 0.01
	}

	fs := Compute(series, series, DefaultParams())
	if fs.Beta != 1.0 {
		t.Errorf("beta = %v, want 1.0", fs.Beta)
	}
	if fs.Correlation != 1.0 {
		t.Errorf("correlation = %v, want 1.0", fs.Correlation)
	}
	if fs.RSquared != 1.0 {
		t.Errorf("r_squared = %v, want 1.0", fs.RSquared)
	}
	if math.Abs(fs.Alpha) > 1e-9 {
		t.Errorf("alpha = %v, want ~0", fs.Alpha)
	}
	if fs.NPeriods != 100 {
		t.Errorf("n_periods = %d, want 100", fs.NPeriods)
	}
}

func TestComputeFlatBenchmark(t *testing.T) {
	asset := []float64{0.01, -0.02, 0.03, 0.005, -0.01}
	bench := []float64{0, 0, 0, 0, 0}

	fs := Compute(asset, bench, DefaultParams())
	if fs.Beta != 1.0 {
		t.Errorf("beta = %v, want exactly 1.0 against a flat benchmark", fs.Beta)
	}
	if fs.Correlation != 0.0 {
		t.Errorf("correlation = %v, want 0.0 against a flat benchmark", fs.Correlation)
	}
	if fs.RSquared != 0.0 {
		t.Errorf("r_squared = %v, want 0.0", fs.RSquared)
	}
}

func TestComputeInsufficientObservations(t *testing.T) {
	neutral := Compute([]float64{0.01}, []float64{0.02, 0.01}, DefaultParams())
	want := Compute(nil, nil, DefaultParams())
	if neutral != want {
		t.Fatalf("short input should yield neutral set, got %+v", neutral)
	}
	if neutral.Beta != 1.0 || neutral.Correlation != 0.0 || neutral.Alpha != 0.0 {
		t.Fatalf("unexpected neutral defaults: %+v", neutral)
	}
	if neutral.NPeriods != 0 {
		t.Fatalf("neutral n_periods = %d, want 0", neutral.NPeriods)
	}
}

func TestComputeAlignsToShorterSeries(t *testing.T) {
	bench := []float64{0.5, 0.5, 0.01, -0.02, 0.03}
	asset := []float64{0.02, -0.04, 0.06} // twice the benchmark tail

	fs := Compute(asset, bench, DefaultParams())
	if fs.NPeriods != 3 {
		t.Fatalf("n_periods = %d, want 3", fs.NPeriods)
	}
	// The last 3 benchmark returns are exactly half the asset returns.
	if fs.Beta != 2.0 {
		t.Errorf("beta = %v, want 2.0", fs.Beta)
	}
	if fs.Correlation != 1.0 {
		t.Errorf("correlation = %v, want 1.0", fs.Correlation)
	}
}

func TestComputeScaledSeriesBeta(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bench := make([]float64, 200)
	asset := make([]float64, 200)
	for i := range bench {
		bench[i] = rng.NormFloat64() * 0.01
		asset[i] = 1.5 * bench[i]
	}

	fs := Compute(asset, bench, DefaultParams())
	if fs.Beta != 1.5 {
		t.Errorf("beta = %v, want 1.5", fs.Beta)
	}
	if fs.Correlation != 1.0 {
		t.Errorf("correlation = %v, want 1.0", fs.Correlation)
	}
}

func TestComputeRounding(t *testing.T) {
	// Construct series with a known non-round beta.
	bench := []float64{0.01, -0.01, 0.02, -0.02, 0.015}
	asset := make([]float64, len(bench))
	for i, b := range bench {
		asset[i] = 1.23456 * b
	}

	fs := Compute(asset, bench, DefaultParams())
	if fs.Beta != 1.235 {
		t.Errorf("beta = %v, want 1.235 (3 decimals)", fs.Beta)
	}
}

func TestVolatility(t *testing.T) {
	if v := Volatility([]float64{0.01}); v != 0 {
		t.Fatalf("volatility of single point = %v, want 0", v)
	}
	v := Volatility([]float64{0.01, -0.01, 0.01, -0.01})
	if v <= 0 {
		t.Fatalf("volatility = %v, want > 0", v)
	}
}
