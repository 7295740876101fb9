package factors

import "BetaPulse/internal/domain/models"

// Params tunes the factor model.
type Params struct {
	// RiskFreeRate is the annual risk-free rate used for Jensen's alpha.
	RiskFreeRate float64
	// PeriodsPerYear annualizes mean per-period returns (8760 for hourly).
	PeriodsPerYear float64
}

// DefaultParams returns the standard calibration for hourly bars.
func DefaultParams() Params {
	return Params{RiskFreeRate: 0.02, PeriodsPerYear: 8760}
}

// Compute derives beta, Pearson correlation, R² and Jensen's alpha for an
// asset-return series against a benchmark-return series. Both series are
// aligned to min(len(asset), len(benchmark)) anchored at the most recent
// observation. Fewer than 2 aligned observations yields the neutral
// FactorSet; a zero-variance benchmark yields beta 1.0 (parity is assumed
// when the benchmark is flat). Pure and deterministic.
func Compute(asset, benchmark []float64, p Params) models.FactorSet {
	n := len(asset)
	if len(benchmark) < n {
		n = len(benchmark)
	}
	if n < 2 {
		return models.NewNeutralFactorSet()
	}

	a := asset[len(asset)-n:]
	b := benchmark[len(benchmark)-n:]

	fs := models.FactorSet{NPeriods: n}

	varB := variance(b)
	if varB == 0 {
		fs.Beta = 1.0
	} else {
		fs.Beta = round3(covariance(a, b) / varB)
	}

	fs.Correlation = round3(pearson(a, b))
	fs.RSquared = round3(fs.Correlation * fs.Correlation)

	annAsset := mean(a) * p.PeriodsPerYear
	annBench := mean(b) * p.PeriodsPerYear
	fs.Alpha = round4(annAsset - (p.RiskFreeRate + fs.Beta*(annBench-p.RiskFreeRate)))

	return fs
}
