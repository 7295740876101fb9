package models

import "time"

// Market regimes, evaluated by the aggregator in priority order.
const (
	RegimeRiskOn          = "RISK_ON"
	RegimeRiskOff         = "RISK_OFF"
	RegimeCorrelatedCrash = "CORRELATED_CRASH"
	RegimeNeutral         = "NEUTRAL"
)

// PriceSeries is the close-price history for one symbol and interval,
// fetched fresh each tick and never mutated.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Interval  string    `json:"interval"`
	Closes    []float64 `json:"closes"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// FactorSet holds the benchmark-relative factors for one (symbol, window)
// pair. NewNeutralFactorSet is the documented fallback whenever a window
// has insufficient observations.
type FactorSet struct {
	Beta        float64 `json:"beta"`
	Correlation float64 `json:"correlation"`
	RSquared    float64 `json:"r_squared"`
	Alpha       float64 `json:"alpha"`
	NPeriods    int     `json:"n_periods"`
}

// NewNeutralFactorSet returns the neutral defaults: parity beta, no
// measured co-movement.
func NewNeutralFactorSet() FactorSet {
	return FactorSet{Beta: 1.0, Correlation: 0.0, RSquared: 0.0, Alpha: 0.0, NPeriods: 0}
}

// RiskProfile is the user-facing classification of a beta value.
type RiskProfile struct {
	Category    string `json:"category"`
	Color       string `json:"color_hint"`
	Description string `json:"description"`
}

// SymbolSnapshot is the full analytics record for one symbol, recreated
// every tick and fully replacing the prior value.
type SymbolSnapshot struct {
	Symbol          string               `json:"symbol"`
	Timestamp       time.Time            `json:"timestamp"`
	LastPrice       float64              `json:"last_price"`
	Change24hPct    *float64             `json:"change_24h_pct,omitempty"`
	VolatilityRatio float64              `json:"volatility_ratio"`
	Risk            RiskProfile          `json:"risk"`
	Factors         map[string]FactorSet `json:"factors"`
}

// HistoryPoint is one entry of the capped per-symbol beta/correlation
// history ring.
type HistoryPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Beta        float64   `json:"beta"`
	Correlation float64   `json:"correlation"`
}

// MarketOverview is the market-wide aggregate derived from the currently
// cached snapshots.
type MarketOverview struct {
	Timestamp        time.Time `json:"timestamp"`
	MarketBeta       float64   `json:"market_beta"`
	AvgCorrelation   float64   `json:"avg_correlation"`
	HighBetaCount    int       `json:"high_beta_count"`
	LowBetaCount     int       `json:"low_beta_count"`
	NeutralBetaCount int       `json:"neutral_beta_count"`
	MarketRegime     string    `json:"market_regime"`
	BTCDominance     float64   `json:"btc_dominance"`
	SymbolsTracked   int       `json:"symbols_tracked"`
	SymbolsWithData  int       `json:"symbols_with_data"`
}

// RegimeEvent is published downstream when the market regime flips
// between ticks.
type RegimeEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	Previous       string    `json:"previous"`
	Current        string    `json:"current"`
	MarketBeta     float64   `json:"market_beta"`
	AvgCorrelation float64   `json:"avg_correlation"`
}

// SchedulerStatus is the status-query payload.
type SchedulerStatus struct {
	SymbolsTracked  int        `json:"symbols_tracked"`
	SymbolsWithData int        `json:"symbols_with_data"`
	LastUpdate      *time.Time `json:"last_update,omitempty"`
	MarketRegime    string     `json:"market_regime"`
}
