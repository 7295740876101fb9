package factors

import "BetaPulse/internal/domain/models"

// Risk categories, ordered by increasing benchmark sensitivity.
const (
	RiskDefensive     = "Defensive"
	RiskLow           = "Low Risk"
	RiskMarketNeutral = "Market Neutral"
	RiskModerate      = "Moderate Risk"
	RiskHigh          = "High Risk"
)

// ClassifyRisk maps a beta value to one of five fixed, non-overlapping
// bands. Total over all real values; lower bounds are inclusive.
func ClassifyRisk(beta float64) models.RiskProfile {
	switch {
	case beta < 0.5:
		return models.RiskProfile{
			Category:    RiskDefensive,
			Color:       "#3498db",
			Description: "Moves largely independently of the benchmark",
		}
	case beta < 0.9:
		return models.RiskProfile{
			Category:    RiskLow,
			Color:       "#2ecc71",
			Description: "Dampened benchmark exposure",
		}
	case beta < 1.1:
		return models.RiskProfile{
			Category:    RiskMarketNeutral,
			Color:       "#95a5a6",
			Description: "Tracks the benchmark roughly one-to-one",
		}
	case beta < 1.5:
		return models.RiskProfile{
			Category:    RiskModerate,
			Color:       "#f39c12",
			Description: "Amplifies benchmark moves",
		}
	default:
		return models.RiskProfile{
			Category:    RiskHigh,
			Color:       "#e74c3c",
			Description: "Strongly amplifies benchmark moves",
		}
	}
}
