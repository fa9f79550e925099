package calculation

import "github.com/rgehrsitz/nestegg/internal/domain"

// CalculateRiskMetrics derives the risk ratios from return assumptions.
// Every ratio whose denominator is zero is reported as 0.
func CalculateRiskMetrics(adjustedReturn, riskFreeRate, volatility, downsideDeviation, inflation float64) domain.RiskMetrics {
	excess := adjustedReturn - riskFreeRate

	m := domain.RiskMetrics{
		PortfolioBeta: volatility / MarketVolatility,
		ValueAtRisk:   (adjustedReturn - VaRZScore*volatility) * 100,
		MaxDrawdown:   volatility * DrawdownMultiplier * 100,
		RealReturn:    ((1+adjustedReturn)/(1+inflation) - 1) * 100,
	}

	m.SharpeRatio = safeDiv(excess, volatility)
	m.SortinoRatio = safeDiv(excess, downsideDeviation)
	m.CalmarRatio = safeDiv(adjustedReturn*100, m.MaxDrawdown)
	m.TreynorRatio = safeDiv(excess, m.PortfolioBeta)
	m.InformationRatio = m.SharpeRatio * InformationRatioFactor

	return m
}

func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
