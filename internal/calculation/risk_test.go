package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRiskMetrics_ScenarioA(t *testing.T) {
	m := CalculateRiskMetrics(0.07, 0.03, 0.15, 0.10, 0.025)

	assert.InDelta(t, 0.2667, m.SharpeRatio, 1e-4)
	assert.InDelta(t, 0.4, m.SortinoRatio, 1e-9)
	assert.InDelta(t, 1.0, m.PortfolioBeta, 1e-9)
	assert.InDelta(t, (0.07-1.645*0.15)*100, m.ValueAtRisk, 1e-9)
	assert.InDelta(t, 37.5, m.MaxDrawdown, 1e-9)
	assert.InDelta(t, 7/37.5, m.CalmarRatio, 1e-9)
	assert.InDelta(t, 0.04, m.TreynorRatio, 1e-9)
	assert.InDelta(t, m.SharpeRatio*0.8, m.InformationRatio, 1e-12)
	assert.InDelta(t, (1.07/1.025-1)*100, m.RealReturn, 1e-9)
}

func TestCalculateRiskMetrics_ZeroVolatility(t *testing.T) {
	adjusted := 0.07
	m := CalculateRiskMetrics(adjusted, 0.03, 0, 0, 0.025)

	assert.Zero(t, m.SharpeRatio)
	assert.Zero(t, m.SortinoRatio)
	assert.Zero(t, m.PortfolioBeta)
	assert.Zero(t, m.MaxDrawdown)
	assert.Zero(t, m.CalmarRatio)
	assert.Zero(t, m.TreynorRatio)
	assert.Zero(t, m.InformationRatio)
	assert.Equal(t, adjusted*100, m.ValueAtRisk, "no volatility term is subtracted")
}

func TestCalculateRiskMetrics_ZeroDownsideOnly(t *testing.T) {
	m := CalculateRiskMetrics(0.08, 0.03, 0.2, 0, 0.02)

	assert.Zero(t, m.SortinoRatio)
	assert.InDelta(t, 0.25, m.SharpeRatio, 1e-9)
}
