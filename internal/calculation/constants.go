package calculation

const (
	// minAdjustedReturn floors the risk-adjusted return
	minAdjustedReturn = 0.01

	// MarketVolatility is the benchmark volatility used to derive beta
	MarketVolatility = 0.15
	// VaRZScore is the one-tailed 95% normal quantile
	VaRZScore = 1.645
	// DrawdownMultiplier converts volatility into a drawdown estimate
	DrawdownMultiplier = 2.5
	// InformationRatioFactor scales the Sharpe ratio into an information ratio
	InformationRatioFactor = 0.8

	// MaxLongevityYears caps the portfolio longevity simulation
	MaxLongevityYears = 50
	// SuccessTargetMultiple is the 4%-rule multiple applied to current savings
	SuccessTargetMultiple = 25

	// DefaultSimulations is the Monte Carlo trial count
	DefaultSimulations = 1000

	sampleInterval = 5
)

// riskToleranceOffsets maps a tolerance tier to its return adjustment
var riskToleranceOffsets = map[int]float64{
	1: -0.015,
	2: 0,
	3: 0.01,
}
