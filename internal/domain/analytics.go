package domain

// RiskMetrics holds the portfolio risk ratios derived from return assumptions.
// Percent-valued fields (ValueAtRisk, MaxDrawdown, RealReturn) are expressed
// in percentage points.
type RiskMetrics struct {
	SharpeRatio      float64 `json:"sharpeRatio"`
	SortinoRatio     float64 `json:"sortinoRatio"`
	PortfolioBeta    float64 `json:"portfolioBeta"`
	ValueAtRisk      float64 `json:"valueAtRisk"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
	CalmarRatio      float64 `json:"calmarRatio"`
	TreynorRatio     float64 `json:"treynorRatio"`
	InformationRatio float64 `json:"informationRatio"`
	RealReturn       float64 `json:"realReturn"`
}

// PercentileValue is a single point of the Monte Carlo outcome distribution
type PercentileValue struct {
	Percentile int     `json:"percentile"`
	Value      float64 `json:"value"`
}

// MonteCarloResult aggregates simulated balances at retirement
type MonteCarloResult struct {
	Percentiles       []PercentileValue `json:"percentiles"`
	SuccessRate       float64           `json:"successRate"`
	SuccessTarget     float64           `json:"successTarget"`
	Median            float64           `json:"median"`
	Mean              float64           `json:"mean"`
	StandardDeviation float64           `json:"standardDeviation"`
	Simulations       int               `json:"simulations"`
	Seed              int64             `json:"seed"`
}

// Percentile returns the value reported for p, if present
func (r *MonteCarloResult) Percentile(p int) (float64, bool) {
	for _, pv := range r.Percentiles {
		if pv.Percentile == p {
			return pv.Value, true
		}
	}
	return 0, false
}

// SensitivityPoint is the closed-form balance at retirement under a shifted return
type SensitivityPoint struct {
	Label      string  `json:"label"`
	Variation  float64 `json:"variation"`
	ReturnRate float64 `json:"returnRate"`
	Value      float64 `json:"value"`
	Difference float64 `json:"difference"`
}

// CompoundingPoint compares compounding frequencies on current savings
type CompoundingPoint struct {
	Frequency  int     `json:"frequency"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Difference float64 `json:"difference"`
}
