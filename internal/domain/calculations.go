package domain

// Severity classifies an Insight
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Insight is a rule-derived piece of guidance
type Insight struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Calculations is the full result of one engine run
type Calculations struct {
	AdjustedReturn     float64              `json:"adjustedReturn"`
	Projection         ProjectionResult     `json:"projection"`
	RetirementIncome   RetirementIncome     `json:"retirementIncome"`
	PortfolioLongevity int                  `json:"portfolioLongevity"`
	RiskMetrics        RiskMetrics          `json:"riskMetrics"`
	MonteCarlo         MonteCarloResult     `json:"monteCarlo"`
	Sensitivity        []SensitivityPoint   `json:"sensitivityAnalysis"`
	Compounding        []CompoundingPoint   `json:"compoundingComparison"`
	Healthcare         HealthcareProjection `json:"healthcare"`
	Supplemental       SupplementalAssets   `json:"supplementalAssets"`
	Insights           []Insight            `json:"insights"`
}

// InsightMessages returns just the message text of each insight, in order
func (c *Calculations) InsightMessages() []string {
	msgs := make([]string, 0, len(c.Insights))
	for _, in := range c.Insights {
		msgs = append(msgs, in.Message)
	}
	return msgs
}
