package calculation

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
)

// Metrics is the read-only view the insight rules evaluate
type Metrics struct {
	Profile            *domain.FinancialProfile
	Projection         domain.ProjectionResult
	Income             domain.RetirementIncome
	PortfolioLongevity int
	Risk               domain.RiskMetrics
	MonteCarlo         domain.MonteCarloResult
	Healthcare         domain.HealthcareProjection
}

// SavingsRate is the annual contribution over current savings, in percent.
// Zero savings divides by 1.
func (m Metrics) SavingsRate() float64 {
	base := m.Profile.CurrentSavings
	if base == 0 {
		base = 1
	}
	return m.Profile.AnnualContribution() / base * 100
}

// GoalPercent is the income replacement goal in percent
func (m Metrics) GoalPercent() float64 {
	return m.Profile.IncomeReplacementGoal * 100
}

// InsightRule turns metrics into one insight when Applies holds
type InsightRule struct {
	Name     string
	Severity domain.Severity
	Applies  func(m Metrics) bool
	Message  func(m Metrics) string
}

// DefaultInsightRules is the ordered rule set used by the engine
var DefaultInsightRules = []InsightRule{
	{
		Name:     "replacement_shortfall",
		Severity: domain.SeverityWarning,
		Applies:  func(m Metrics) bool { return m.Income.IncomeReplacementRatio < m.GoalPercent() },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Projected retirement income replaces %.1f%% of your inflation-adjusted income, short of your %.0f%% goal by %s per year.",
				m.Income.IncomeReplacementRatio, m.GoalPercent(), output.FormatCurrency(m.Income.IncomeGap))
		},
	},
	{
		Name:     "replacement_on_track",
		Severity: domain.SeveritySuccess,
		Applies:  func(m Metrics) bool { return m.Income.IncomeReplacementRatio >= m.GoalPercent() },
		Message: func(m Metrics) string {
			return fmt.Sprintf("You are on track to replace %.1f%% of your income, meeting your %.0f%% goal.",
				m.Income.IncomeReplacementRatio, m.GoalPercent())
		},
	},
	{
		Name:     "longevity_short",
		Severity: domain.SeverityCritical,
		Applies:  func(m Metrics) bool { return m.PortfolioLongevity < 20 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("At a %.1f%% withdrawal rate your portfolio is projected to last only %d years. Consider a lower withdrawal rate or a later retirement.",
				m.Profile.WithdrawalRate*100, m.PortfolioLongevity)
		},
	},
	{
		Name:     "longevity_strong",
		Severity: domain.SeveritySuccess,
		Applies:  func(m Metrics) bool { return m.PortfolioLongevity >= 30 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Your portfolio is projected to sustain withdrawals for %d years or more.", m.PortfolioLongevity)
		},
	},
	{
		Name:     "sharpe_low",
		Severity: domain.SeverityWarning,
		Applies:  func(m Metrics) bool { return m.Risk.SharpeRatio < 0.3 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("A Sharpe ratio of %.2f means you are taking on a lot of volatility for the return you expect.", m.Risk.SharpeRatio)
		},
	},
	{
		Name:     "sharpe_high",
		Severity: domain.SeveritySuccess,
		Applies:  func(m Metrics) bool { return m.Risk.SharpeRatio >= 0.5 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Your expected risk-adjusted return is strong (Sharpe ratio %.2f).", m.Risk.SharpeRatio)
		},
	},
	{
		Name:     "value_at_risk",
		Severity: domain.SeverityWarning,
		Applies:  func(m Metrics) bool { return m.Risk.ValueAtRisk < -10 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("In a bad year (5%% chance) your portfolio could lose %.1f%% or more.", -m.Risk.ValueAtRisk)
		},
	},
	{
		Name:     "savings_rate_low",
		Severity: domain.SeverityInfo,
		Applies:  func(m Metrics) bool { return m.SavingsRate() < 15 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Your annual contributions equal %.1f%% of current savings. Increasing them would speed up growth.", m.SavingsRate())
		},
	},
	{
		Name:     "retirement_near",
		Severity: domain.SeverityWarning,
		Applies:  func(m Metrics) bool { return m.Projection.YearsToRetirement < 10 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("With %d years until retirement there is limited time to recover from a market downturn.", m.Projection.YearsToRetirement)
		},
	},
	{
		Name:     "retirement_far",
		Severity: domain.SeverityInfo,
		Applies:  func(m Metrics) bool { return m.Projection.YearsToRetirement >= 30 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("You have %d years of compounding ahead of you.", m.Projection.YearsToRetirement)
		},
	},
	{
		Name:     "milestone_below_500k",
		Severity: domain.SeverityWarning,
		Applies:  func(m Metrics) bool { return m.Projection.TotalAtRetirement < 500_000 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Your projected balance at retirement of %s is below $500,000.", output.FormatCurrency(m.Projection.TotalAtRetirement))
		},
	},
	{
		Name:     "milestone_millionaire",
		Severity: domain.SeveritySuccess,
		Applies: func(m Metrics) bool {
			return m.Projection.TotalAtRetirement >= 1_000_000 && m.Projection.TotalAtRetirement < 5_000_000
		},
		Message: func(m Metrics) string {
			return fmt.Sprintf("You are projected to retire a millionaire with %s.", output.FormatCurrency(m.Projection.TotalAtRetirement))
		},
	},
	{
		Name:     "milestone_5m",
		Severity: domain.SeveritySuccess,
		Applies:  func(m Metrics) bool { return m.Projection.TotalAtRetirement >= 5_000_000 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Your projected balance of %s puts you past the $5 million mark.", output.FormatCurrency(m.Projection.TotalAtRetirement))
		},
	},
	{
		Name:     "monte_carlo_low",
		Severity: domain.SeverityWarning,
		Applies:  func(m Metrics) bool { return m.MonteCarlo.Simulations > 0 && m.MonteCarlo.SuccessRate < 50 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Only %.0f%% of simulated markets reach %s by retirement.",
				m.MonteCarlo.SuccessRate, output.FormatCurrency(m.MonteCarlo.SuccessTarget))
		},
	},
	{
		Name:     "healthcare_share",
		Severity: domain.SeverityWarning,
		Applies:  func(m Metrics) bool { return m.Healthcare.ShareOfRetirementIncome > 15 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Healthcare is projected to cost %s a year at retirement, %.0f%% of your retirement income.",
				output.FormatCurrency(m.Healthcare.AnnualCostAtRetirement), m.Healthcare.ShareOfRetirementIncome)
		},
	},
	{
		Name:     "depletion",
		Severity: domain.SeverityCritical,
		Applies:  func(m Metrics) bool { return m.Projection.DepletionAge > 0 },
		Message: func(m Metrics) string {
			return fmt.Sprintf("Withdrawing enough to meet your income goal exhausts your savings at age %d.", m.Projection.DepletionAge)
		},
	},
}

// GenerateInsights evaluates rules in order and returns one insight per match
func GenerateInsights(m Metrics, rules []InsightRule) []domain.Insight {
	insights := []domain.Insight{}
	for _, r := range rules {
		if r.Applies(m) {
			insights = append(insights, domain.Insight{
				Rule:     r.Name,
				Severity: r.Severity,
				Message:  r.Message(m),
			})
		}
	}
	return insights
}
