package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// styler decorates report headings; the lite console uses plain text
type styler interface {
	title(s string) string
	section(s string) string
	label(s string) string
	severity(sev domain.Severity, s string) string
}

type plainStyler struct{}

func (plainStyler) title(s string) string {
	line := strings.Repeat("=", 80)
	return line + "\n" + s + "\n" + line
}
func (plainStyler) section(s string) string { return s + "\n" + strings.Repeat("-", len(s)) }
func (plainStyler) label(s string) string   { return s }
func (plainStyler) severity(sev domain.Severity, s string) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(sev)), s)
}

type lipglossStyler struct {
	titleStyle   lipgloss.Style
	sectionStyle lipgloss.Style
	labelStyle   lipgloss.Style
	levels       map[domain.Severity]lipgloss.Style
}

func newLipglossStyler() lipglossStyler {
	return lipglossStyler{
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E5C8A")).
			Padding(0, 2),
		sectionStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5DADE2")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true),
		labelStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		levels: map[domain.Severity]lipgloss.Style{
			domain.SeverityInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("#5DADE2")),
			domain.SeveritySuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("#58D68D")),
			domain.SeverityWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F5B041")),
			domain.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EC7063")),
		},
	}
}

func (l lipglossStyler) title(s string) string   { return l.titleStyle.Render(s) }
func (l lipglossStyler) section(s string) string { return l.sectionStyle.Render(s) }
func (l lipglossStyler) label(s string) string   { return l.labelStyle.Render(s) }
func (l lipglossStyler) severity(sev domain.Severity, s string) string {
	icon := map[domain.Severity]string{
		domain.SeverityInfo:     "ℹ",
		domain.SeveritySuccess:  "✓",
		domain.SeverityWarning:  "!",
		domain.SeverityCritical: "✗",
	}[sev]
	return l.levels[sev].Render(icon + " " + s)
}

// ConsoleFormatter renders a styled terminal report
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *Report) ([]byte, error) {
	return renderConsole(report, newLipglossStyler())
}

// ConsoleLiteFormatter renders the same report without styling, for pipes and logs
var ConsoleLiteFormatter = FormatterFunc{
	ID: "console-lite",
	F: func(report *Report) ([]byte, error) {
		return renderConsole(report, plainStyler{})
	},
}

func renderConsole(report *Report, st styler) ([]byte, error) {
	if report == nil || report.Calculations == nil {
		return nil, fmt.Errorf("report has no calculations")
	}
	c := report.Calculations
	var buf bytes.Buffer

	fmt.Fprintln(&buf, st.title("RETIREMENT PROJECTION REPORT"))
	fmt.Fprintln(&buf)

	if p := report.Profile; p != nil {
		fmt.Fprintln(&buf, st.section("PROFILE"))
		row(&buf, st, "Current / retirement age", fmt.Sprintf("%d / %d (life expectancy %d)", p.CurrentAge, p.RetirementAge, p.LifeExpectancy))
		row(&buf, st, "Current savings", FormatCurrency(p.CurrentSavings))
		row(&buf, st, "Monthly contribution", FormatCurrency(p.MonthlyContribution))
		row(&buf, st, "Expected / adjusted return", FormatRate(p.ExpectedAnnualReturn)+" / "+FormatRate(c.AdjustedReturn))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, st.section("PROJECTION"))
	row(&buf, st, "Total at retirement", FormatCurrency(c.Projection.TotalAtRetirement))
	row(&buf, st, "  from current savings", FormatCurrency(c.Projection.FutureValueCurrentSavings))
	row(&buf, st, "  from contributions", FormatCurrency(c.Projection.FutureValueContributions))
	row(&buf, st, "Years to retirement", fmt.Sprintf("%d", c.Projection.YearsToRetirement))
	row(&buf, st, "Portfolio longevity", fmt.Sprintf("%d years", c.PortfolioLongevity))
	if c.Projection.DepletionAge > 0 {
		row(&buf, st, "Balance depleted at age", fmt.Sprintf("%d", c.Projection.DepletionAge))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%-6s %-6s %18s %18s %18s\n", "Age", "Year", "Balance", "Contributions", "Growth")
	for _, pt := range c.Projection.Points {
		marker := ""
		if pt.IsRetired {
			marker = " *"
		}
		fmt.Fprintf(&buf, "%-6d %-6d %18s %18s %18s%s\n", pt.Age, pt.Year,
			FormatWholeCurrency(pt.Balance), FormatWholeCurrency(pt.TotalContributions), FormatWholeCurrency(pt.Growth), marker)
	}
	fmt.Fprintln(&buf, "  * retired")
	fmt.Fprintln(&buf)

	in := c.RetirementIncome
	fmt.Fprintln(&buf, st.section("RETIREMENT INCOME (FIRST YEAR)"))
	row(&buf, st, "Annual withdrawal", FormatCurrency(in.AnnualWithdrawal))
	row(&buf, st, "After-tax withdrawal", FormatCurrency(in.AfterTaxWithdrawal))
	row(&buf, st, "Guaranteed income", FormatCurrency(in.GuaranteedIncome))
	row(&buf, st, "Net annual income", FormatCurrency(in.NetAnnualIncome))
	row(&buf, st, "Net monthly income", FormatCurrency(in.NetMonthlyIncome))
	row(&buf, st, "Income replacement", FormatPercentage(in.IncomeReplacementRatio))
	if in.IncomeGap > 0 {
		row(&buf, st, "Income gap", FormatCurrency(in.IncomeGap))
	}
	fmt.Fprintln(&buf)

	r := c.RiskMetrics
	fmt.Fprintln(&buf, st.section("RISK METRICS"))
	row(&buf, st, "Sharpe ratio", fmt.Sprintf("%.3f", r.SharpeRatio))
	row(&buf, st, "Sortino ratio", fmt.Sprintf("%.3f", r.SortinoRatio))
	row(&buf, st, "Portfolio beta", fmt.Sprintf("%.3f", r.PortfolioBeta))
	row(&buf, st, "Value at risk (95%)", FormatPercentage(r.ValueAtRisk))
	row(&buf, st, "Max drawdown (est.)", FormatPercentage(r.MaxDrawdown))
	row(&buf, st, "Calmar ratio", fmt.Sprintf("%.3f", r.CalmarRatio))
	row(&buf, st, "Treynor ratio", fmt.Sprintf("%.3f", r.TreynorRatio))
	row(&buf, st, "Information ratio", fmt.Sprintf("%.3f", r.InformationRatio))
	row(&buf, st, "Real return", FormatPercentage(r.RealReturn))
	fmt.Fprintln(&buf)

	mc := c.MonteCarlo
	fmt.Fprintln(&buf, st.section(fmt.Sprintf("MONTE CARLO (%d SIMULATIONS)", mc.Simulations)))
	row(&buf, st, "Success rate", FormatPercentage(mc.SuccessRate)+" (target "+FormatWholeCurrency(mc.SuccessTarget)+")")
	row(&buf, st, "Median", FormatCurrency(mc.Median))
	row(&buf, st, "Mean", FormatCurrency(mc.Mean))
	row(&buf, st, "Standard deviation", FormatCurrency(mc.StandardDeviation))
	for _, p := range []int{5, 25, 50, 75, 95} {
		if v, ok := mc.Percentile(p); ok {
			row(&buf, st, fmt.Sprintf("  %dth percentile", p), FormatWholeCurrency(v))
		}
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, st.section("RETURN SENSITIVITY"))
	for _, sp := range c.Sensitivity {
		fmt.Fprintf(&buf, "%-6s %8s %18s %18s\n", sp.Label, FormatRate(sp.ReturnRate), FormatWholeCurrency(sp.Value), FormatWholeCurrency(sp.Difference))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, st.section("COMPOUNDING FREQUENCY (CURRENT SAVINGS)"))
	for _, cp := range c.Compounding {
		fmt.Fprintf(&buf, "%-10s %18s %18s\n", cp.Label, FormatWholeCurrency(cp.Value), FormatWholeCurrency(cp.Difference))
	}
	fmt.Fprintln(&buf)

	if c.Healthcare.AnnualCostAtRetirement > 0 {
		fmt.Fprintln(&buf, st.section("HEALTHCARE"))
		row(&buf, st, "Annual cost at retirement", FormatCurrency(c.Healthcare.AnnualCostAtRetirement))
		row(&buf, st, "Lifetime cost", FormatCurrency(c.Healthcare.LifetimeCost))
		row(&buf, st, "Share of income", FormatPercentage(c.Healthcare.ShareOfRetirementIncome))
		fmt.Fprintln(&buf)
	}

	if len(c.Insights) > 0 {
		fmt.Fprintln(&buf, st.section("INSIGHTS"))
		for _, in := range c.Insights {
			fmt.Fprintln(&buf, st.severity(in.Severity, in.Message))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, st.section("ASSUMPTIONS"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	return buf.Bytes(), nil
}

func row(buf *bytes.Buffer, st styler, label, value string) {
	fmt.Fprintf(buf, "%s %s\n", st.label(fmt.Sprintf("%-28s", label)), value)
}
