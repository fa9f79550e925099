package config

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// FieldRule declares how one profile field is read and bounded
type FieldRule struct {
	Name        string
	Alias       string
	Min         float64
	Max         float64
	Integer     bool
	Required    bool
	Default     float64
	Description string
	set         func(p *domain.FinancialProfile, v float64)
}

// maxAmount caps every monetary field. A balance compounded at the highest
// accepted return for the longest horizon stays finite below this cap.
const maxAmount = 1e12

// profileSchema lists every accepted field in reporting order
var profileSchema = []FieldRule{
	{Name: "currentAge", Min: 18, Max: 100, Integer: true, Required: true,
		Description: "Age today in whole years",
		set:         func(p *domain.FinancialProfile, v float64) { p.CurrentAge = int(v) }},
	{Name: "retirementAge", Min: 50, Max: 100, Integer: true, Required: true,
		Description: "Age at which contributions stop and withdrawals begin",
		set:         func(p *domain.FinancialProfile, v float64) { p.RetirementAge = int(v) }},
	{Name: "currentSavings", Min: 0, Max: maxAmount, Required: true,
		Description: "Current retirement balance",
		set:         func(p *domain.FinancialProfile, v float64) { p.CurrentSavings = v }},
	{Name: "monthlyContribution", Min: 0, Max: maxAmount, Required: true,
		Description: "Monthly contribution in the first year",
		set:         func(p *domain.FinancialProfile, v float64) { p.MonthlyContribution = v }},
	{Name: "expectedAnnualReturn", Min: -0.1, Max: 0.5, Required: true,
		Description: "Expected nominal annual return",
		set:         func(p *domain.FinancialProfile, v float64) { p.ExpectedAnnualReturn = v }},
	{Name: "riskTolerance", Min: 1, Max: 3, Integer: true, Required: true,
		Description: "1 conservative, 2 moderate, 3 aggressive",
		set:         func(p *domain.FinancialProfile, v float64) { p.RiskTolerance = int(v) }},
	{Name: "inflationRate", Min: 0, Max: 0.2, Required: true,
		Description: "Annual general inflation",
		set:         func(p *domain.FinancialProfile, v float64) { p.InflationRate = v }},
	{Name: "socialSecurityIncome", Min: 0, Max: maxAmount, Required: true,
		Description: "Annual Social Security benefit in today's dollars",
		set:         func(p *domain.FinancialProfile, v float64) { p.SocialSecurityIncome = v }},
	{Name: "currentAnnualIncome", Min: 0, Max: maxAmount, Required: true,
		Description: "Gross annual income today",
		set:         func(p *domain.FinancialProfile, v float64) { p.CurrentAnnualIncome = v }},
	{Name: "incomeReplacementGoal", Min: 0.1, Max: 2, Required: true,
		Description: "Share of current income needed in retirement",
		set:         func(p *domain.FinancialProfile, v float64) { p.IncomeReplacementGoal = v }},
	{Name: "contributionIncreaseRate", Min: 0, Max: 0.2, Required: true,
		Description: "Annual growth of the monthly contribution",
		set:         func(p *domain.FinancialProfile, v float64) { p.ContributionIncreaseRate = v }},
	{Name: "withdrawalRate", Min: 0.01, Max: 0.1, Required: true,
		Description: "Initial withdrawal as a share of the retirement balance",
		set:         func(p *domain.FinancialProfile, v float64) { p.WithdrawalRate = v }},
	{Name: "taxRate", Min: 0, Max: 0.5, Required: true,
		Description: "Flat tax rate applied to withdrawals",
		set:         func(p *domain.FinancialProfile, v float64) { p.TaxRate = v }},
	{Name: "compoundingFrequency", Min: 1, Max: 365, Integer: true, Required: true,
		Description: "Compounding periods per year",
		set:         func(p *domain.FinancialProfile, v float64) { p.CompoundingFrequency = int(v) }},
	{Name: "volatility", Min: 0, Max: 0.5, Required: true,
		Description: "Annual standard deviation of returns",
		set:         func(p *domain.FinancialProfile, v float64) { p.Volatility = v }},
	{Name: "riskFreeRate", Min: 0, Max: 0.1, Required: true,
		Description: "Risk-free rate used by the risk ratios",
		set:         func(p *domain.FinancialProfile, v float64) { p.RiskFreeRate = v }},
	{Name: "downSideDeviation", Alias: "downsideDeviation", Min: 0, Max: 0.3, Required: true,
		Description: "Standard deviation of negative returns",
		set:         func(p *domain.FinancialProfile, v float64) { p.DownsideDeviation = v }},

	{Name: "healthcareCosts", Min: 0, Max: maxAmount,
		Description: "Annual healthcare spending in today's dollars",
		set:         func(p *domain.FinancialProfile, v float64) { p.HealthcareCosts = v }},
	{Name: "healthcareInflation", Min: 0, Max: 0.2,
		Description: "Annual healthcare cost inflation",
		set:         func(p *domain.FinancialProfile, v float64) { p.HealthcareInflation = v }},
	{Name: "emergencyFund", Min: 0, Max: maxAmount,
		Description: "Cash held outside the retirement account",
		set:         func(p *domain.FinancialProfile, v float64) { p.EmergencyFund = v }},
	{Name: "otherRetirementAccounts", Min: 0, Max: maxAmount,
		Description: "Balances of other retirement accounts",
		set:         func(p *domain.FinancialProfile, v float64) { p.OtherRetirementAccounts = v }},
	{Name: "pensionIncome", Min: 0, Max: maxAmount,
		Description: "Annual pension in today's dollars",
		set:         func(p *domain.FinancialProfile, v float64) { p.PensionIncome = v }},
	{Name: "partTimeIncomeYears", Min: 0, Max: 30, Integer: true,
		Description: "Years of part-time work at the start of retirement",
		set:         func(p *domain.FinancialProfile, v float64) { p.PartTimeIncomeYears = int(v) }},
	{Name: "partTimeIncome", Min: 0, Max: maxAmount,
		Description: "Annual part-time income in today's dollars",
		set:         func(p *domain.FinancialProfile, v float64) { p.PartTimeIncome = v }},
	{Name: "lifeExpectancy", Min: 65, Max: 120, Integer: true, Default: domain.DefaultLifeExpectancy,
		Description: "Age at which the projection ends",
		set:         func(p *domain.FinancialProfile, v float64) { p.LifeExpectancy = int(v) }},
}

// Schema returns a copy of the profile field rules
func Schema() []FieldRule {
	out := make([]FieldRule, len(profileSchema))
	copy(out, profileSchema)
	return out
}

// RequiredFields returns the names of all required fields in schema order
func RequiredFields() []string {
	var names []string
	for _, r := range profileSchema {
		if r.Required {
			names = append(names, r.Name)
		}
	}
	return names
}

// OptionalFields returns the names of all optional fields in schema order
func OptionalFields() []string {
	var names []string
	for _, r := range profileSchema {
		if !r.Required {
			names = append(names, r.Name)
		}
	}
	return names
}
