package config

import "github.com/rgehrsitz/nestegg/internal/domain"

// ExampleProfile returns a mid-career saver profile used for documentation
// and for `nestegg init`.
func ExampleProfile() *domain.FinancialProfile {
	return &domain.FinancialProfile{
		CurrentAge:               30,
		RetirementAge:            65,
		LifeExpectancy:           domain.DefaultLifeExpectancy,
		CurrentSavings:           50000,
		MonthlyContribution:      1000,
		ContributionIncreaseRate: 0.03,
		ExpectedAnnualReturn:     0.07,
		RiskTolerance:            domain.RiskModerate,
		Volatility:               0.15,
		RiskFreeRate:             0.03,
		DownsideDeviation:        0.1,
		CompoundingFrequency:     12,
		InflationRate:            0.025,
		HealthcareCosts:          6000,
		HealthcareInflation:      0.05,
		WithdrawalRate:           0.04,
		TaxRate:                  0.22,
		SocialSecurityIncome:     24000,
		CurrentAnnualIncome:      85000,
		IncomeReplacementGoal:    0.8,
		EmergencyFund:            15000,
	}
}

// ProfileToMap converts a profile into the raw key/value form accepted by ParseProfile
func ProfileToMap(p *domain.FinancialProfile) map[string]any {
	return map[string]any{
		"currentAge":               p.CurrentAge,
		"retirementAge":            p.RetirementAge,
		"lifeExpectancy":           p.LifeExpectancy,
		"currentSavings":           p.CurrentSavings,
		"monthlyContribution":      p.MonthlyContribution,
		"contributionIncreaseRate": p.ContributionIncreaseRate,
		"expectedAnnualReturn":     p.ExpectedAnnualReturn,
		"riskTolerance":            p.RiskTolerance,
		"volatility":               p.Volatility,
		"riskFreeRate":             p.RiskFreeRate,
		"downSideDeviation":        p.DownsideDeviation,
		"compoundingFrequency":     p.CompoundingFrequency,
		"inflationRate":            p.InflationRate,
		"healthcareCosts":          p.HealthcareCosts,
		"healthcareInflation":      p.HealthcareInflation,
		"withdrawalRate":           p.WithdrawalRate,
		"taxRate":                  p.TaxRate,
		"socialSecurityIncome":     p.SocialSecurityIncome,
		"pensionIncome":            p.PensionIncome,
		"currentAnnualIncome":      p.CurrentAnnualIncome,
		"incomeReplacementGoal":    p.IncomeReplacementGoal,
		"emergencyFund":            p.EmergencyFund,
		"otherRetirementAccounts":  p.OtherRetirementAccounts,
		"partTimeIncomeYears":      p.PartTimeIncomeYears,
		"partTimeIncome":           p.PartTimeIncome,
	}
}
