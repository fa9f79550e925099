package calculation

import (
	"math"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// AdjustedReturn applies the risk tolerance offset to the expected return,
// floored at 1%.
func AdjustedReturn(expected float64, riskTolerance int) float64 {
	return math.Max(minAdjustedReturn, expected+riskToleranceOffsets[riskTolerance])
}

// periodicGrowth is the one-year growth factor of rate compounded n times
func periodicGrowth(rate float64, n int) float64 {
	if n < 1 {
		n = 1
	}
	return math.Pow(1+rate/float64(n), float64(n))
}

// FutureValueOfSavings compounds a lump sum for the given number of years
func FutureValueOfSavings(savings, rate float64, frequency, years int) float64 {
	if years <= 0 {
		return savings
	}
	return savings * math.Pow(periodicGrowth(rate, frequency), float64(years))
}

// FutureValueOfContributions values a stream of year-end contributions that
// start at monthly*12 and grow by growth each year.
func FutureValueOfContributions(monthly, growth, rate float64, frequency, years int) float64 {
	yearly := periodicGrowth(rate, frequency)
	total := 0.0
	for j := 0; j < years; j++ {
		contribution := monthly * 12 * math.Pow(1+growth, float64(j))
		total += contribution * math.Pow(yearly, float64(years-1-j))
	}
	return total
}

// Project runs the year-by-year projection from current age to life expectancy
func Project(p *domain.FinancialProfile, adjustedReturn float64, startYear int) domain.ProjectionResult {
	years := p.YearsToRetirement()
	fvSavings := FutureValueOfSavings(p.CurrentSavings, adjustedReturn, p.CompoundingFrequency, years)
	fvContrib := FutureValueOfContributions(p.MonthlyContribution, p.ContributionIncreaseRate,
		adjustedReturn, p.CompoundingFrequency, years)

	result := domain.ProjectionResult{
		TotalAtRetirement:         fvSavings + fvContrib,
		FutureValueCurrentSavings: fvSavings,
		FutureValueContributions:  fvContrib,
		YearsToRetirement:         years,
	}

	growth := periodicGrowth(adjustedReturn, p.CompoundingFrequency)
	balance := p.CurrentSavings
	contributions := p.CurrentSavings
	monthly := p.MonthlyContribution

	point := func(age int) domain.ProjectionPoint {
		return domain.ProjectionPoint{
			Age:                age,
			Year:               startYear + age - p.CurrentAge,
			Balance:            balance,
			TotalContributions: contributions,
			Growth:             math.Max(0, balance-contributions),
			IsRetired:          age >= p.RetirementAge,
		}
	}

	for age := p.CurrentAge; ; age++ {
		offset := age - p.CurrentAge
		if offset%sampleInterval == 0 || age == p.RetirementAge || age == p.LifeExpectancy {
			result.Points = append(result.Points, point(age))
		}
		if age >= p.LifeExpectancy {
			break
		}

		if age < p.RetirementAge {
			balance *= growth
			annual := monthly * 12
			balance += annual
			contributions += annual
			monthly *= 1 + p.ContributionIncreaseRate
			continue
		}

		t := float64(age - p.RetirementAge)
		inflation := math.Pow(1+p.InflationRate, t)
		required := p.CurrentAnnualIncome * p.IncomeReplacementGoal * inflation
		guaranteed := p.GuaranteedIncome() * inflation
		if age-p.RetirementAge < p.PartTimeIncomeYears {
			guaranteed += p.PartTimeIncome * inflation
		}

		balance *= 1 + adjustedReturn
		balance -= math.Max(0, required-guaranteed)
		if balance <= 0 {
			balance = 0
			result.DepletionAge = age + 1
			result.Points = append(result.Points, point(age+1))
			break
		}
	}

	return result
}

// CalculateRetirementIncome derives first-year retirement income from the
// balance at retirement.
func CalculateRetirementIncome(p *domain.FinancialProfile, totalAtRetirement float64) domain.RetirementIncome {
	withdrawal := totalAtRetirement * p.WithdrawalRate
	afterTax := withdrawal * (1 - p.TaxRate)
	guaranteed := p.GuaranteedIncome()
	net := afterTax + guaranteed

	inflationAdjusted := p.CurrentAnnualIncome * math.Pow(1+p.InflationRate, float64(p.YearsToRetirement()))
	required := inflationAdjusted * p.IncomeReplacementGoal

	ratio := 0.0
	if inflationAdjusted > 0 {
		ratio = net / inflationAdjusted * 100
	}

	return domain.RetirementIncome{
		AnnualWithdrawal:        withdrawal,
		AfterTaxWithdrawal:      afterTax,
		GuaranteedIncome:        guaranteed,
		NetAnnualIncome:         net,
		NetMonthlyIncome:        net / 12,
		InflationAdjustedIncome: inflationAdjusted,
		RequiredIncome:          required,
		IncomeReplacementRatio:  ratio,
		IncomeGap:               math.Max(0, required-net),
	}
}

// PortfolioLongevity counts the years an inflation-indexed withdrawal can be
// sustained, capped at MaxLongevityYears.
func PortfolioLongevity(total, annualWithdrawal, rate, inflation float64) int {
	if total <= 0 {
		return 0
	}
	balance := total
	for year := 0; year < MaxLongevityYears; year++ {
		balance = balance*(1+rate) - annualWithdrawal*math.Pow(1+inflation, float64(year))
		if balance <= 0 {
			return year + 1
		}
	}
	return MaxLongevityYears
}

// ProjectHealthcare estimates retirement healthcare spending
func ProjectHealthcare(p *domain.FinancialProfile, income domain.RetirementIncome) domain.HealthcareProjection {
	years := p.YearsToRetirement()
	annual := p.HealthcareCosts * math.Pow(1+p.HealthcareInflation, float64(years))

	lifetime := 0.0
	for t := 0; t < p.YearsInRetirement(); t++ {
		lifetime += annual * math.Pow(1+p.HealthcareInflation, float64(t))
	}

	share := 0.0
	if income.NetAnnualIncome > 0 {
		share = annual / income.NetAnnualIncome * 100
	}

	return domain.HealthcareProjection{
		AnnualCostAtRetirement:  annual,
		LifetimeCost:            lifetime,
		ShareOfRetirementIncome: share,
	}
}

// ProjectSupplementalAssets values resources held outside the main balance
func ProjectSupplementalAssets(p *domain.FinancialProfile, adjustedReturn float64) domain.SupplementalAssets {
	months := 0.0
	if p.CurrentAnnualIncome > 0 {
		months = p.EmergencyFund / (p.CurrentAnnualIncome / 12)
	}

	partTimeYears := p.PartTimeIncomeYears
	if r := p.YearsInRetirement(); partTimeYears > r {
		partTimeYears = r
	}
	partTime := 0.0
	for t := 0; t < partTimeYears; t++ {
		partTime += p.PartTimeIncome * math.Pow(1+p.InflationRate, float64(t))
	}

	return domain.SupplementalAssets{
		EmergencyFundMonths: months,
		OtherAccountsAtRetirement: FutureValueOfSavings(p.OtherRetirementAccounts, adjustedReturn,
			p.CompoundingFrequency, p.YearsToRetirement()),
		PartTimeIncomeTotal: partTime,
	}
}
