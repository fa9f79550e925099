package domain

// Risk tolerance tiers accepted in a FinancialProfile.
const (
	RiskConservative = 1
	RiskModerate     = 2
	RiskAggressive   = 3
)

// DefaultLifeExpectancy is used when a profile omits lifeExpectancy
const DefaultLifeExpectancy = 90

// MaxSimulations bounds the Monte Carlo trial count for any engine or server
const MaxSimulations = 100000

// FinancialProfile is the validated input to a retirement calculation
type FinancialProfile struct {
	CurrentAge     int `json:"currentAge" yaml:"currentAge"`
	RetirementAge  int `json:"retirementAge" yaml:"retirementAge"`
	LifeExpectancy int `json:"lifeExpectancy" yaml:"lifeExpectancy"`

	CurrentSavings           float64 `json:"currentSavings" yaml:"currentSavings"`
	MonthlyContribution      float64 `json:"monthlyContribution" yaml:"monthlyContribution"`
	ContributionIncreaseRate float64 `json:"contributionIncreaseRate" yaml:"contributionIncreaseRate"`

	ExpectedAnnualReturn float64 `json:"expectedAnnualReturn" yaml:"expectedAnnualReturn"`
	RiskTolerance        int     `json:"riskTolerance" yaml:"riskTolerance"`
	Volatility           float64 `json:"volatility" yaml:"volatility"`
	RiskFreeRate         float64 `json:"riskFreeRate" yaml:"riskFreeRate"`
	DownsideDeviation    float64 `json:"downSideDeviation" yaml:"downSideDeviation"`
	CompoundingFrequency int     `json:"compoundingFrequency" yaml:"compoundingFrequency"`

	InflationRate       float64 `json:"inflationRate" yaml:"inflationRate"`
	HealthcareCosts     float64 `json:"healthcareCosts" yaml:"healthcareCosts"`
	HealthcareInflation float64 `json:"healthcareInflation" yaml:"healthcareInflation"`

	WithdrawalRate        float64 `json:"withdrawalRate" yaml:"withdrawalRate"`
	TaxRate               float64 `json:"taxRate" yaml:"taxRate"`
	SocialSecurityIncome  float64 `json:"socialSecurityIncome" yaml:"socialSecurityIncome"`
	PensionIncome         float64 `json:"pensionIncome" yaml:"pensionIncome"`
	CurrentAnnualIncome   float64 `json:"currentAnnualIncome" yaml:"currentAnnualIncome"`
	IncomeReplacementGoal float64 `json:"incomeReplacementGoal" yaml:"incomeReplacementGoal"`

	EmergencyFund           float64 `json:"emergencyFund" yaml:"emergencyFund"`
	OtherRetirementAccounts float64 `json:"otherRetirementAccounts" yaml:"otherRetirementAccounts"`
	PartTimeIncomeYears     int     `json:"partTimeIncomeYears" yaml:"partTimeIncomeYears"`
	PartTimeIncome          float64 `json:"partTimeIncome" yaml:"partTimeIncome"`
}

// YearsToRetirement returns the length of the accumulation phase in years
func (p *FinancialProfile) YearsToRetirement() int {
	if p.RetirementAge <= p.CurrentAge {
		return 0
	}
	return p.RetirementAge - p.CurrentAge
}

// YearsInRetirement returns the length of the decumulation phase in years
func (p *FinancialProfile) YearsInRetirement() int {
	if p.LifeExpectancy <= p.RetirementAge {
		return 0
	}
	return p.LifeExpectancy - p.RetirementAge
}

// AnnualContribution returns the first-year contribution (twelve monthly deposits)
func (p *FinancialProfile) AnnualContribution() float64 {
	return p.MonthlyContribution * 12
}

// GuaranteedIncome returns Social Security plus pension in today's dollars
func (p *FinancialProfile) GuaranteedIncome() float64 {
	return p.SocialSecurityIncome + p.PensionIncome
}

// Clone returns a copy of the profile that can be modified independently
func (p *FinancialProfile) Clone() *FinancialProfile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
