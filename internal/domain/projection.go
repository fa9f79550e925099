package domain

// ProjectionPoint is one sampled year of the deterministic projection.
// Balance is the account value at the start of Age.
type ProjectionPoint struct {
	Age                int     `json:"age"`
	Year               int     `json:"year"`
	Balance            float64 `json:"balance"`
	TotalContributions float64 `json:"totalContributions"`
	Growth             float64 `json:"growth"`
	IsRetired          bool    `json:"isRetired"`
}

// ProjectionResult holds the deterministic wealth projection
type ProjectionResult struct {
	TotalAtRetirement         float64           `json:"totalAtRetirement"`
	FutureValueCurrentSavings float64           `json:"futureValueCurrentSavings"`
	FutureValueContributions  float64           `json:"futureValueContributions"`
	YearsToRetirement         int               `json:"yearsToRetirement"`
	Points                    []ProjectionPoint `json:"yearlyProjections"`
	// DepletionAge is the first age at which the balance reached zero, or 0
	// when the balance lasted through life expectancy.
	DepletionAge int `json:"depletionAge"`
}

// PointAt returns the sampled point for an age, if one was emitted
func (r *ProjectionResult) PointAt(age int) (ProjectionPoint, bool) {
	for _, p := range r.Points {
		if p.Age == age {
			return p, true
		}
	}
	return ProjectionPoint{}, false
}

// FinalPoint returns the last sampled point
func (r *ProjectionResult) FinalPoint() (ProjectionPoint, bool) {
	if len(r.Points) == 0 {
		return ProjectionPoint{}, false
	}
	return r.Points[len(r.Points)-1], true
}

// RetirementIncome summarizes first-year retirement income
type RetirementIncome struct {
	AnnualWithdrawal        float64 `json:"annualWithdrawal"`
	AfterTaxWithdrawal      float64 `json:"afterTaxWithdrawal"`
	GuaranteedIncome        float64 `json:"guaranteedIncome"`
	NetAnnualIncome         float64 `json:"netAnnualIncome"`
	NetMonthlyIncome        float64 `json:"netMonthlyIncome"`
	InflationAdjustedIncome float64 `json:"inflationAdjustedIncome"`
	RequiredIncome          float64 `json:"requiredIncome"`
	IncomeReplacementRatio  float64 `json:"incomeReplacementRatio"`
	IncomeGap               float64 `json:"incomeGap"`
}

// HealthcareProjection estimates healthcare spending in retirement
type HealthcareProjection struct {
	AnnualCostAtRetirement  float64 `json:"annualCostAtRetirement"`
	LifetimeCost            float64 `json:"lifetimeCost"`
	ShareOfRetirementIncome float64 `json:"shareOfRetirementIncome"`
}

// SupplementalAssets covers resources outside the main retirement balance
type SupplementalAssets struct {
	EmergencyFundMonths       float64 `json:"emergencyFundMonths"`
	OtherAccountsAtRetirement float64 `json:"otherAccountsAtRetirement"`
	PartTimeIncomeTotal       float64 `json:"partTimeIncomeTotal"`
}
