package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which profile lever the solver moves
type OptimizationTarget string

const (
	OptimizeContribution  OptimizationTarget = "contribution"
	OptimizeRetirementAge OptimizationTarget = "retirement_age"
	OptimizeAll           OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalReplacement   OptimizationGoal = "replacement"    // Net income covers the income replacement goal
	GoalTargetIncome  OptimizationGoal = "target_income"  // Net monthly income reaches TargetMonthlyIncome
	GoalTargetBalance OptimizationGoal = "target_balance" // Balance at retirement reaches TargetBalance
)

// ParseTarget validates a target name from the command line
func ParseTarget(s string) (OptimizationTarget, error) {
	switch t := OptimizationTarget(s); t {
	case OptimizeContribution, OptimizeRetirementAge, OptimizeAll:
		return t, nil
	}
	return "", fmt.Errorf("unknown target %q (use contribution, retirement_age or all)", s)
}

// ParseGoal validates a goal name from the command line
func ParseGoal(s string) (OptimizationGoal, error) {
	switch g := OptimizationGoal(s); g {
	case GoalReplacement, GoalTargetIncome, GoalTargetBalance:
		return g, nil
	}
	return "", fmt.Errorf("unknown goal %q (use replacement, target_income or target_balance)", s)
}

// Constraints define bounds for optimization parameters
type Constraints struct {
	// Monthly contribution search range
	MinContribution *decimal.Decimal `json:"minContribution,omitempty"`
	MaxContribution *decimal.Decimal `json:"maxContribution,omitempty"`

	// Retirement age search range; defaults to the schema bounds clipped
	// to the profile's current age and life expectancy
	MinRetirementAge *int `json:"minRetirementAge,omitempty"`
	MaxRetirementAge *int `json:"maxRetirementAge,omitempty"`

	// Targets for the target_income and target_balance goals
	TargetMonthlyIncome *decimal.Decimal `json:"targetMonthlyIncome,omitempty"`
	TargetBalance       *decimal.Decimal `json:"targetBalance,omitempty"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints() Constraints {
	minContribution := decimal.Zero
	maxContribution := decimal.NewFromInt(20000)

	return Constraints{
		MinContribution: &minContribution,
		MaxContribution: &maxContribution,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Base          *domain.FinancialProfile
	Target        OptimizationTarget
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Bisection stops once the bracket is narrower than this
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	Goal            OptimizationGoal   `json:"goal"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergenceInfo"`

	// Optimized parameters
	OptimalContribution  *decimal.Decimal `json:"optimalContribution,omitempty"`
	OptimalRetirementAge *int             `json:"optimalRetirementAge,omitempty"`

	// Results at optimal parameters
	Profile           *domain.FinancialProfile `json:"profile"`
	Calculations      *domain.Calculations     `json:"-"`
	TotalAtRetirement decimal.Decimal          `json:"totalAtRetirement"`
	NetMonthlyIncome  decimal.Decimal          `json:"netMonthlyIncome"`
	ReplacementRatio  decimal.Decimal          `json:"replacementRatio"`
	SuccessRate       decimal.Decimal          `json:"successRate"`
	GoalValue         decimal.Decimal          `json:"goalValue"`
	AchievedValue     decimal.Decimal          `json:"achievedValue"`

	// Comparison to base
	BaseContribution         decimal.Decimal `json:"baseContribution"`
	BaseRetirementAge        int             `json:"baseRetirementAge"`
	ContributionDiffFromBase decimal.Decimal `json:"contributionDiffFromBase"`
	RetirementAgeDiff        int             `json:"retirementAgeDiff"`
}

// MultiDimensionalResult contains results when optimizing every lever
type MultiDimensionalResult struct {
	Goal            OptimizationGoal     `json:"goal"`
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Contribution precision in dollars per month
	MaxIterations int             // Maximum bisection steps or ages scanned
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 60,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinContribution != nil && c.MinContribution.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min contribution cannot be negative",
		}
	}

	if c.MinContribution != nil && c.MaxContribution != nil {
		if c.MinContribution.GreaterThan(*c.MaxContribution) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min contribution cannot be greater than max contribution",
			}
		}
	}

	if c.MinRetirementAge != nil && c.MaxRetirementAge != nil {
		if *c.MinRetirementAge > *c.MaxRetirementAge {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min retirement age cannot be greater than max retirement age",
			}
		}
	}

	for _, age := range []*int{c.MinRetirementAge, c.MaxRetirementAge} {
		if age != nil && (*age < minRetirementAge || *age > maxRetirementAge) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   fmt.Sprintf("retirement age must be between %d and %d", minRetirementAge, maxRetirementAge),
			}
		}
	}

	if c.TargetMonthlyIncome != nil && !c.TargetMonthlyIncome.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target monthly income must be positive",
		}
	}

	if c.TargetBalance != nil && !c.TargetBalance.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target balance must be positive",
		}
	}

	return nil
}

// validateGoal checks that the goal has the target it needs
func (c *Constraints) validateGoal(goal OptimizationGoal) error {
	switch goal {
	case GoalReplacement:
		return nil
	case GoalTargetIncome:
		if c.TargetMonthlyIncome == nil {
			return &BreakEvenError{Operation: "validate_goal", Message: "target_income goal requires a target monthly income"}
		}
		return nil
	case GoalTargetBalance:
		if c.TargetBalance == nil {
			return &BreakEvenError{Operation: "validate_goal", Message: "target_balance goal requires a target balance"}
		}
		return nil
	default:
		return &BreakEvenError{Operation: "validate_goal", Message: fmt.Sprintf("unsupported goal: %s", goal)}
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
