package breakeven

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/shopspring/decimal"
)

// Retirement age bounds accepted by the profile schema
const (
	minRetirementAge = 50
	maxRetirementAge = 100
)

// Solver finds the contribution or retirement age at which a goal is first met
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// evaluation is the deterministic outcome of one candidate profile
type evaluation struct {
	profile  *domain.FinancialProfile
	achieved float64
	target   float64
}

func (e evaluation) met() bool { return e.achieved >= e.target }

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Base == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "base profile is nil"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if err := req.Constraints.validateGoal(req.Goal); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case OptimizeContribution:
		return s.optimizeContribution(ctx, req)
	case OptimizeRetirementAge:
		return s.optimizeRetirementAge(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeContribution bisects the monthly contribution. Every goal measure
// grows with the contribution, so the smallest meeting value is bracketed.
func (s *Solver) optimizeContribution(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	lo := 0.0
	hi := 20000.0
	if req.Constraints.MinContribution != nil {
		lo = req.Constraints.MinContribution.InexactFloat64()
	}
	if req.Constraints.MaxContribution != nil {
		hi = req.Constraints.MaxContribution.InexactFloat64()
	}
	tolerance := req.Tolerance.InexactFloat64()

	iterations := 0
	try := func(amount float64) (evaluation, error) {
		iterations++
		if err := ctx.Err(); err != nil {
			return evaluation{}, err
		}
		return s.evaluateWith(req, &transform.SetMonthlyContribution{Amount: amount})
	}

	low, err := try(lo)
	if err != nil {
		return nil, s.wrap("optimize_contribution", err)
	}
	if low.met() {
		return s.finish(ctx, req, low, iterations, true,
			fmt.Sprintf("Goal already met at the minimum contribution of $%.2f", lo))
	}

	high, err := try(hi)
	if err != nil {
		return nil, s.wrap("optimize_contribution", err)
	}
	if !high.met() {
		return s.finish(ctx, req, high, iterations, false,
			fmt.Sprintf("Goal not reachable with contributions up to $%.2f per month", hi))
	}

	for iterations < req.MaxIterations && hi-lo > tolerance {
		mid := (lo + hi) / 2
		e, err := try(mid)
		if err != nil {
			return nil, s.wrap("optimize_contribution", err)
		}
		if e.met() {
			hi, high = mid, e
		} else {
			lo = mid
		}
	}

	// Round the answer up to a whole cent so it still meets the goal
	answer := decimal.NewFromFloat(hi).RoundCeil(2).InexactFloat64()
	final, err := s.evaluateWith(req, &transform.SetMonthlyContribution{Amount: answer})
	if err != nil {
		return nil, s.wrap("optimize_contribution", err)
	}
	if !final.met() {
		final = high
	}

	info := fmt.Sprintf("Bisection converged within $%s per month", req.Tolerance.String())
	if hi-lo > tolerance {
		info = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return s.finish(ctx, req, final, iterations, true, info)
}

// optimizeRetirementAge scans ages upward and stops at the first one that
// meets the goal. Inflation raises the required income each year, so the
// measure is not monotone in age and bisection does not apply.
func (s *Solver) optimizeRetirementAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base := req.Base

	minAge := max(base.CurrentAge+1, minRetirementAge)
	maxAge := min(base.LifeExpectancy, maxRetirementAge)
	if req.Constraints.MinRetirementAge != nil {
		minAge = max(minAge, *req.Constraints.MinRetirementAge)
	}
	if req.Constraints.MaxRetirementAge != nil {
		maxAge = min(maxAge, *req.Constraints.MaxRetirementAge)
	}

	var best *evaluation
	iterations := 0

	for age := minAge; age <= maxAge && iterations < req.MaxIterations; age++ {
		iterations++

		if err := ctx.Err(); err != nil {
			return nil, s.wrap("optimize_retirement_age", err)
		}

		e, err := s.evaluateWith(req, &transform.SetRetirementAge{Age: age})
		if err != nil {
			continue // Skip ages the profile cannot support
		}

		if e.met() {
			return s.finish(ctx, req, e, iterations, true,
				fmt.Sprintf("Earliest qualifying age found after %d ages", iterations))
		}

		if best == nil || e.achieved-e.target > best.achieved-best.target {
			best = &e
		}
	}

	if best != nil {
		return s.finish(ctx, req, *best, iterations, false,
			fmt.Sprintf("No retirement age between %d and %d meets the goal", minAge, maxAge))
	}

	return nil, &BreakEvenError{
		Operation: "optimize_retirement_age",
		Message:   fmt.Sprintf("no valid retirement ages between %d and %d", minAge, maxAge),
	}
}

// evaluateWith applies a lever to the base profile and measures the goal
// on the deterministic projection only.
func (s *Solver) evaluateWith(req OptimizationRequest, lever transform.ScenarioTransform) (evaluation, error) {
	p, err := transform.ApplyTransforms(req.Base, []transform.ScenarioTransform{lever})
	if err != nil {
		return evaluation{}, err
	}

	adjusted := calculation.AdjustedReturn(p.ExpectedAnnualReturn, p.RiskTolerance)
	projection := calculation.Project(p, adjusted, time.Now().Year())
	income := calculation.CalculateRetirementIncome(p, projection.TotalAtRetirement)

	e := evaluation{profile: p}
	switch req.Goal {
	case GoalTargetIncome:
		e.achieved = income.NetMonthlyIncome
		e.target = req.Constraints.TargetMonthlyIncome.InexactFloat64()
	case GoalTargetBalance:
		e.achieved = projection.TotalAtRetirement
		e.target = req.Constraints.TargetBalance.InexactFloat64()
	default:
		e.achieved = income.NetAnnualIncome
		e.target = income.RequiredIncome
	}
	return e, nil
}

// finish runs the full engine on the chosen profile and builds the result
func (s *Solver) finish(
	ctx context.Context,
	req OptimizationRequest,
	e evaluation,
	iterations int,
	success bool,
	info string,
) (*OptimizationResult, error) {
	calc, err := s.CalcEngine.Calculate(ctx, e.profile)
	if err != nil {
		return nil, s.wrap("evaluate_result", err)
	}

	p := e.profile
	result := &OptimizationResult{
		Target:            req.Target,
		Goal:              req.Goal,
		Success:           success,
		Iterations:        iterations,
		ConvergenceInfo:   info,
		Profile:           p,
		Calculations:      calc,
		TotalAtRetirement: decimal.NewFromFloat(calc.Projection.TotalAtRetirement).Round(2),
		NetMonthlyIncome:  decimal.NewFromFloat(calc.RetirementIncome.NetMonthlyIncome).Round(2),
		ReplacementRatio:  decimal.NewFromFloat(calc.RetirementIncome.IncomeReplacementRatio).Round(2),
		SuccessRate:       decimal.NewFromFloat(calc.MonteCarlo.SuccessRate).Round(2),
		GoalValue:         decimal.NewFromFloat(e.target).Round(2),
		AchievedValue:     decimal.NewFromFloat(e.achieved).Round(2),
		BaseContribution:  decimal.NewFromFloat(req.Base.MonthlyContribution).Round(2),
		BaseRetirementAge: req.Base.RetirementAge,
	}

	switch req.Target {
	case OptimizeContribution:
		contribution := decimal.NewFromFloat(p.MonthlyContribution).Round(2)
		result.OptimalContribution = &contribution
		result.ContributionDiffFromBase = contribution.Sub(result.BaseContribution)
	case OptimizeRetirementAge:
		age := p.RetirementAge
		result.OptimalRetirementAge = &age
		result.RetirementAgeDiff = age - req.Base.RetirementAge
	}

	return result, nil
}

func (s *Solver) wrap(operation string, err error) error {
	var be *BreakEvenError
	if errors.As(err, &be) {
		return be
	}
	return &BreakEvenError{
		Operation: operation,
		Message:   "evaluation failed",
		Cause:     err,
	}
}
