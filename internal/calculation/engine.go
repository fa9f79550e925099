package calculation

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// Logger is the minimal logging interface used by the engine.
// *logrus.Logger and *logrus.Entry satisfy it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Options configures an Engine
type Options struct {
	// Simulations is the Monte Carlo trial count (default 1000)
	Simulations int
	// Workers bounds Monte Carlo parallelism (default runtime.NumCPU())
	Workers int
	// Seed fixes the Monte Carlo base seed; 0 derives one from the clock
	Seed int64
	// StartYear labels the first projection point (default current year)
	StartYear int
}

// DefaultOptions returns the engine defaults
func DefaultOptions() Options {
	return Options{Simulations: DefaultSimulations}
}

// CalculationEngine orchestrates all retirement calculations
type CalculationEngine struct {
	Options   Options
	Rules     []InsightRule
	NewSource SourceFactory
	Now       func() time.Time
	logger    Logger
}

// NewCalculationEngine creates an engine with default options
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithOptions(DefaultOptions())
}

// NewCalculationEngineWithOptions creates an engine with the given options
func NewCalculationEngineWithOptions(opts Options) *CalculationEngine {
	return &CalculationEngine{
		Options:   opts,
		Rules:     DefaultInsightRules,
		NewSource: NewRandSource,
		Now:       time.Now,
		logger:    NopLogger{},
	}
}

// SetLogger sets the engine logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.logger = NopLogger{}
		return
	}
	ce.logger = l
}

// Logger returns the engine logger
func (ce *CalculationEngine) Logger() Logger {
	if ce.logger == nil {
		return NopLogger{}
	}
	return ce.logger
}

// WithSeed returns a shallow copy of the engine using a fixed seed
func (ce *CalculationEngine) WithSeed(seed int64) *CalculationEngine {
	c := *ce
	c.Options.Seed = seed
	return &c
}

// Calculate runs every stage for a validated profile. Panics and non-finite
// results are reported as *ComputationError.
func (ce *CalculationEngine) Calculate(ctx context.Context, p *domain.FinancialProfile) (calc *domain.Calculations, err error) {
	log := ce.Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("calculation panic: %v", r)
			calc = nil
			err = &ComputationError{Operation: "calculate", Message: "unexpected failure", Cause: fmt.Errorf("%v", r)}
		}
	}()

	if p == nil {
		return nil, &ComputationError{Operation: "calculate", Message: "profile is nil"}
	}

	now := time.Now
	if ce.Now != nil {
		now = ce.Now
	}
	startYear := ce.Options.StartYear
	if startYear == 0 {
		startYear = now().Year()
	}
	seed := ce.Options.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}

	adjusted := AdjustedReturn(p.ExpectedAnnualReturn, p.RiskTolerance)
	log.Debugf("adjusted return %.4f (expected %.4f, tolerance %d)", adjusted, p.ExpectedAnnualReturn, p.RiskTolerance)

	projection := Project(p, adjusted, startYear)
	income := CalculateRetirementIncome(p, projection.TotalAtRetirement)
	longevity := PortfolioLongevity(projection.TotalAtRetirement, income.AnnualWithdrawal, adjusted, p.InflationRate)
	log.Debugf("total at retirement %.2f, longevity %d years", projection.TotalAtRetirement, longevity)

	var (
		wg          sync.WaitGroup
		risk        domain.RiskMetrics
		monteCarlo  domain.MonteCarloResult
		mcErr       error
		sensitivity []domain.SensitivityPoint
		compounding []domain.CompoundingPoint
		stagePanic  = make(chan any, 3)
	)

	stage := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					stagePanic <- r
				}
			}()
			f()
		}()
	}

	stage(func() {
		risk = CalculateRiskMetrics(adjusted, p.RiskFreeRate, p.Volatility, p.DownsideDeviation, p.InflationRate)
	})
	stage(func() {
		sim := &MonteCarloSimulator{
			Simulations: ce.Options.Simulations,
			Workers:     ce.Options.Workers,
			NewSource:   ce.NewSource,
		}
		monteCarlo, mcErr = sim.Run(ctx, p, seed)
	})
	stage(func() {
		sensitivity = AnalyzeSensitivity(p, adjusted)
		compounding = AnalyzeCompounding(p, adjusted)
	})
	wg.Wait()
	close(stagePanic)

	if r, ok := <-stagePanic; ok {
		log.Errorf("calculation stage panic: %v", r)
		return nil, &ComputationError{Operation: "calculate", Message: "unexpected failure", Cause: fmt.Errorf("%v", r)}
	}
	if mcErr != nil {
		return nil, &ComputationError{Operation: "monte_carlo", Message: "simulation failed", Cause: mcErr}
	}

	healthcare := ProjectHealthcare(p, income)
	metrics := Metrics{
		Profile:            p,
		Projection:         projection,
		Income:             income,
		PortfolioLongevity: longevity,
		Risk:               risk,
		MonteCarlo:         monteCarlo,
		Healthcare:         healthcare,
	}

	rules := ce.Rules
	if rules == nil {
		rules = DefaultInsightRules
	}

	calc = &domain.Calculations{
		AdjustedReturn:     adjusted,
		Projection:         projection,
		RetirementIncome:   income,
		PortfolioLongevity: longevity,
		RiskMetrics:        risk,
		MonteCarlo:         monteCarlo,
		Sensitivity:        sensitivity,
		Compounding:        compounding,
		Healthcare:         healthcare,
		Supplemental:       ProjectSupplementalAssets(p, adjusted),
		Insights:           GenerateInsights(metrics, rules),
	}

	if name, ok := firstNonFinite(calc); ok {
		log.Errorf("non-finite value in %s", name)
		return nil, &ComputationError{Operation: "validate_output", Message: "non-finite value in " + name}
	}

	log.Infof("calculation complete: %d insights, monte carlo success %.1f%%", len(calc.Insights), monteCarlo.SuccessRate)
	return calc, nil
}

// firstNonFinite returns the name of the first NaN or infinite output value
func firstNonFinite(c *domain.Calculations) (string, bool) {
	values := []struct {
		name string
		v    float64
	}{
		{"adjustedReturn", c.AdjustedReturn},
		{"projection.totalAtRetirement", c.Projection.TotalAtRetirement},
		{"projection.futureValueCurrentSavings", c.Projection.FutureValueCurrentSavings},
		{"projection.futureValueContributions", c.Projection.FutureValueContributions},
		{"retirementIncome.netAnnualIncome", c.RetirementIncome.NetAnnualIncome},
		{"retirementIncome.incomeReplacementRatio", c.RetirementIncome.IncomeReplacementRatio},
		{"retirementIncome.incomeGap", c.RetirementIncome.IncomeGap},
		{"riskMetrics.sharpeRatio", c.RiskMetrics.SharpeRatio},
		{"riskMetrics.sortinoRatio", c.RiskMetrics.SortinoRatio},
		{"riskMetrics.portfolioBeta", c.RiskMetrics.PortfolioBeta},
		{"riskMetrics.valueAtRisk", c.RiskMetrics.ValueAtRisk},
		{"riskMetrics.maxDrawdown", c.RiskMetrics.MaxDrawdown},
		{"riskMetrics.calmarRatio", c.RiskMetrics.CalmarRatio},
		{"riskMetrics.treynorRatio", c.RiskMetrics.TreynorRatio},
		{"riskMetrics.informationRatio", c.RiskMetrics.InformationRatio},
		{"riskMetrics.realReturn", c.RiskMetrics.RealReturn},
		{"monteCarlo.successRate", c.MonteCarlo.SuccessRate},
		{"monteCarlo.median", c.MonteCarlo.Median},
		{"monteCarlo.mean", c.MonteCarlo.Mean},
		{"monteCarlo.standardDeviation", c.MonteCarlo.StandardDeviation},
		{"healthcare.lifetimeCost", c.Healthcare.LifetimeCost},
		{"supplementalAssets.otherAccountsAtRetirement", c.Supplemental.OtherAccountsAtRetirement},
	}
	for _, nv := range values {
		if !isFinite(nv.v) {
			return nv.name, true
		}
	}
	for _, pt := range c.Projection.Points {
		if !isFinite(pt.Balance) {
			return fmt.Sprintf("projection.yearlyProjections[age=%d]", pt.Age), true
		}
	}
	for _, pv := range c.MonteCarlo.Percentiles {
		if !isFinite(pv.Value) {
			return fmt.Sprintf("monteCarlo.percentiles[%d]", pv.Percentile), true
		}
	}
	for _, sp := range c.Sensitivity {
		if !isFinite(sp.Value) {
			return "sensitivityAnalysis[" + sp.Label + "]", true
		}
	}
	for _, cp := range c.Compounding {
		if !isFinite(cp.Value) {
			return "compoundingComparison[" + cp.Label + "]", true
		}
	}
	return "", false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
