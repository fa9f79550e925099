package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"slices"
	"sync"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// UniformSource supplies uniform draws in [0,1). *rand.Rand satisfies it.
type UniformSource interface {
	Float64() float64
}

// SourceFactory creates the uniform source for one trial
type SourceFactory func(seed int64) UniformSource

// NewRandSource is the default SourceFactory
func NewRandSource(seed int64) UniformSource {
	return rand.New(rand.NewSource(seed))
}

// MonteCarloSimulator runs randomized accumulation-phase trials
type MonteCarloSimulator struct {
	Simulations int
	Workers     int
	NewSource   SourceFactory
}

// NewMonteCarloSimulator creates a simulator with the default trial count
func NewMonteCarloSimulator() *MonteCarloSimulator {
	return &MonteCarloSimulator{
		Simulations: DefaultSimulations,
		NewSource:   NewRandSource,
	}
}

// Run simulates every trial and aggregates the terminal balances. Trial i
// draws from its own source seeded with seed+i, so a fixed seed reproduces
// the result independent of worker scheduling.
func (s *MonteCarloSimulator) Run(ctx context.Context, p *domain.FinancialProfile, seed int64) (domain.MonteCarloResult, error) {
	n := s.Simulations
	if n <= 0 {
		n = DefaultSimulations
	}
	if n > domain.MaxSimulations {
		return domain.MonteCarloResult{}, fmt.Errorf("simulation count %d exceeds limit of %d", n, domain.MaxSimulations)
	}
	newSource := s.NewSource
	if newSource == nil {
		newSource = NewRandSource
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	outcomes := make([]float64, n)
	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		trialErr error
	)

	runTrial := func(i int) {
		defer func() {
			if r := recover(); r != nil {
				errOnce.Do(func() { trialErr = fmt.Errorf("trial %d: %v", i, r) })
			}
		}()
		outcomes[i] = SimulateTrial(p, newSource(seed+int64(i)))
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				runTrial(i)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.MonteCarloResult{}, fmt.Errorf("monte carlo cancelled: %w", err)
	}
	if trialErr != nil {
		return domain.MonteCarloResult{}, trialErr
	}

	result := SummarizeOutcomes(outcomes, p.CurrentSavings*SuccessTargetMultiple)
	result.Seed = seed
	return result, nil
}

// SimulateTrial returns one randomized balance at retirement
func SimulateTrial(p *domain.FinancialProfile, src UniformSource) float64 {
	n := p.CompoundingFrequency
	if n < 1 {
		n = 1
	}
	balance := p.CurrentSavings
	monthly := p.MonthlyContribution

	for y := 0; y < p.YearsToRetirement(); y++ {
		annualReturn := p.ExpectedAnnualReturn + NormalVariate(src)*p.Volatility
		factor := 1 + annualReturn/float64(n)
		if factor < 0 {
			factor = 0
		}
		balance *= math.Pow(factor, float64(n))
		balance += monthly * 12
		monthly *= 1 + p.ContributionIncreaseRate
	}
	return balance
}

// NormalVariate draws a standard normal value with the Box-Muller transform
func NormalVariate(src UniformSource) float64 {
	u1 := 1 - src.Float64() // (0,1] keeps the log finite
	u2 := src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// SummarizeOutcomes sorts the outcomes and computes percentiles, success
// rate and moments. outcomes is sorted in place.
func SummarizeOutcomes(outcomes []float64, target float64) domain.MonteCarloResult {
	n := len(outcomes)
	result := domain.MonteCarloResult{
		SuccessTarget: target,
		Simulations:   n,
	}
	if n == 0 {
		return result
	}

	slices.Sort(outcomes)

	for pct := 5; pct <= 95; pct += 5 {
		idx := pct * n / 100
		if idx > n-1 {
			idx = n - 1
		}
		result.Percentiles = append(result.Percentiles, domain.PercentileValue{
			Percentile: pct,
			Value:      outcomes[idx],
		})
	}

	successes := 0
	for _, b := range outcomes {
		if b >= target {
			successes++
		}
	}
	result.SuccessRate = float64(successes) / float64(n) * 100
	result.Median = outcomes[n/2]
	mean, variance := stat.PopMeanVariance(outcomes, nil)
	result.Mean = mean
	// identical outcomes can leave a tiny negative variance from rounding
	result.StandardDeviation = math.Sqrt(math.Max(0, variance))
	return result
}
