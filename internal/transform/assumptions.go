package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

var toleranceNames = map[int]string{
	domain.RiskConservative: "conservative",
	domain.RiskModerate:     "moderate",
	domain.RiskAggressive:   "aggressive",
}

// SetRiskTolerance changes the risk tolerance tier, which shifts the
// adjusted return used by the deterministic projection.
type SetRiskTolerance struct {
	Tolerance int
}

func (srt *SetRiskTolerance) Name() string {
	return "set_risk_tolerance"
}

func (srt *SetRiskTolerance) Description() string {
	return fmt.Sprintf("Switch to %s risk tolerance", toleranceNames[srt.Tolerance])
}

func (srt *SetRiskTolerance) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(srt.Name(), base); err != nil {
		return err
	}
	if _, ok := toleranceNames[srt.Tolerance]; !ok {
		return NewTransformError(srt.Name(), "validate", fmt.Sprintf("tolerance must be 1, 2 or 3, got %d", srt.Tolerance), nil)
	}
	return nil
}

func (srt *SetRiskTolerance) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.RiskTolerance = srt.Tolerance
	return modified, nil
}

// SetInflation sets the general inflation rate assumption.
type SetInflation struct {
	Rate float64
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return fmt.Sprintf("Change inflation rate to %.1f%%", si.Rate*100)
}

func (si *SetInflation) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(si.Name(), base); err != nil {
		return err
	}
	if si.Rate < 0 || si.Rate > 0.2 {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("inflation rate must be between 0 and 0.20, got %g", si.Rate), nil)
	}
	return nil
}

func (si *SetInflation) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.InflationRate = si.Rate
	return modified, nil
}

// AdjustInflation shifts the inflation rate by Delta (0.01 adds one point).
type AdjustInflation struct {
	Delta float64
}

func (ai *AdjustInflation) Name() string {
	return "adjust_inflation"
}

func (ai *AdjustInflation) Description() string {
	return fmt.Sprintf("Shift inflation by %+.1f points", ai.Delta*100)
}

func (ai *AdjustInflation) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(ai.Name(), base); err != nil {
		return err
	}
	if r := base.InflationRate + ai.Delta; r < 0 || r > 0.2 {
		return NewTransformError(ai.Name(), "validate", fmt.Sprintf("resulting inflation rate %g is outside 0 to 0.20", r), nil)
	}
	return nil
}

func (ai *AdjustInflation) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.InflationRate += ai.Delta
	return modified, nil
}

// SetExpectedReturn changes the expected nominal annual return.
type SetExpectedReturn struct {
	Rate float64
}

func (ser *SetExpectedReturn) Name() string {
	return "set_expected_return"
}

func (ser *SetExpectedReturn) Description() string {
	return fmt.Sprintf("Expect a %.1f%% annual return", ser.Rate*100)
}

func (ser *SetExpectedReturn) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(ser.Name(), base); err != nil {
		return err
	}
	if ser.Rate < -0.1 || ser.Rate > 0.5 {
		return NewTransformError(ser.Name(), "validate", fmt.Sprintf("expected return must be between -0.10 and 0.50, got %g", ser.Rate), nil)
	}
	return nil
}

func (ser *SetExpectedReturn) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.ExpectedAnnualReturn = ser.Rate
	return modified, nil
}
