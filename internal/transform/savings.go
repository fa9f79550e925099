package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// AdjustContribution scales the monthly contribution by a percentage
// (0.10 saves 10% more, -0.25 saves a quarter less).
type AdjustContribution struct {
	Percent float64
}

func (ac *AdjustContribution) Name() string {
	return "adjust_contribution"
}

func (ac *AdjustContribution) Description() string {
	return fmt.Sprintf("Change monthly contribution by %+.0f%%", ac.Percent*100)
}

func (ac *AdjustContribution) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(ac.Name(), base); err != nil {
		return err
	}
	if ac.Percent < -1 {
		return NewTransformError(ac.Name(), "validate",
			fmt.Sprintf("percent must be at least -1 (stop contributing), got %g", ac.Percent), nil)
	}
	return nil
}

func (ac *AdjustContribution) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.MonthlyContribution *= 1 + ac.Percent
	return modified, nil
}

// SetMonthlyContribution sets the first-year monthly contribution.
type SetMonthlyContribution struct {
	Amount float64
}

func (smc *SetMonthlyContribution) Name() string {
	return "set_contribution"
}

func (smc *SetMonthlyContribution) Description() string {
	return fmt.Sprintf("Contribute $%.2f per month", smc.Amount)
}

func (smc *SetMonthlyContribution) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(smc.Name(), base); err != nil {
		return err
	}
	if smc.Amount < 0 {
		return NewTransformError(smc.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %g", smc.Amount), nil)
	}
	return nil
}

func (smc *SetMonthlyContribution) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.MonthlyContribution = smc.Amount
	return modified, nil
}

// SetWithdrawalRate changes the initial withdrawal rate in retirement.
type SetWithdrawalRate struct {
	Rate float64
}

func (swr *SetWithdrawalRate) Name() string {
	return "set_withdrawal_rate"
}

func (swr *SetWithdrawalRate) Description() string {
	return fmt.Sprintf("Withdraw %.1f%% of the balance in the first retirement year", swr.Rate*100)
}

func (swr *SetWithdrawalRate) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(swr.Name(), base); err != nil {
		return err
	}
	if swr.Rate < 0.01 || swr.Rate > 0.1 {
		return NewTransformError(swr.Name(), "validate",
			fmt.Sprintf("withdrawal rate must be between 0.01 and 0.10, got %g", swr.Rate), nil)
	}
	return nil
}

func (swr *SetWithdrawalRate) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.WithdrawalRate = swr.Rate
	return modified, nil
}
