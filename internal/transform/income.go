package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// SetSocialSecurity changes the annual Social Security benefit (today's dollars).
type SetSocialSecurity struct {
	Annual float64
}

func (sss *SetSocialSecurity) Name() string {
	return "set_social_security"
}

func (sss *SetSocialSecurity) Description() string {
	return fmt.Sprintf("Assume $%.0f a year of Social Security", sss.Annual)
}

func (sss *SetSocialSecurity) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(sss.Name(), base); err != nil {
		return err
	}
	if sss.Annual < 0 {
		return NewTransformError(sss.Name(), "validate", fmt.Sprintf("benefit must be non-negative, got %g", sss.Annual), nil)
	}
	return nil
}

func (sss *SetSocialSecurity) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.SocialSecurityIncome = sss.Annual
	return modified, nil
}

// AddPartTimeWork models part-time earnings in the first years of retirement.
type AddPartTimeWork struct {
	Years  int
	Income float64
}

func (ptw *AddPartTimeWork) Name() string {
	return "part_time_work"
}

func (ptw *AddPartTimeWork) Description() string {
	return fmt.Sprintf("Work part time for %d years earning $%.0f a year", ptw.Years, ptw.Income)
}

func (ptw *AddPartTimeWork) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(ptw.Name(), base); err != nil {
		return err
	}
	if ptw.Years < 0 || ptw.Years > 30 {
		return NewTransformError(ptw.Name(), "validate", fmt.Sprintf("years must be between 0 and 30, got %d", ptw.Years), nil)
	}
	if ptw.Income < 0 {
		return NewTransformError(ptw.Name(), "validate", fmt.Sprintf("income must be non-negative, got %g", ptw.Income), nil)
	}
	return nil
}

func (ptw *AddPartTimeWork) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.PartTimeIncomeYears = ptw.Years
	modified.PartTimeIncome = ptw.Income
	return modified, nil
}
