package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// PostponeRetirement shifts the retirement age by a number of years.
// Negative values retire earlier.
type PostponeRetirement struct {
	Years int
}

func (pt *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pt *PostponeRetirement) Description() string {
	if pt.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -pt.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d years", pt.Years)
}

func (pt *PostponeRetirement) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(pt.Name(), base); err != nil {
		return err
	}

	newAge := base.RetirementAge + pt.Years
	if newAge <= base.CurrentAge {
		return NewTransformError(pt.Name(), "validate",
			fmt.Sprintf("retirement age %d would not be after current age %d", newAge, base.CurrentAge), nil)
	}
	return nil
}

func (pt *PostponeRetirement) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.RetirementAge += pt.Years
	return modified, nil
}

// SetRetirementAge sets the retirement age to an absolute value.
type SetRetirementAge struct {
	Age int
}

func (sra *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sra *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sra.Age)
}

func (sra *SetRetirementAge) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(sra.Name(), base); err != nil {
		return err
	}
	if sra.Age <= base.CurrentAge {
		return NewTransformError(sra.Name(), "validate",
			fmt.Sprintf("retirement age %d must be after current age %d", sra.Age, base.CurrentAge), nil)
	}
	return nil
}

func (sra *SetRetirementAge) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.RetirementAge = sra.Age
	return modified, nil
}

// SetLifeExpectancy changes the age at which the projection ends.
type SetLifeExpectancy struct {
	Age int
}

func (sle *SetLifeExpectancy) Name() string {
	return "set_life_expectancy"
}

func (sle *SetLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan to age %d", sle.Age)
}

func (sle *SetLifeExpectancy) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(sle.Name(), base); err != nil {
		return err
	}
	if sle.Age < base.RetirementAge {
		return NewTransformError(sle.Name(), "validate",
			fmt.Sprintf("life expectancy %d is before retirement age %d", sle.Age, base.RetirementAge), nil)
	}
	return nil
}

func (sle *SetLifeExpectancy) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.Clone()
	modified.LifeExpectancy = sle.Age
	return modified, nil
}
