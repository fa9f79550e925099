package config

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// ParseProfile validates a raw key/value object and returns a typed profile.
// Every schema violation is reported together in a *ValidationError; field
// ordering problems are reported as a *CrossFieldError only once the schema
// checks pass. Unknown keys are ignored.
func ParseProfile(raw map[string]any) (*domain.FinancialProfile, error) {
	if raw == nil {
		return nil, &ValidationError{Fields: []FieldError{{
			Field:      "body",
			Constraint: ConstraintRequired,
			Message:    "a profile object is required",
		}}}
	}

	profile := &domain.FinancialProfile{}
	var fieldErrs []FieldError
	lifeExpectancyGiven := false

	for _, rule := range profileSchema {
		value, present := lookup(raw, rule)
		if !present {
			if rule.Required {
				fieldErrs = append(fieldErrs, FieldError{
					Field:      rule.Name,
					Constraint: ConstraintRequired,
					Message:    "is required",
				})
				continue
			}
			rule.set(profile, rule.Default)
			continue
		}
		if rule.Name == "lifeExpectancy" {
			lifeExpectancyGiven = true
		}

		v, err := checkField(rule, value)
		if err != nil {
			fieldErrs = append(fieldErrs, *err)
			continue
		}
		rule.set(profile, v)
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if !lifeExpectancyGiven && profile.RetirementAge > profile.LifeExpectancy {
		profile.LifeExpectancy = profile.RetirementAge
	}

	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ValidateProfile checks the constraints that span more than one field
func ValidateProfile(p *domain.FinancialProfile) error {
	if p.RetirementAge <= p.CurrentAge {
		return &CrossFieldError{
			Field:   "retirementAge",
			Related: "currentAge",
			Message: fmt.Sprintf("retirement age (%d) must be greater than current age (%d)", p.RetirementAge, p.CurrentAge),
		}
	}
	if p.LifeExpectancy < p.RetirementAge {
		return &CrossFieldError{
			Field:   "lifeExpectancy",
			Related: "retirementAge",
			Message: fmt.Sprintf("life expectancy (%d) must not be less than retirement age (%d)", p.LifeExpectancy, p.RetirementAge),
		}
	}
	return nil
}

func lookup(raw map[string]any, rule FieldRule) (any, bool) {
	if v, ok := raw[rule.Name]; ok && v != nil {
		return v, true
	}
	if rule.Alias != "" {
		if v, ok := raw[rule.Alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func checkField(rule FieldRule, value any) (float64, *FieldError) {
	v, ok := toFloat(value)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{
			Field:      rule.Name,
			Constraint: ConstraintType,
			Message:    "must be a finite number",
		}
	}
	if rule.Integer && v != math.Trunc(v) {
		return 0, &FieldError{
			Field:      rule.Name,
			Constraint: ConstraintInteger,
			Message:    "must be a whole number",
		}
	}
	if v < rule.Min {
		return 0, &FieldError{
			Field:      rule.Name,
			Constraint: ConstraintMin,
			Message:    "must be at least " + formatBound(rule.Min),
		}
	}
	if v > rule.Max {
		return 0, &FieldError{
			Field:      rule.Name,
			Constraint: ConstraintMax,
			Message:    "must be at most " + formatBound(rule.Max),
		}
	}
	return v, nil
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func formatBound(b float64) string {
	return strconv.FormatFloat(b, 'g', -1, 64)
}
