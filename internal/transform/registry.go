package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("set_life_expectancy", createSetLifeExpectancy)
	registry.Register("adjust_contribution", createAdjustContribution)
	registry.Register("set_contribution", createSetMonthlyContribution)
	registry.Register("set_withdrawal_rate", createSetWithdrawalRate)
	registry.Register("set_risk_tolerance", createSetRiskTolerance)
	registry.Register("set_inflation", createSetInflation)
	registry.Register("adjust_inflation", createAdjustInflation)
	registry.Register("set_expected_return", createSetExpectedReturn)
	registry.Register("set_social_security", createSetSocialSecurity)
	registry.Register("part_time_work", createPartTimeWork)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "postpone_retirement:years=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func intParam(transform, key string, params map[string]string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// decimalParam accepts plain decimal notation only. NaN, Inf and hex floats
// are rejected here because a NaN passes every range check in Validate.
func decimalParam(transform, key string, params map[string]string) (float64, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d.InexactFloat64(), nil
}

// Factory functions for each transform

func createPostponeRetirement(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam("postpone_retirement", "years", params)
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (ScenarioTransform, error) {
	age, err := intParam("set_retirement_age", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createSetLifeExpectancy(params map[string]string) (ScenarioTransform, error) {
	age, err := intParam("set_life_expectancy", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetLifeExpectancy{Age: age}, nil
}

func createAdjustContribution(params map[string]string) (ScenarioTransform, error) {
	pct, err := decimalParam("adjust_contribution", "percent", params)
	if err != nil {
		return nil, err
	}
	return &AdjustContribution{Percent: pct}, nil
}

func createSetMonthlyContribution(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam("set_contribution", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetMonthlyContribution{Amount: amount}, nil
}

func createSetWithdrawalRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_withdrawal_rate", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetWithdrawalRate{Rate: rate}, nil
}

func createSetRiskTolerance(params map[string]string) (ScenarioTransform, error) {
	s, ok := params["tolerance"]
	if !ok {
		return nil, fmt.Errorf("set_risk_tolerance requires 'tolerance' parameter")
	}
	for level, name := range toleranceNames {
		if strings.EqualFold(s, name) {
			return &SetRiskTolerance{Tolerance: level}, nil
		}
	}
	level, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid tolerance value %q: use 1-3 or conservative/moderate/aggressive", s)
	}
	return &SetRiskTolerance{Tolerance: level}, nil
}

func createSetInflation(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_inflation", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetInflation{Rate: rate}, nil
}

func createAdjustInflation(params map[string]string) (ScenarioTransform, error) {
	delta, err := decimalParam("adjust_inflation", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustInflation{Delta: delta}, nil
}

func createSetExpectedReturn(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_expected_return", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetExpectedReturn{Rate: rate}, nil
}

func createSetSocialSecurity(params map[string]string) (ScenarioTransform, error) {
	annual, err := decimalParam("set_social_security", "annual", params)
	if err != nil {
		return nil, err
	}
	return &SetSocialSecurity{Annual: annual}, nil
}

func createPartTimeWork(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam("part_time_work", "years", params)
	if err != nil {
		return nil, err
	}
	income, err := decimalParam("part_time_work", "income", params)
	if err != nil {
		return nil, err
	}
	return &AddPartTimeWork{Years: years, Income: income}, nil
}
