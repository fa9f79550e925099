package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// ScenarioTransform defines the interface for all profile transformations.
// Transforms are composable what-if edits used by scenario comparison and
// the break-even solver.
type ScenarioTransform interface {
	// Apply returns a modified copy of base; base is never mutated.
	Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error)

	// Name returns a short identifier for this transform (e.g., "postpone_retirement").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.FinancialProfile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Transforms are applied in order, with each transform receiving the output of the previous one.
// The final profile is re-validated against the input schema so a variant can
// never reach the engine with out-of-range fields.
func ApplyTransforms(base *domain.FinancialProfile, transforms []ScenarioTransform) (*domain.FinancialProfile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	if len(transforms) == 0 {
		return base.Clone(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	validated, err := config.ParseProfile(config.ProfileToMap(current))
	if err != nil {
		return nil, fmt.Errorf("transformed profile is invalid: %w", err)
	}
	return validated, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requireBase(name string, base *domain.FinancialProfile) error {
	if base == nil {
		return NewTransformError(name, "validate", "base profile cannot be nil", nil)
	}
	return nil
}
