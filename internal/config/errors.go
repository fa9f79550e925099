package config

import (
	"fmt"
	"strings"
)

// Constraint names reported in FieldError.Constraint
const (
	ConstraintRequired = "required"
	ConstraintType     = "type"
	ConstraintInteger  = "integer"
	ConstraintMin      = "min"
	ConstraintMax      = "max"
)

// FieldError describes a single schema violation
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError collects every schema violation found in a profile
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return "validation failed: " + e.Fields[0].Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("validation failed (%d fields): %s", len(e.Fields), strings.Join(parts, "; "))
}

// CrossFieldError is returned when individually valid fields contradict each other
type CrossFieldError struct {
	Field   string
	Related string
	Message string
}

func (e *CrossFieldError) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Field, e.Related, e.Message)
}
