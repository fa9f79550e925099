// Package docs describes the calculation API for the GET endpoint and the
// docs command. Field bounds come straight from the validation schema.
package docs

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/config"
)

// Endpoint documents one HTTP route
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Field documents one profile field
type Field struct {
	Name        string   `json:"name"`
	Alias       string   `json:"alias,omitempty"`
	Type        string   `json:"type"`
	Min         float64  `json:"min"`
	Max         float64  `json:"max"`
	Default     *float64 `json:"default,omitempty"`
	Description string   `json:"description"`
}

// ErrorResponse documents an error status
type ErrorResponse struct {
	Status      int    `json:"status"`
	Description string `json:"description"`
}

// Documentation is the complete API description
type Documentation struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Endpoints      []Endpoint      `json:"endpoints"`
	RequiredFields []Field         `json:"requiredFields"`
	OptionalFields []Field         `json:"optionalFields"`
	Errors         []ErrorResponse `json:"errors"`
	Example        map[string]any  `json:"example"`
}

// Build assembles the documentation from the current schema
func Build() Documentation {
	d := Documentation{
		Name:        "Retirement Calculation API",
		Description: "Projects a retirement balance and income from a financial profile and reports risk metrics, a Monte Carlo distribution, sensitivity tables and insights.",
		Endpoints: []Endpoint{
			{"POST", "/api/retirement/calculate", "Run a calculation for the JSON profile in the request body. Optional ?seed= fixes the Monte Carlo seed."},
			{"GET", "/api/retirement/calculate", "This documentation"},
			{"GET", "/healthz", "Liveness check"},
		},
		Errors: []ErrorResponse{
			{400, "Invalid JSON, schema violations (details lists each field) or contradictory fields"},
			{429, "Too many requests from one client"},
			{500, "Internal calculation error"},
		},
		Example: config.ProfileToMap(config.ExampleProfile()),
	}

	for _, r := range config.Schema() {
		f := Field{
			Name:        r.Name,
			Alias:       r.Alias,
			Type:        "number",
			Min:         r.Min,
			Max:         r.Max,
			Description: r.Description,
		}
		if r.Integer {
			f.Type = "integer"
		}
		if r.Default != 0 {
			def := r.Default
			f.Default = &def
		}
		if r.Required {
			d.RequiredFields = append(d.RequiredFields, f)
		} else {
			d.OptionalFields = append(d.OptionalFields, f)
		}
	}
	return d
}

// Bounds renders the accepted range, e.g. "18 - 100"
func (f Field) Bounds() string {
	return trimFloat(f.Min) + " - " + trimFloat(f.Max)
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}

// Markdown renders the documentation for terminal display
func (d Documentation) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n%s\n\n", d.Name, d.Description)

	b.WriteString("## Endpoints\n\n| Method | Path | Description |\n|---|---|---|\n")
	for _, e := range d.Endpoints {
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", e.Method, e.Path, e.Description)
	}

	writeFields := func(title string, fields []Field) {
		fmt.Fprintf(&b, "\n## %s\n\n| Field | Type | Range | Description |\n|---|---|---|---|\n", title)
		for _, f := range fields {
			desc := f.Description
			if f.Alias != "" {
				desc += fmt.Sprintf(" (alias `%s`)", f.Alias)
			}
			if f.Default != nil {
				desc += fmt.Sprintf(" (default %s)", trimFloat(*f.Default))
			}
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", f.Name, f.Type, f.Bounds(), desc)
		}
	}
	writeFields("Required fields", d.RequiredFields)
	writeFields("Optional fields", d.OptionalFields)

	b.WriteString("\n## Errors\n\n")
	for _, e := range d.Errors {
		fmt.Fprintf(&b, "- **%d**: %s\n", e.Status, e.Description)
	}
	return b.String()
}
