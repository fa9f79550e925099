package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "retire_later_2yr",
		Description: "Work two more years before retiring",
		Transforms:  []ScenarioTransform{&PostponeRetirement{Years: 2}},
	})

	registry.Register(Template{
		Name:        "retire_earlier_2yr",
		Description: "Retire two years earlier",
		Transforms:  []ScenarioTransform{&PostponeRetirement{Years: -2}},
	})

	registry.Register(Template{
		Name:        "save_more_10pct",
		Description: "Increase the monthly contribution by 10%",
		Transforms:  []ScenarioTransform{&AdjustContribution{Percent: 0.10}},
	})

	registry.Register(Template{
		Name:        "conservative",
		Description: "Conservative risk tolerance (-1.5% adjusted return)",
		Transforms:  []ScenarioTransform{&SetRiskTolerance{Tolerance: domain.RiskConservative}},
	})

	registry.Register(Template{
		Name:        "aggressive",
		Description: "Aggressive risk tolerance (+1% adjusted return)",
		Transforms:  []ScenarioTransform{&SetRiskTolerance{Tolerance: domain.RiskAggressive}},
	})

	registry.Register(Template{
		Name:        "lower_withdrawal",
		Description: "Withdraw 3.5% instead of the configured rate",
		Transforms:  []ScenarioTransform{&SetWithdrawalRate{Rate: 0.035}},
	})

	registry.Register(Template{
		Name:        "higher_inflation",
		Description: "Inflation one point higher than assumed",
		Transforms:  []ScenarioTransform{&AdjustInflation{Delta: 0.01}},
	})

	registry.Register(Template{
		Name:        "retire_later_save_more",
		Description: "Work two more years and save 10% more",
		Transforms: []ScenarioTransform{
			&PostponeRetirement{Years: 2},
			&AdjustContribution{Percent: 0.10},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base *domain.FinancialProfile, template Template) (*domain.FinancialProfile, error) {
	if len(template.Transforms) == 0 {
		return base.Clone(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Retirement Timing", "Saving", "Assumptions", "Combination Strategies"}

	for _, name := range registry.List() {
		template := registry.templates[name]
		var category string
		switch {
		case len(template.Transforms) > 1:
			category = "Combination Strategies"
		case strings.HasPrefix(name, "retire_"):
			category = "Retirement Timing"
		case strings.HasPrefix(name, "save_"):
			category = "Saving"
		default:
			category = "Assumptions"
		}
		categories[category] = append(categories[category], template)
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-26s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  nestegg compare profile.yaml --with retire_later_2yr,save_more_10pct\n")
	sb.WriteString("  nestegg compare profile.yaml --with conservative,aggressive\n")

	return sb.String()
}
