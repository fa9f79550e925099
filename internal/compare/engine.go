package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the unmodified profile
	Templates        []string // Built-in template names to apply
	Transforms       []string // Ad hoc transform specs, e.g. "set_inflation:rate=0.04"
	ProfilePath      string   // Shown in reports
}

// NamedProfile is a profile with a display name
type NamedProfile struct {
	Name    string
	Profile *domain.FinancialProfile
}

// Compare runs the base profile and one variant per template and transform spec.
// Every run shares one Monte Carlo seed so differences come from the profile alone.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base *domain.FinancialProfile,
	options CompareOptions,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	engine := ce.seededEngine()

	baseResult, err := ce.run(ctx, engine, baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult, err := ce.run(ctx, engine, template.Name, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(base, []transform.ScenarioTransform{t})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %s: %w", t.Name(), err)
		}

		altResult, err := ce.run(ctx, engine, spec, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", spec, err)
		}
		altResult.Description = t.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ProfilePath:        options.ProfilePath,
		Seed:               engine.Options.Seed,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareProfiles compares explicit profiles (not using templates)
func (ce *CompareEngine) CompareProfiles(
	ctx context.Context,
	base NamedProfile,
	alternatives []NamedProfile,
) (*ComparisonSet, error) {
	if base.Profile == nil {
		return nil, fmt.Errorf("base profile %s is nil", base.Name)
	}

	engine := ce.seededEngine()

	baseResult, err := ce.run(ctx, engine, base.Name, base.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	results := []ComparisonResult{}
	for _, alt := range alternatives {
		if alt.Profile == nil {
			return nil, fmt.Errorf("alternative profile %s is nil", alt.Name)
		}

		altResult, err := ce.run(ctx, engine, alt.Name, alt.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		Seed:               engine.Options.Seed,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) seededEngine() *calculation.CalculationEngine {
	if ce.CalcEngine.Options.Seed != 0 {
		return ce.CalcEngine
	}
	now := time.Now
	if ce.CalcEngine.Now != nil {
		now = ce.CalcEngine.Now
	}
	return ce.CalcEngine.WithSeed(now().UnixNano())
}

func (ce *CompareEngine) run(ctx context.Context, engine *calculation.CalculationEngine, name string, p *domain.FinancialProfile) (ComparisonResult, error) {
	calc, err := engine.Calculate(ctx, p)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, p, calc), nil
}
