package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [profile-file]",
		Short: "Find the contribution or retirement age that meets a goal",
		Long: `Solve for the smallest monthly contribution or the earliest retirement age at
which the profile meets its goal.

Goals:
  replacement      net retirement income covers the income replacement goal (default)
  target_income    net monthly income reaches --target-income
  target_balance   balance at retirement reaches --target-balance

Examples:
  nestegg break-even profile.yaml
  nestegg break-even profile.yaml --target retirement_age
  nestegg break-even profile.yaml --target all --goal target_balance --target-balance 2000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetName, _ := cmd.Flags().GetString("target")
			goalName, _ := cmd.Flags().GetString("goal")
			format, _ := cmd.Flags().GetString("format")

			target, err := breakeven.ParseTarget(targetName)
			if err != nil {
				return err
			}
			goal, err := breakeven.ParseGoal(goalName)
			if err != nil {
				return err
			}
			format = strings.ToLower(format)
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}

			constraints := constraintsFromFlags(cmd)
			if err := constraints.Validate(); err != nil {
				return err
			}

			profile, err := loadProfile(args[0])
			if err != nil {
				return err
			}

			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(engine)

			if target == breakeven.OptimizeAll {
				result, err := solver.OptimizeAllTargets(cmd.Context(), profile, constraints, goal)
				if err != nil {
					return err
				}
				if format == "json" {
					out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
					if err != nil {
						return err
					}
					fmt.Fprint(cmd.OutOrStdout(), out)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
				return nil
			}

			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				Base:        profile,
				Target:      target,
				Goal:        goal,
				Constraints: constraints,
			})
			if err != nil {
				return err
			}
			if format == "json" {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}

	cmd.Flags().String("target", string(breakeven.OptimizeContribution), "Lever to solve for (contribution, retirement_age, all)")
	cmd.Flags().String("goal", string(breakeven.GoalReplacement), "Goal to meet (replacement, target_income, target_balance)")
	cmd.Flags().Float64("target-income", 0, "Net monthly income for the target_income goal")
	cmd.Flags().Float64("target-balance", 0, "Balance at retirement for the target_balance goal")
	cmd.Flags().Float64("min-contribution", 0, "Lowest monthly contribution to consider")
	cmd.Flags().Float64("max-contribution", 20000, "Highest monthly contribution to consider")
	cmd.Flags().Int("min-age", 0, "Earliest retirement age to consider")
	cmd.Flags().Int("max-age", 0, "Latest retirement age to consider")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	addEngineFlags(cmd)

	return cmd
}

// constraintsFromFlags starts from the defaults and applies only the flags the user set
func constraintsFromFlags(cmd *cobra.Command) breakeven.Constraints {
	c := breakeven.DefaultConstraints()
	flags := cmd.Flags()

	decimalFlag := func(name string) *decimal.Decimal {
		v, _ := flags.GetFloat64(name)
		d := decimal.NewFromFloat(v)
		return &d
	}
	intFlag := func(name string) *int {
		v, _ := flags.GetInt(name)
		return &v
	}

	if flags.Changed("min-contribution") {
		c.MinContribution = decimalFlag("min-contribution")
	}
	if flags.Changed("max-contribution") {
		c.MaxContribution = decimalFlag("max-contribution")
	}
	if flags.Changed("min-age") {
		c.MinRetirementAge = intFlag("min-age")
	}
	if flags.Changed("max-age") {
		c.MaxRetirementAge = intFlag("max-age")
	}
	if flags.Changed("target-income") {
		c.TargetMonthlyIncome = decimalFlag("target-income")
	}
	if flags.Changed("target-balance") {
		c.TargetBalance = decimalFlag("target-balance")
	}
	return c
}
