package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/compare"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [profile-file]",
		Short: "Compare a profile against what-if scenarios",
		Long: `Compare a base profile against alternatives built from templates or transforms.
Every scenario runs with the same Monte Carlo seed.

Examples:
  nestegg compare profile.yaml --with retire_later_2yr,save_more_10pct
  nestegg compare profile.yaml --transform set_inflation:rate=0.04 --format csv
  nestegg compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("profile file required for comparison (use --list-templates to see available templates)")
			}

			baseName, _ := cmd.Flags().GetString("base")
			templatesStr, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			format, _ := cmd.Flags().GetString("format")

			templates := transform.ParseTemplateList(templatesStr)
			if len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required to describe at least one alternative")
			}

			profile, err := loadProfile(args[0])
			if err != nil {
				return err
			}

			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), profile, compare.CompareOptions{
				BaseScenarioName: baseName,
				Templates:        templates,
				Transforms:       transforms,
				ProfilePath:      args[0],
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet)
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(compSet)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to format comparison: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("base", "base", "Label for the unmodified profile")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec such as set_withdrawal_rate:rate=0.035 (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	addEngineFlags(cmd)

	return cmd
}
