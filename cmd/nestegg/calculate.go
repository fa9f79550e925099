package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/output"
)

// reportExtensions maps formatter names to the file extension used by --save
var reportExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"detailed-csv": "csv",
	"html":         "html",
	"json":         "json",
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [profile-file]",
		Short: "Project retirement savings, income and risk for a profile",
		Long: `Run the full calculation for a YAML or JSON profile.

Examples:
  nestegg calculate profile.yaml
  nestegg calculate profile.yaml --format json --seed 42
  nestegg calculate profile.yaml --format html --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			profile, err := loadProfile(args[0])
			if err != nil {
				return err
			}

			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			calc, err := engine.Calculate(cmd.Context(), profile)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}

			report := &output.Report{
				Profile:      profile,
				Calculations: calc,
				GeneratedAt:  engine.Now(),
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(formatter, report, reportExtensions[formatter.Name()])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := formatter.Format(report)
			if err != nil {
				return fmt.Errorf("failed to format report: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, detailed-csv, html)")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	addEngineFlags(cmd)

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile-file]",
		Short: "Validate a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadProfile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid\n", args[0])
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [profile-file]",
		Short: "Write an example profile to start from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "profile.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := config.NewInputParser().SaveToFile(config.ExampleProfile(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example profile written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
