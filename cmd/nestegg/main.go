package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nestegg",
		Short: "Retirement projection and risk analytics",
		Long: `Project a retirement balance and income from a financial profile, measure
portfolio risk, run Monte Carlo simulations and compare what-if scenarios.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(breakEvenCmd())
	rootCmd.AddCommand(docsCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nestegg %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// cliLogger writes human-readable logs to stderr; warnings only unless --debug
func cliLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// addEngineFlags registers the Monte Carlo knobs shared by every command that runs a calculation
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "Monte Carlo seed (0 picks one from the clock)")
	cmd.Flags().Int("simulations", calculation.DefaultSimulations, "Monte Carlo trial count")
	cmd.Flags().Int("workers", 0, "Monte Carlo worker goroutines (0 uses every CPU)")
}

func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	seed, _ := cmd.Flags().GetInt64("seed")
	simulations, _ := cmd.Flags().GetInt("simulations")
	workers, _ := cmd.Flags().GetInt("workers")

	if simulations < 1 || simulations > domain.MaxSimulations {
		return nil, fmt.Errorf("--simulations must be between 1 and %d", domain.MaxSimulations)
	}
	if workers < 0 {
		return nil, fmt.Errorf("--workers must be non-negative")
	}

	engine := calculation.NewCalculationEngineWithOptions(calculation.Options{
		Simulations: simulations,
		Workers:     workers,
		Seed:        seed,
	})
	engine.SetLogger(cliLogger(cmd))
	return engine, nil
}

func loadProfile(path string) (*domain.FinancialProfile, error) {
	return config.NewInputParser().LoadFromFile(path)
}
