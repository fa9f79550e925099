package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/config"
)

// run executes a fresh root command and returns what it wrote to stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeExampleProfile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := config.NewInputParser().SaveToFile(config.ExampleProfile(), path); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "nestegg" {
		t.Errorf("Expected root command use to be 'nestegg', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected root command to have short and long descriptions")
	}

	expectedCommands := []string{
		"serve",
		"calculate",
		"validate",
		"init",
		"compare",
		"break-even",
		"docs",
		"version",
	}
	for _, name := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command %s to be registered", name)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("Expected no error for help, got %v", err)
	}
	if !strings.Contains(out, "break-even") {
		t.Errorf("Expected help to list subcommands, got %s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "nestegg dev (commit none, built unknown)") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

func TestInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")

	out, err := run(t, "init", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Example profile written to") {
		t.Errorf("Unexpected init output: %s", out)
	}

	if _, err := run(t, "init", path); err == nil {
		t.Error("Expected init to refuse to overwrite an existing file")
	}
	if _, err := run(t, "init", path, "--force"); err != nil {
		t.Errorf("Expected --force to overwrite: %v", err)
	}

	out, err = run(t, "validate", path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("Unexpected validate output: %s", out)
	}
}

func TestValidate_InvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("currentAge: 10\nretirementAge: 65\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "validate", path); err == nil {
		t.Error("Expected validation error for incomplete profile")
	}
}

func TestCalculate_JSON(t *testing.T) {
	path := writeExampleProfile(t)

	out, err := run(t, "calculate", path, "--format", "json", "--seed", "42", "--simulations", "50")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	calc, ok := decoded["calculations"].(map[string]any)
	if !ok {
		t.Fatal("Expected calculations object")
	}
	mc, ok := calc["monteCarlo"].(map[string]any)
	if !ok {
		t.Fatal("Expected monteCarlo object")
	}
	if mc["seed"] != float64(42) {
		t.Errorf("seed = %v, want 42", mc["seed"])
	}
}

func TestCalculate_Errors(t *testing.T) {
	path := writeExampleProfile(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"calculate", path, "--format", "pdf"}, "unknown output format"},
		{"too many simulations", []string{"calculate", path, "--simulations", "1000001"}, "--simulations must be between"},
		{"missing file", []string{"calculate", filepath.Join(t.TempDir(), "nope.yaml")}, "failed to read file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestCompare_ListTemplates(t *testing.T) {
	out, err := run(t, "compare", "--list-templates")
	if err != nil {
		t.Fatalf("compare --list-templates failed: %v", err)
	}
	if !strings.Contains(out, "retire_later_2yr") {
		t.Errorf("Expected template list, got %s", out)
	}
}

func TestCompare_CSV(t *testing.T) {
	path := writeExampleProfile(t)

	out, err := run(t, "compare", path,
		"--with", "retire_later_2yr",
		"--transform", "set_withdrawal_rate:rate=0.035",
		"--format", "csv", "--seed", "7", "--simulations", "50")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header, base and two alternatives, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "base,base,") {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "retire_later_2yr,alternative,") {
		t.Errorf("Unexpected template row: %s", lines[2])
	}
	if !strings.HasPrefix(lines[3], "set_withdrawal_rate:rate=0.035,alternative,") {
		t.Errorf("Unexpected transform row: %s", lines[3])
	}
}

func TestCompare_Errors(t *testing.T) {
	path := writeExampleProfile(t)

	if _, err := run(t, "compare"); err == nil {
		t.Error("Expected error without a profile")
	}
	if _, err := run(t, "compare", path); err == nil {
		t.Error("Expected error without alternatives")
	}
	if _, err := run(t, "compare", path, "--with", "no_such_template", "--simulations", "10"); err == nil {
		t.Error("Expected error for unknown template")
	}
	if _, err := run(t, "compare", path, "--with", "conservative", "--format", "xml", "--simulations", "10"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestBreakEven_Contribution(t *testing.T) {
	path := writeExampleProfile(t)

	out, err := run(t, "break-even", path, "--seed", "42", "--simulations", "50")
	if err != nil {
		t.Fatalf("break-even failed: %v", err)
	}
	for _, want := range []string{"BREAK-EVEN ANALYSIS", "Monthly Contribution:", "✓ Goal met"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestBreakEven_AllJSON(t *testing.T) {
	path := writeExampleProfile(t)

	out, err := run(t, "break-even", path,
		"--target", "all",
		"--goal", "target_balance", "--target-balance", "2000000",
		"--format", "json", "--seed", "42", "--simulations", "50")
	if err != nil {
		t.Fatalf("break-even failed: %v", err)
	}

	var decoded struct {
		Goal    string           `json:"goal"`
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if decoded.Goal != "target_balance" {
		t.Errorf("goal = %s", decoded.Goal)
	}
	if len(decoded.Results) != 2 {
		t.Errorf("Expected two lever results, got %d", len(decoded.Results))
	}
}

func TestBreakEven_Errors(t *testing.T) {
	path := writeExampleProfile(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown target", []string{"break-even", path, "--target", "savings_rate"}, "unknown target"},
		{"unknown goal", []string{"break-even", path, "--goal", "taxes"}, "unknown goal"},
		{"missing goal value", []string{"break-even", path, "--goal", "target_income", "--simulations", "10"}, "target_income"},
		{"inverted ages", []string{"break-even", path, "--min-age", "70", "--max-age", "60"}, "min retirement age"},
		{"unknown format", []string{"break-even", path, "--format", "csv"}, "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestDocsCommand(t *testing.T) {
	out, err := run(t, "docs", "--format", "markdown")
	if err != nil {
		t.Fatalf("docs failed: %v", err)
	}
	if !strings.Contains(out, "/api/retirement/calculate") {
		t.Errorf("Expected endpoint in markdown, got %s", out)
	}

	out, err = run(t, "docs", "--style", "notty")
	if err != nil {
		t.Fatalf("docs render failed: %v", err)
	}
	if !strings.Contains(out, "Retirement Calculation API") {
		t.Errorf("Expected rendered title, got %s", out)
	}

	out, err = run(t, "docs", "--format", "json")
	if err != nil {
		t.Fatalf("docs json failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
}

func TestServerLogger(t *testing.T) {
	cfg := config.DefaultServerConfig()

	logger, err := serverLogger(&cfg)
	if err != nil {
		t.Fatalf("serverLogger failed: %v", err)
	}
	if logger.GetLevel().String() != "info" {
		t.Errorf("level = %s, want info", logger.GetLevel())
	}

	cfg.LogFormat = "xml"
	if _, err := serverLogger(&cfg); err == nil {
		t.Error("Expected error for unknown log format")
	}

	cfg.LogFormat = "text"
	cfg.LogLevel = "loud"
	if _, err := serverLogger(&cfg); err == nil {
		t.Error("Expected error for invalid log level")
	}
}
