package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// Report is the input to every Formatter
type Report struct {
	Profile      *domain.FinancialProfile `json:"profile"`
	Calculations *domain.Calculations     `json:"calculations"`
	GeneratedAt  time.Time                `json:"generatedAt"`
}

// Formatter renders a Report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function into a Formatter
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"console-lite": ConsoleLiteFormatter,
	"csv":          CSVSummarizer{},
	"detailed-csv": DetailedCSVFormatter{},
	"html":         HTMLFormatter{},
	"json":         JSONFormatter{Pretty: true},
}

var aliases = map[string]string{
	"table": "console",
	"text":  "console-lite",
	"plain": "console-lite",
}

// GetFormatterByName returns the named formatter (aliases accepted) or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for n := range aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders the report and writes it to a timestamped file in
// the working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	ts := time.Now()
	if report != nil && !report.GeneratedAt.IsZero() {
		ts = report.GeneratedAt
	}
	filename := fmt.Sprintf("retirement_report_%s.%s", ts.Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}
