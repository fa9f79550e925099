package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"whole": FormatWholeCurrency,
	"pct":   FormatPercentage,
	"rate":  FormatRate,
	"ratio": func(v float64) string { return fmt.Sprintf("%.3f", v) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Calculations == nil {
		return nil, fmt.Errorf("report has no calculations")
	}
	var buf bytes.Buffer
	data := struct {
		*Report
		Assumptions []string
	}{report, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
