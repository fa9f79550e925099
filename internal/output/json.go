package output

import "encoding/json"

// JSONFormatter renders the report as JSON
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
