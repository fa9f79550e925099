package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil {
		return "", fmt.Errorf("nothing to format")
	}

	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}

	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}

	return string(data) + "\n", nil
}
