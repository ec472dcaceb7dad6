package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONReporter writes the full report as indented JSON.
type JSONReporter struct {
	Writer io.Writer
}

type jsonEnvelope struct {
	Schema string `json:"$schema"`
	Data
}

// Generate writes the JSON report.
func (r *JSONReporter) Generate(data Data) error {
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonEnvelope{Schema: "cloudhygiene/v1", Data: data}); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
