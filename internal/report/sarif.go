package report

import (
	"encoding/json"
	"fmt"
	"io"

	awstype "github.com/avolkov/cloudhygiene/internal/aws"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// SARIFReporter writes findings as SARIF v2.1.0 for code-scanning backends.
type SARIFReporter struct {
	Writer io.Writer
}

// sarifReport is the top-level SARIF v2.1.0 structure.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifMessage      `json:"shortDescription"`
	DefaultConfig    sarifDefaultLevel `json:"defaultConfiguration"`
}

type sarifDefaultLevel struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string         `json:"ruleId"`
	Level     string         `json:"level"`
	Message   sarifMessage   `json:"message"`
	Locations []sarifLoc     `json:"locations,omitempty"`
	Props     map[string]any `json:"properties,omitempty"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

// Generate writes SARIF v2.1.0 output.
func (r *SARIFReporter) Generate(data Data) error {
	var findings []awstype.Finding
	if data.Result != nil {
		findings = data.Result.Findings
	}

	results := make([]sarifResult, 0, len(findings))
	for _, f := range findings {
		results = append(results, sarifResult{
			RuleID:  string(f.ResourceType),
			Level:   sarifLevel(f.RiskLevel),
			Message: sarifMessage{Text: f.RecommendedAction},
			Locations: []sarifLoc{
				{
					PhysicalLocation: sarifPhysical{
						ArtifactLocation: sarifArtifact{
							URI: fmt.Sprintf("aws://%s/%s/%s", f.Region, f.ResourceType, f.ResourceID),
						},
					},
				},
			},
			Props: map[string]any{
				"estimatedMonthlyCost": f.EstimatedMonthlyCost,
				"tags":                 f.Tags,
				"extra":                f.Extra,
			},
		})
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    data.Tool,
						Version: data.Version,
						Rules:   buildSARIFRules(),
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode SARIF report: %w", err)
	}
	return nil
}

func sarifLevel(r awstype.RiskLevel) string {
	switch r {
	case awstype.RiskHigh:
		return "error"
	case awstype.RiskMedium:
		return "warning"
	default:
		return "note"
	}
}

func buildSARIFRules() []sarifRule {
	return []sarifRule{
		{ID: string(awstype.ResourceStorageVolume), ShortDescription: sarifMessage{Text: "Unattached storage volume"}, DefaultConfig: sarifDefaultLevel{Level: "warning"}},
		{ID: string(awstype.ResourceStorageSnapshot), ShortDescription: sarifMessage{Text: "Stale storage snapshot"}, DefaultConfig: sarifDefaultLevel{Level: "note"}},
		{ID: string(awstype.ResourceFloatingIP), ShortDescription: sarifMessage{Text: "Unassociated Elastic IP"}, DefaultConfig: sarifDefaultLevel{Level: "warning"}},
		{ID: string(awstype.ResourceNATGateway), ShortDescription: sarifMessage{Text: "Idle NAT Gateway"}, DefaultConfig: sarifDefaultLevel{Level: "error"}},
		{ID: string(awstype.ResourceLoadBalancer), ShortDescription: sarifMessage{Text: "Idle load balancer"}, DefaultConfig: sarifDefaultLevel{Level: "warning"}},
		{ID: string(awstype.ResourceLogGroup), ShortDescription: sarifMessage{Text: "Empty log group"}, DefaultConfig: sarifDefaultLevel{Level: "note"}},
	}
}
