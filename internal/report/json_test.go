package report

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONReporter(t *testing.T) {
	var b strings.Builder
	r := &JSONReporter{Writer: &b}

	if err := r.Generate(sampleData()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(b.String()), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc["$schema"] != "cloudhygiene/v1" {
		t.Fatalf("expected schema cloudhygiene/v1, got %v", doc["$schema"])
	}
	if doc["tool"] != "cloudhygiene" {
		t.Fatalf("expected tool cloudhygiene, got %v", doc["tool"])
	}

	result, ok := doc["result"].(map[string]any)
	if !ok {
		t.Fatalf("missing result object: %v", doc["result"])
	}
	findings, ok := result["findings"].([]any)
	if !ok || len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %v", result["findings"])
	}

	first := findings[0].(map[string]any)
	if first["resource_type"] != "STORAGE_VOLUME" {
		t.Fatalf("unexpected resource_type: %v", first["resource_type"])
	}
	if first["estimated_monthly_cost"] != 0.8 {
		t.Fatalf("unexpected cost: %v", first["estimated_monthly_cost"])
	}
	if first["age_days"] != 45.0 {
		t.Fatalf("unexpected age_days: %v", first["age_days"])
	}

	summary := result["summary"].(map[string]any)
	if summary["total_resources"] != 2.0 {
		t.Fatalf("unexpected total_resources: %v", summary["total_resources"])
	}
	if summary["total_estimated_savings"] != 32.8 {
		t.Fatalf("unexpected total_estimated_savings: %v", summary["total_estimated_savings"])
	}
}
