package aws

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRound4(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.08 * 10, 0.8},
		{1.23456, 1.2346},
		{1.23454, 1.2345},
		{32.0, 32.0},
	}
	for _, tc := range cases {
		if got := round4(tc.in); got != tc.want {
			t.Fatalf("round4(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAgeDays(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	if got := ageDays(now.Add(-5*24*time.Hour), now); got != 5 {
		t.Fatalf("expected age 5, got %d", got)
	}
	// Partial days floor down.
	if got := ageDays(now.Add(-47*time.Hour), now); got != 1 {
		t.Fatalf("expected age 1, got %d", got)
	}
	// Clock skew never yields a negative age.
	if got := ageDays(now.Add(2*time.Hour), now); got != 0 {
		t.Fatalf("expected age 0 for future timestamp, got %d", got)
	}
}

func TestAgePtr_NilCreated(t *testing.T) {
	if got := agePtr(nil, time.Now()); got != nil {
		t.Fatalf("expected nil age for unknown creation time, got %d", *got)
	}
}

func TestFinding_MarshalJSON(t *testing.T) {
	age := 5
	f := Finding{
		ResourceType:         ResourceStorageVolume,
		ResourceID:           "vol-001",
		Region:               "us-east-1",
		EstimatedMonthlyCost: 0.8,
		AgeDays:              &age,
		Tags:                 map[string]string{"Name": "data"},
		RiskLevel:            RiskMedium,
		RecommendedAction:    "Delete volume if no longer needed",
		Extra:                map[string]any{"size_gb": 10},
	}

	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m["resource_type"] != "STORAGE_VOLUME" {
		t.Fatalf("expected STORAGE_VOLUME, got %v", m["resource_type"])
	}
	if m["estimated_monthly_cost"] != 0.8 {
		t.Fatalf("expected cost 0.8, got %v", m["estimated_monthly_cost"])
	}
	if m["age_days"] != 5.0 {
		t.Fatalf("expected age_days 5, got %v", m["age_days"])
	}
	// Extras merge into the top level.
	if m["size_gb"] != 10.0 {
		t.Fatalf("expected size_gb 10 at top level, got %v", m["size_gb"])
	}
}

func TestFinding_MarshalJSON_Defaults(t *testing.T) {
	f := Finding{
		ResourceType: ResourceLogGroup,
		ResourceID:   "/aws/lambda/foo",
		Region:       "us-east-1",
	}

	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Missing age serializes as explicit null.
	if v, ok := m["age_days"]; !ok || v != nil {
		t.Fatalf("expected age_days null, got %v (present: %v)", v, ok)
	}
	// Nil tags serialize as an empty object, never null.
	tags, ok := m["tags"].(map[string]any)
	if !ok {
		t.Fatalf("expected tags object, got %T", m["tags"])
	}
	if len(tags) != 0 {
		t.Fatalf("expected empty tags, got %v", tags)
	}
	if m["estimated_monthly_cost"] != 0.0 {
		t.Fatalf("expected cost present and zero, got %v", m["estimated_monthly_cost"])
	}
}

func TestSummarize(t *testing.T) {
	findings := []Finding{
		{EstimatedMonthlyCost: 0.8},
		{EstimatedMonthlyCost: 1.6},
		{EstimatedMonthlyCost: 2.4},
	}

	s := Summarize(findings)
	if s.TotalResources != 3 {
		t.Fatalf("expected 3 resources, got %d", s.TotalResources)
	}
	if s.TotalEstimatedSavings != 4.8 {
		t.Fatalf("expected savings 4.8, got %v", s.TotalEstimatedSavings)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalResources != 0 || s.TotalEstimatedSavings != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummarize_Rounding(t *testing.T) {
	findings := []Finding{
		{EstimatedMonthlyCost: 0.00005},
		{EstimatedMonthlyCost: 0.00005},
	}
	if got := Summarize(findings).TotalEstimatedSavings; got != 0.0001 {
		t.Fatalf("expected 0.0001, got %v", got)
	}
}
