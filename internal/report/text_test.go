package report

import (
	"strings"
	"testing"
	"time"

	awstype "github.com/avolkov/cloudhygiene/internal/aws"
)

func intPtr(v int) *int { return &v }

func sampleData() Data {
	findings := []awstype.Finding{
		{
			ResourceType:         awstype.ResourceStorageVolume,
			ResourceID:           "vol-0abc",
			Region:               "us-east-1",
			EstimatedMonthlyCost: 0.8,
			AgeDays:              intPtr(45),
			Tags:                 map[string]string{"Name": "old-data"},
			RiskLevel:            awstype.RiskMedium,
			RecommendedAction:    "Delete volume if no longer needed",
		},
		{
			ResourceType:         awstype.ResourceNATGateway,
			ResourceID:           "nat-0def",
			Region:               "eu-west-1",
			EstimatedMonthlyCost: 32.0,
			Tags:                 map[string]string{},
			RiskLevel:            awstype.RiskHigh,
			RecommendedAction:    "Remove or downsize idle NAT Gateway",
		},
	}

	return Data{
		Tool:      "cloudhygiene",
		Version:   "test",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Target:    Target{Type: "aws-account", URIHash: "sha256:deadbeef"},
		Config: ScanSettings{
			Regions:            []string{"us-east-1", "eu-west-1"},
			SnapshotMinAgeDays: 3,
			LookbackDays:       7,
		},
		Result: &awstype.ScanResult{
			Findings: findings,
			Summary:  awstype.Summarize(findings),
			Errors:   []string{"eu-west-1/LOG_GROUP: access denied"},
		},
	}
}

func TestTextReporter(t *testing.T) {
	var b strings.Builder
	r := &TextReporter{Writer: &b}

	if err := r.Generate(sampleData()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := b.String()
	for _, want := range []string{
		"cloudhygiene test",
		"Regions: us-east-1, eu-west-1",
		"[MEDIUM] STORAGE_VOLUME vol-0abc (us-east-1, 45d old) $0.80/month",
		"Delete volume if no longer needed",
		"[HIGH] NAT_GATEWAY nat-0def (eu-west-1) $32.00/month",
		"Summary: 2 resources, estimated savings $32.80/month",
		"error: eu-west-1/LOG_GROUP: access denied",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextReporterNoFindings(t *testing.T) {
	var b strings.Builder
	r := &TextReporter{Writer: &b}

	data := sampleData()
	data.Result = &awstype.ScanResult{Findings: []awstype.Finding{}}

	if err := r.Generate(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), "No hygiene findings.") {
		t.Fatalf("expected empty-scan message, got:\n%s", b.String())
	}
	if !strings.Contains(b.String(), "Summary: 0 resources") {
		t.Fatalf("expected zero summary, got:\n%s", b.String())
	}
}

func TestTextReporterNilResult(t *testing.T) {
	var b strings.Builder
	r := &TextReporter{Writer: &b}

	data := sampleData()
	data.Result = nil

	if err := r.Generate(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), "No hygiene findings.") {
		t.Fatalf("expected empty-scan message, got:\n%s", b.String())
	}
}
