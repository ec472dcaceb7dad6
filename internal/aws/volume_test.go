package aws

import (
	"context"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/avolkov/cloudhygiene/internal/pricing"
)

type mockVolumeClient struct {
	volumes  []ec2types.Volume
	captured *ec2.DescribeVolumesInput
}

func (m *mockVolumeClient) DescribeVolumes(_ context.Context, input *ec2.DescribeVolumesInput, _ ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	m.captured = input
	return &ec2.DescribeVolumesOutput{Volumes: m.volumes}, nil
}

func testPrices() pricing.Table {
	return pricing.Table{
		VolumeGBMonth:     0.08,
		SnapshotGBMonth:   0.05,
		EIPMonth:          3.5,
		NATGatewayMonth:   32.0,
		LoadBalancerMonth: 18.0,
	}
}

func TestVolumeDetector_FlagsAllAvailable(t *testing.T) {
	created := time.Now().UTC().Add(-10 * 24 * time.Hour)
	mock := &mockVolumeClient{
		volumes: []ec2types.Volume{
			{VolumeId: awssdk.String("vol-010"), Size: awssdk.Int32(10), CreateTime: &created},
			{VolumeId: awssdk.String("vol-020"), Size: awssdk.Int32(20), CreateTime: &created},
			{VolumeId: awssdk.String("vol-030"), Size: awssdk.Int32(30), CreateTime: &created,
				Tags: []ec2types.Tag{{Key: awssdk.String("Name"), Value: awssdk.String("data")}}},
		},
	}

	d := NewVolumeDetector(mock, "us-east-1")
	findings, err := d.Scan(context.Background(), ScanConfig{Prices: testPrices()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(findings))
	}

	wantCosts := []float64{0.8, 1.6, 2.4}
	for i, f := range findings {
		if f.ResourceType != ResourceStorageVolume {
			t.Fatalf("expected STORAGE_VOLUME, got %s", f.ResourceType)
		}
		if f.EstimatedMonthlyCost != wantCosts[i] {
			t.Fatalf("finding %d: expected cost %v, got %v", i, wantCosts[i], f.EstimatedMonthlyCost)
		}
		if f.RiskLevel != RiskMedium {
			t.Fatalf("expected MEDIUM risk, got %s", f.RiskLevel)
		}
		if f.AgeDays == nil || *f.AgeDays != 10 {
			t.Fatalf("expected age 10, got %v", f.AgeDays)
		}
		if f.Region != "us-east-1" {
			t.Fatalf("expected region us-east-1, got %s", f.Region)
		}
	}

	if findings[2].Tags["Name"] != "data" {
		t.Fatalf("expected Name tag, got %v", findings[2].Tags)
	}
	if findings[0].Extra["size_gb"] != 10 {
		t.Fatalf("expected size_gb 10, got %v", findings[0].Extra["size_gb"])
	}
}

func TestVolumeDetector_FiltersByAvailableState(t *testing.T) {
	mock := &mockVolumeClient{}
	d := NewVolumeDetector(mock, "us-east-1")

	if _, err := d.Scan(context.Background(), ScanConfig{Prices: testPrices()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.captured == nil || len(mock.captured.Filters) != 1 {
		t.Fatal("expected a status filter on the listing call")
	}
	f := mock.captured.Filters[0]
	if *f.Name != "status" || len(f.Values) != 1 || f.Values[0] != "available" {
		t.Fatalf("expected status=available filter, got %s=%v", *f.Name, f.Values)
	}
}

func TestVolumeDetector_UnknownCreateTime(t *testing.T) {
	mock := &mockVolumeClient{
		volumes: []ec2types.Volume{
			{VolumeId: awssdk.String("vol-044"), Size: awssdk.Int32(5)},
		},
	}

	d := NewVolumeDetector(mock, "eu-west-1")
	findings, err := d.Scan(context.Background(), ScanConfig{Prices: testPrices()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].AgeDays != nil {
		t.Fatalf("expected absent age for unknown creation time, got %d", *findings[0].AgeDays)
	}
}

func TestVolumeDetector_Type(t *testing.T) {
	if (&VolumeDetector{}).Type() != ResourceStorageVolume {
		t.Fatal("expected STORAGE_VOLUME type")
	}
}
