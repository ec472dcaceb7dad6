package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// SnapshotAPI is the minimal interface for EBS snapshot operations.
type SnapshotAPI interface {
	DescribeSnapshots(ctx context.Context, input *ec2.DescribeSnapshotsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
}

// SnapshotDetector flags self-owned snapshots older than the configured
// minimum age. Snapshots with no known creation time are skipped, never
// flagged with guessed values.
type SnapshotDetector struct {
	client SnapshotAPI
	region string
	now    func() time.Time
}

// NewSnapshotDetector creates a detector for stale storage snapshots.
func NewSnapshotDetector(client SnapshotAPI, region string) *SnapshotDetector {
	return &SnapshotDetector{client: client, region: region, now: time.Now}
}

// Type returns the resource class this detector reports.
func (d *SnapshotDetector) Type() ResourceType {
	return ResourceStorageSnapshot
}

// Scan lists all self-owned snapshots and flags those at or past the age
// threshold.
func (d *SnapshotDetector) Scan(ctx context.Context, cfg ScanConfig) ([]Finding, error) {
	snapshots, err := d.listOwnedSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	now := d.now().UTC()
	var findings []Finding
	for _, snap := range snapshots {
		if snap.StartTime == nil {
			continue
		}
		age := ageDays(*snap.StartTime, now)
		if age < cfg.SnapshotMinAgeDays {
			continue
		}

		sizeGB := int(derefInt32(snap.VolumeSize))

		findings = append(findings, Finding{
			ResourceType:         ResourceStorageSnapshot,
			ResourceID:           deref(snap.SnapshotId),
			Region:               d.region,
			EstimatedMonthlyCost: round4(cfg.Prices.SnapshotCost(sizeGB)),
			AgeDays:              &age,
			Tags:                 ec2TagsToMap(snap.Tags),
			RiskLevel:            RiskLow,
			RecommendedAction:    "Review and delete stale snapshot if no longer required",
			Extra:                map[string]any{"size_gb": sizeGB},
		})
	}
	return findings, nil
}

func (d *SnapshotDetector) listOwnedSnapshots(ctx context.Context) ([]ec2types.Snapshot, error) {
	var snapshots []ec2types.Snapshot
	paginator := ec2.NewDescribeSnapshotsPaginator(d.client, &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, page.Snapshots...)
	}
	return snapshots, nil
}
