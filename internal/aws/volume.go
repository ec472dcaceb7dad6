package aws

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// VolumeAPI is the minimal interface for EBS volume operations.
type VolumeAPI interface {
	DescribeVolumes(ctx context.Context, input *ec2.DescribeVolumesInput, opts ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
}

// VolumeDetector flags EBS volumes in the "available" state, i.e. not
// attached to any instance.
type VolumeDetector struct {
	client VolumeAPI
	region string
	now    func() time.Time
}

// NewVolumeDetector creates a detector for unattached storage volumes.
func NewVolumeDetector(client VolumeAPI, region string) *VolumeDetector {
	return &VolumeDetector{client: client, region: region, now: time.Now}
}

// Type returns the resource class this detector reports.
func (d *VolumeDetector) Type() ResourceType {
	return ResourceStorageVolume
}

// Scan lists all available volumes in the region and emits one finding each.
func (d *VolumeDetector) Scan(ctx context.Context, cfg ScanConfig) ([]Finding, error) {
	volumes, err := d.listAvailableVolumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}

	now := d.now().UTC()
	var findings []Finding
	for _, vol := range volumes {
		sizeGB := int(derefInt32(vol.Size))

		findings = append(findings, Finding{
			ResourceType:         ResourceStorageVolume,
			ResourceID:           deref(vol.VolumeId),
			Region:               d.region,
			EstimatedMonthlyCost: round4(cfg.Prices.VolumeCost(sizeGB)),
			AgeDays:              agePtr(vol.CreateTime, now),
			Tags:                 ec2TagsToMap(vol.Tags),
			RiskLevel:            RiskMedium,
			RecommendedAction:    "Delete volume if no longer needed",
			Extra:                map[string]any{"size_gb": sizeGB},
		})
	}
	return findings, nil
}

func (d *VolumeDetector) listAvailableVolumes(ctx context.Context) ([]ec2types.Volume, error) {
	var volumes []ec2types.Volume
	paginator := ec2.NewDescribeVolumesPaginator(d.client, &ec2.DescribeVolumesInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("status"), Values: []string{"available"}},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		volumes = append(volumes, page.Volumes...)
	}
	return volumes, nil
}

func ec2TagsToMap(tags []ec2types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[deref(t.Key)] = deref(t.Value)
	}
	return m
}
