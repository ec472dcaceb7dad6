package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// EIPAPI is the minimal interface for Elastic IP operations.
type EIPAPI interface {
	DescribeAddresses(ctx context.Context, input *ec2.DescribeAddressesInput, opts ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
}

// EIPDetector flags Elastic IPs with no current association record.
type EIPDetector struct {
	client EIPAPI
	region string
}

// NewEIPDetector creates a detector for unassociated floating IPs.
func NewEIPDetector(client EIPAPI, region string) *EIPDetector {
	return &EIPDetector{client: client, region: region}
}

// Type returns the resource class this detector reports.
func (d *EIPDetector) Type() ResourceType {
	return ResourceFloatingIP
}

// Scan lists all addresses in the region and flags the unassociated ones.
func (d *EIPDetector) Scan(ctx context.Context, cfg ScanConfig) ([]Finding, error) {
	out, err := d.client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("describe addresses: %w", err)
	}

	var findings []Finding
	for _, addr := range out.Addresses {
		if addr.AssociationId != nil {
			continue
		}

		// EIPs allocated in EC2-Classic have no allocation ID.
		id := deref(addr.AllocationId)
		if id == "" {
			id = deref(addr.PublicIp)
		}

		findings = append(findings, Finding{
			ResourceType:         ResourceFloatingIP,
			ResourceID:           id,
			Region:               d.region,
			EstimatedMonthlyCost: round4(cfg.Prices.EIPCost()),
			Tags:                 ec2TagsToMap(addr.Tags),
			RiskLevel:            RiskMedium,
			RecommendedAction:    "Release unused Elastic IP",
		})
	}
	return findings, nil
}
