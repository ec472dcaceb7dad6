package aws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// NATGatewayAPI is the minimal interface for NAT Gateway operations.
type NATGatewayAPI interface {
	DescribeNatGateways(ctx context.Context, input *ec2.DescribeNatGatewaysInput, opts ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
}

// NATGatewayDetector flags NAT gateways with zero outbound bytes over the
// trailing traffic window.
type NATGatewayDetector struct {
	client NATGatewayAPI
	oracle *TrafficOracle
	region string
}

// NewNATGatewayDetector creates a detector for idle NAT gateways.
func NewNATGatewayDetector(client NATGatewayAPI, oracle *TrafficOracle, region string) *NATGatewayDetector {
	return &NATGatewayDetector{client: client, oracle: oracle, region: region}
}

// Type returns the resource class this detector reports.
func (d *NATGatewayDetector) Type() ResourceType {
	return ResourceNATGateway
}

// Scan lists NAT gateways and consults the traffic oracle per gateway. When
// the oracle cannot answer, the gateway is skipped rather than flagged.
func (d *NATGatewayDetector) Scan(ctx context.Context, cfg ScanConfig) ([]Finding, error) {
	gateways, err := d.listNATGateways(ctx)
	if err != nil {
		return nil, fmt.Errorf("list NAT gateways: %w", err)
	}

	var findings []Finding
	for _, gw := range gateways {
		id := deref(gw.NatGatewayId)

		hadTraffic, err := d.oracle.HadActivity(ctx, "AWS/NATGateway", "BytesOutToDestination", "NatGatewayId", id)
		if err != nil {
			slog.Debug("NAT gateway traffic indeterminate, skipping", "id", id, "region", d.region, "error", err)
			continue
		}
		if hadTraffic {
			continue
		}

		findings = append(findings, Finding{
			ResourceType:         ResourceNATGateway,
			ResourceID:           id,
			Region:               d.region,
			EstimatedMonthlyCost: round4(cfg.Prices.NATGatewayCost()),
			Tags:                 ec2TagsToMap(gw.Tags),
			RiskLevel:            RiskHigh,
			RecommendedAction:    "Remove or downsize idle NAT Gateway",
		})
	}
	return findings, nil
}

func (d *NATGatewayDetector) listNATGateways(ctx context.Context) ([]ec2types.NatGateway, error) {
	var gateways []ec2types.NatGateway
	paginator := ec2.NewDescribeNatGatewaysPaginator(d.client, &ec2.DescribeNatGatewaysInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		gateways = append(gateways, page.NatGateways...)
	}
	return gateways, nil
}
