package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// LogGroupAPI is the minimal interface for CloudWatch Logs operations.
type LogGroupAPI interface {
	DescribeLogGroups(ctx context.Context, input *cloudwatchlogs.DescribeLogGroupsInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
}

// LogGroupDetector flags log groups with exactly zero stored bytes. Log
// storage is usage-billed, so the cost estimate is always zero; the finding
// exists for hygiene, not savings.
type LogGroupDetector struct {
	client LogGroupAPI
	region string
}

// NewLogGroupDetector creates a detector for empty log groups.
func NewLogGroupDetector(client LogGroupAPI, region string) *LogGroupDetector {
	return &LogGroupDetector{client: client, region: region}
}

// Type returns the resource class this detector reports.
func (d *LogGroupDetector) Type() ResourceType {
	return ResourceLogGroup
}

// Scan lists all log groups in the region and flags the empty ones.
func (d *LogGroupDetector) Scan(ctx context.Context, cfg ScanConfig) ([]Finding, error) {
	groups, err := d.listLogGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list log groups: %w", err)
	}

	var findings []Finding
	for _, lg := range groups {
		if lg.StoredBytes != nil && *lg.StoredBytes != 0 {
			continue
		}

		findings = append(findings, Finding{
			ResourceType:         ResourceLogGroup,
			ResourceID:           deref(lg.LogGroupName),
			Region:               d.region,
			EstimatedMonthlyCost: cfg.Prices.LogGroupCost(),
			Tags:                 map[string]string{},
			RiskLevel:            RiskLow,
			RecommendedAction:    "Delete unused empty log group",
		})
	}
	return findings, nil
}

func (d *LogGroupDetector) listLogGroups(ctx context.Context) ([]logtypes.LogGroup, error) {
	var groups []logtypes.LogGroup
	paginator := cloudwatchlogs.NewDescribeLogGroupsPaginator(d.client, &cloudwatchlogs.DescribeLogGroupsInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		groups = append(groups, page.LogGroups...)
	}
	return groups, nil
}
