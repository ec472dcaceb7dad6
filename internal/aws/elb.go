package aws

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
)

// ELBAPI is the minimal interface for ELBv2 operations.
type ELBAPI interface {
	DescribeLoadBalancers(ctx context.Context, input *elasticloadbalancingv2.DescribeLoadBalancersInput, opts ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error)
}

// LoadBalancerDetector flags load balancers with no traffic over the trailing
// window. The traffic metric depends on the sub-type: request count for
// application balancers, active flow count for network balancers.
type LoadBalancerDetector struct {
	client ELBAPI
	oracle *TrafficOracle
	region string
}

// NewLoadBalancerDetector creates a detector for idle load balancers.
func NewLoadBalancerDetector(client ELBAPI, oracle *TrafficOracle, region string) *LoadBalancerDetector {
	return &LoadBalancerDetector{client: client, oracle: oracle, region: region}
}

// Type returns the resource class this detector reports.
func (d *LoadBalancerDetector) Type() ResourceType {
	return ResourceLoadBalancer
}

// Scan lists load balancers and consults the traffic oracle with the
// sub-type-specific metric. Oracle failure means skip, never flag.
func (d *LoadBalancerDetector) Scan(ctx context.Context, cfg ScanConfig) ([]Finding, error) {
	lbs, err := d.listLoadBalancers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list load balancers: %w", err)
	}

	var findings []Finding
	for _, lb := range lbs {
		arn := deref(lb.LoadBalancerArn)
		name := deref(lb.LoadBalancerName)
		subType := strings.ToUpper(string(lb.Type))

		dimension := lbDimension(arn)
		if dimension == "" {
			continue
		}

		namespace, metric := lbMetric(lb.Type)
		hadTraffic, err := d.oracle.HadActivity(ctx, namespace, metric, "LoadBalancer", dimension)
		if err != nil {
			slog.Debug("Load balancer traffic indeterminate, skipping", "name", name, "region", d.region, "error", err)
			continue
		}
		if hadTraffic {
			continue
		}

		findings = append(findings, Finding{
			ResourceType:         ResourceLoadBalancer,
			ResourceID:           arn,
			Region:               d.region,
			EstimatedMonthlyCost: round4(cfg.Prices.LoadBalancerCost()),
			Tags:                 map[string]string{},
			RiskLevel:            RiskMedium,
			RecommendedAction:    "Delete or consolidate idle load balancer",
			Extra:                map[string]any{"name": name, "type": subType},
		})
	}
	return findings, nil
}

func (d *LoadBalancerDetector) listLoadBalancers(ctx context.Context) ([]elbtypes.LoadBalancer, error) {
	var lbs []elbtypes.LoadBalancer
	var marker *string

	for {
		out, err := d.client.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
			Marker: marker,
		})
		if err != nil {
			return nil, err
		}
		lbs = append(lbs, out.LoadBalancers...)
		if out.NextMarker == nil {
			break
		}
		marker = out.NextMarker
	}
	return lbs, nil
}

// lbMetric picks the CloudWatch namespace and metric for a load balancer
// sub-type. Anything other than an application balancer is measured by
// active flows.
func lbMetric(t elbtypes.LoadBalancerTypeEnum) (namespace, metric string) {
	if t == elbtypes.LoadBalancerTypeEnumApplication {
		return "AWS/ApplicationELB", "RequestCount"
	}
	return "AWS/NetworkELB", "ActiveFlowCount"
}

// lbDimension extracts the CloudWatch dimension value from an ELBv2 ARN.
// Input:  arn:aws:elasticloadbalancing:us-east-1:123456:loadbalancer/app/my-lb/abc123
// Output: app/my-lb/abc123
func lbDimension(arn string) string {
	const prefix = "loadbalancer/"
	if i := strings.Index(arn, prefix); i >= 0 {
		return arn[i+len(prefix):]
	}
	return ""
}
