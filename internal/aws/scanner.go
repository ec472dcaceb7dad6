package aws

import (
	"context"
	"fmt"
	"log/slog"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"golang.org/x/sync/errgroup"
)

// Detector is the interface each resource-class detector implements.
// Detectors are independent and side-effect-free with respect to each other.
type Detector interface {
	Scan(ctx context.Context, cfg ScanConfig) ([]Finding, error)
	Type() ResourceType
}

// HygieneScanner runs every detector across a set of regions and aggregates
// the findings into a single ScanResult.
type HygieneScanner struct {
	client      *Client
	cfg         ScanConfig
	concurrency int

	// detectorFactory is replaceable in tests.
	detectorFactory func(cfg awssdk.Config, region string, lookbackDays int) []Detector
}

// NewHygieneScanner creates a scanner with the given configuration.
func NewHygieneScanner(client *Client, cfg ScanConfig, concurrency int) *HygieneScanner {
	if concurrency <= 0 {
		concurrency = 4
	}
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = "us-east-1"
	}
	return &HygieneScanner{
		client:          client,
		cfg:             cfg,
		concurrency:     concurrency,
		detectorFactory: buildDetectors,
	}
}

type regionResult struct {
	findings []Finding
	errors   []string
}

// Run scans the given regions. An empty region list falls back to exactly
// one region, the configured default. Regions are scanned concurrently but
// output order is deterministic: region input order, then the fixed detector
// order within each region. A failing detector contributes an error string
// instead of aborting the scan.
func (s *HygieneScanner) Run(ctx context.Context, regions []string) (*ScanResult, error) {
	if len(regions) == 0 {
		regions = []string{s.cfg.DefaultRegion}
	}

	results := make([]regionResult, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, region := range regions {
		g.Go(func() error {
			slog.Info("Scanning region", "region", region)
			results[i] = s.scanRegion(ctx, region)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &ScanResult{Findings: make([]Finding, 0)}
	for _, r := range results {
		out.Findings = append(out.Findings, r.findings...)
		out.Errors = append(out.Errors, r.errors...)
	}
	out.Summary = Summarize(out.Findings)
	return out, nil
}

// scanRegion runs every detector for one region in the fixed sequence,
// accumulating into region-local slices.
func (s *HygieneScanner) scanRegion(ctx context.Context, region string) regionResult {
	detectors := s.detectorFactory(s.client.ConfigForRegion(region), region, s.cfg.LookbackDays)

	var r regionResult
	for _, d := range detectors {
		slog.Debug("Running detector", "type", d.Type(), "region", region)
		findings, err := d.Scan(ctx, s.cfg)
		if err != nil {
			r.errors = append(r.errors, fmt.Sprintf("%s/%s: %v", region, d.Type(), err))
			slog.Warn("Detector failed", "type", d.Type(), "region", region, "error", err)
			continue
		}
		r.findings = append(r.findings, findings...)
	}
	return r
}

// buildDetectors creates the detectors for one region in their documented
// order: volumes, snapshots, floating IPs, NAT gateways, load balancers,
// log groups, then the reserved namespace slot.
func buildDetectors(cfg awssdk.Config, region string, lookbackDays int) []Detector {
	ec2Client := ec2.NewFromConfig(cfg)
	oracle := NewTrafficOracle(cloudwatch.NewFromConfig(cfg), lookbackDays)

	return []Detector{
		NewVolumeDetector(ec2Client, region),
		NewSnapshotDetector(ec2Client, region),
		NewEIPDetector(ec2Client, region),
		NewNATGatewayDetector(ec2Client, oracle, region),
		NewLoadBalancerDetector(elasticloadbalancingv2.NewFromConfig(cfg), oracle, region),
		NewLogGroupDetector(cloudwatchlogs.NewFromConfig(cfg), region),
		NewNamespaceDetector(region),
	}
}
