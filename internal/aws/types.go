package aws

import (
	"encoding/json"
	"math"
	"time"

	"github.com/avolkov/cloudhygiene/internal/pricing"
)

// RiskLevel grades how safe it is to act on a finding.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ResourceType identifies the AWS resource class being audited.
type ResourceType string

const (
	ResourceStorageVolume   ResourceType = "STORAGE_VOLUME"
	ResourceStorageSnapshot ResourceType = "STORAGE_SNAPSHOT"
	ResourceFloatingIP      ResourceType = "FLOATING_IP"
	ResourceNATGateway      ResourceType = "NAT_GATEWAY"
	ResourceLoadBalancer    ResourceType = "LOAD_BALANCER"
	ResourceLogGroup        ResourceType = "LOG_GROUP"
	ResourceEKSNamespace    ResourceType = "EKS_NAMESPACE"
)

// Finding is one normalized record describing a single wasteful or idle
// resource. It is a snapshot of a detector's observation: immutable once
// built and never reconciled against prior scans.
type Finding struct {
	ResourceType         ResourceType
	ResourceID           string
	Region               string
	EstimatedMonthlyCost float64
	// AgeDays is nil when the creation timestamp is unavailable or not
	// meaningful for the resource class.
	AgeDays           *int
	Tags              map[string]string
	RiskLevel         RiskLevel
	RecommendedAction string
	// Extra holds class-specific attributes merged into the serialized
	// record at the top level.
	Extra map[string]any
}

// MarshalJSON flattens Extra into the top-level object. Base fields win on
// key collision. Tags always serializes as an object, never null.
func (f Finding) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 8+len(f.Extra))
	for k, v := range f.Extra {
		m[k] = v
	}

	tags := f.Tags
	if tags == nil {
		tags = map[string]string{}
	}

	m["resource_type"] = f.ResourceType
	m["resource_id"] = f.ResourceID
	m["region"] = f.Region
	m["estimated_monthly_cost"] = f.EstimatedMonthlyCost
	m["age_days"] = f.AgeDays
	m["tags"] = tags
	m["risk_level"] = f.RiskLevel
	m["recommended_action"] = f.RecommendedAction

	return json.Marshal(m)
}

// Summary holds the aggregate totals over a full findings list.
type Summary struct {
	TotalEstimatedSavings float64 `json:"total_estimated_savings"`
	TotalResources        int     `json:"total_resources"`
}

// ScanResult is the top-level output of one hygiene scan. Errors carries
// detector-level failures when the scan returned a partial result; a
// non-empty Errors does not invalidate Findings.
type ScanResult struct {
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
	Errors   []string  `json:"errors,omitempty"`
}

// Summarize recomputes the summary totals from a findings list.
func Summarize(findings []Finding) Summary {
	var total float64
	for _, f := range findings {
		total += f.EstimatedMonthlyCost
	}
	return Summary{
		TotalEstimatedSavings: round4(total),
		TotalResources:        len(findings),
	}
}

// ScanConfig holds the knobs detectors consume. It is built once by the
// caller and passed down explicitly; detectors never read ambient state.
type ScanConfig struct {
	// SnapshotMinAgeDays is the minimum snapshot age before it is flagged.
	SnapshotMinAgeDays int
	// LookbackDays is the trailing window for traffic-metric checks.
	LookbackDays int
	// DefaultRegion is scanned when the caller passes no regions.
	DefaultRegion string
	Prices        pricing.Table
}

// round4 rounds to 4 fractional digits, the precision of every cost figure
// in the output contract.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ageDays returns the whole days between created and now, clamped at zero so
// clock skew never yields a negative age.
func ageDays(created, now time.Time) int {
	d := int(now.Sub(created).Seconds() / 86400)
	if d < 0 {
		return 0
	}
	return d
}

func agePtr(created *time.Time, now time.Time) *int {
	if created == nil {
		return nil
	}
	d := ageDays(*created, now)
	return &d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
