// Package pricing approximates monthly resource costs. The figures are
// deliberately rough, tunable defaults, not billing-accurate rates.
package pricing

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Table holds the unit prices the cost estimator works from. Size-based
// resources are priced per GB-month; fixed-cost resources carry a flat
// monthly rate.
type Table struct {
	VolumeGBMonth     float64 `yaml:"volume_gb_month" envconfig:"EBS_GB_MONTH_PRICE"`
	SnapshotGBMonth   float64 `yaml:"snapshot_gb_month" envconfig:"SNAPSHOT_GB_MONTH_PRICE"`
	EIPMonth          float64 `yaml:"eip_month" envconfig:"EIP_MONTH_PRICE"`
	NATGatewayMonth   float64 `yaml:"nat_gateway_month" envconfig:"NAT_MONTH_PRICE"`
	LoadBalancerMonth float64 `yaml:"load_balancer_month" envconfig:"ELB_MONTH_PRICE"`
}

// Defaults returns the built-in price table.
func Defaults() Table {
	return Table{
		VolumeGBMonth:     0.08,
		SnapshotGBMonth:   0.05,
		EIPMonth:          3.5,
		NATGatewayMonth:   32.0,
		LoadBalancerMonth: 18.0,
	}
}

// FromEnv returns the default table with any HYGIENE_*_PRICE environment
// overrides applied.
func FromEnv() (Table, error) {
	t := Defaults()
	if err := envconfig.Process("hygiene", &t); err != nil {
		return t, fmt.Errorf("read price overrides: %w", err)
	}
	return t, nil
}

// Merge returns t with any non-zero prices from o taking precedence.
func (t Table) Merge(o Table) Table {
	if o.VolumeGBMonth > 0 {
		t.VolumeGBMonth = o.VolumeGBMonth
	}
	if o.SnapshotGBMonth > 0 {
		t.SnapshotGBMonth = o.SnapshotGBMonth
	}
	if o.EIPMonth > 0 {
		t.EIPMonth = o.EIPMonth
	}
	if o.NATGatewayMonth > 0 {
		t.NATGatewayMonth = o.NATGatewayMonth
	}
	if o.LoadBalancerMonth > 0 {
		t.LoadBalancerMonth = o.LoadBalancerMonth
	}
	return t
}

// VolumeCost estimates the monthly cost of an EBS volume.
func (t Table) VolumeCost(sizeGB int) float64 {
	return float64(sizeGB) * t.VolumeGBMonth
}

// SnapshotCost estimates the monthly cost of a snapshot, approximating the
// stored size by the source volume size.
func (t Table) SnapshotCost(sizeGB int) float64 {
	return float64(sizeGB) * t.SnapshotGBMonth
}

// EIPCost is the flat monthly cost of an unassociated Elastic IP.
func (t Table) EIPCost() float64 {
	return t.EIPMonth
}

// NATGatewayCost is the flat monthly base cost of a NAT gateway, excluding
// data processing.
func (t Table) NATGatewayCost() float64 {
	return t.NATGatewayMonth
}

// LoadBalancerCost is the flat monthly base cost of a load balancer,
// excluding capacity-unit charges.
func (t Table) LoadBalancerCost() float64 {
	return t.LoadBalancerMonth
}

// LogGroupCost is always zero: log storage is usage-billed and an empty
// group stores nothing.
func (t Table) LogGroupCost() float64 {
	return 0.0
}
