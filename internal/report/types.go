package report

import (
	"time"

	awstype "github.com/avolkov/cloudhygiene/internal/aws"
)

// Reporter renders scan output in one format.
type Reporter interface {
	Generate(data Data) error
}

// Data is everything a reporter needs to render one scan.
type Data struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Target    Target    `json:"target"`

	Config ScanSettings        `json:"config"`
	Result *awstype.ScanResult `json:"result"`
}

// Target identifies what was scanned without embedding credentials.
type Target struct {
	Type    string `json:"type"`
	URIHash string `json:"uri_hash"`
}

// ScanSettings echoes the knobs the scan ran with.
type ScanSettings struct {
	Regions            []string `json:"regions"`
	SnapshotMinAgeDays int      `json:"snapshot_min_age_days"`
	LookbackDays       int      `json:"lookback_days"`
}
