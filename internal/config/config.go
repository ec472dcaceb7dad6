package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avolkov/cloudhygiene/internal/pricing"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds cloudhygiene configuration loaded from .cloudhygiene.yaml.
type Config struct {
	Regions            []string      `yaml:"regions"`
	Profile            string        `yaml:"profile"`
	SnapshotMinAgeDays int           `yaml:"snapshot_min_age_days"`
	LookbackDays       int           `yaml:"lookback_days"`
	Format             string        `yaml:"format"`
	Timeout            string        `yaml:"timeout"`
	Prices             pricing.Table `yaml:"prices"`
	Report             Report        `yaml:"report"`
}

// Report holds the delivery settings for the scheduled narrative report.
// Every field can also come from the environment, which is how the Lambda
// deployment configures it.
type Report struct {
	Recipients   []string `yaml:"recipients" envconfig:"REPORT_RECIPIENTS"`
	FromEmail    string   `yaml:"from_email" envconfig:"SES_FROM_EMAIL"`
	AgentID      string   `yaml:"agent_id" envconfig:"AGENT_ID"`
	AgentAliasID string   `yaml:"agent_alias_id" envconfig:"AGENT_ALIAS_ID"`
	Environment  string   `yaml:"environment" envconfig:"ENVIRONMENT_NAME"`
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load searches for .cloudhygiene.yaml or .cloudhygiene.yml in the given
// directory and returns the parsed config. Returns an empty Config if no
// file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".cloudhygiene.yaml"),
		filepath.Join(dir, ".cloudhygiene.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}

// ReportFromEnv applies environment overrides on top of the file-loaded
// report settings and fills the documented defaults.
func ReportFromEnv(base Report) (Report, error) {
	r := base
	if err := envconfig.Process("", &r); err != nil {
		return r, fmt.Errorf("read report settings: %w", err)
	}
	if r.AgentAliasID == "" {
		r.AgentAliasID = "TSTALIASID"
	}
	if r.Environment == "" {
		r.Environment = "sandbox"
	}
	return r, nil
}

// DefaultRegion resolves the single fallback region used when no regions are
// requested. The precedence is fixed and documented: AWS_REGION, then
// AWS_DEFAULT_REGION, then "us-east-1".
func DefaultRegion() string {
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	if r := os.Getenv("AWS_DEFAULT_REGION"); r != "" {
		return r
	}
	return "us-east-1"
}
