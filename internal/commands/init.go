package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample .cloudhygiene.yaml config file and an IAM policy JSON file for read-only scanning.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".cloudhygiene.yaml"
	policyPath := "cloudhygiene-policy.json"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(policyPath, sampleIAMPolicy, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, policyPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .cloudhygiene.yaml to customize scan settings")
	fmt.Println("  2. Apply cloudhygiene-policy.json to your AWS IAM role/user")
	fmt.Println("  3. Run: cloudhygiene scan")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# cloudhygiene configuration

# AWS profile (or set AWS_PROFILE env var)
# profile: default

# Regions to scan. Default: one fallback region from AWS_REGION,
# then AWS_DEFAULT_REGION, then us-east-1.
# regions:
#   - us-east-1
#   - eu-west-1

# Minimum snapshot age before flagging (days)
snapshot_min_age_days: 3

# Trailing window for traffic metrics (days)
lookback_days: 7

# Output format: text, json or sarif
format: text

# Scan timeout
timeout: 10m

# Unit price overrides (USD). Also settable via HYGIENE_* env vars.
# prices:
#   volume_gb_month: 0.08
#   snapshot_gb_month: 0.05
#   eip_month: 3.5
#   nat_gateway_month: 32.0
#   load_balancer_month: 18.0

# Scheduled report delivery
# report:
#   recipients:
#     - ops@example.com
#   from_email: reports@example.com
#   agent_id: AGENT123
#   environment: sandbox
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "CloudHygieneReadOnly",
      "Effect": "Allow",
      "Action": [
        "ec2:DescribeVolumes",
        "ec2:DescribeSnapshots",
        "ec2:DescribeAddresses",
        "ec2:DescribeNatGateways",
        "ec2:DescribeRegions",
        "elasticloadbalancing:DescribeLoadBalancers",
        "cloudwatch:GetMetricStatistics",
        "logs:DescribeLogGroups",
        "sts:GetCallerIdentity"
      ],
      "Resource": "*"
    },
    {
      "Sid": "CloudHygieneReportDelivery",
      "Effect": "Allow",
      "Action": [
        "ses:SendEmail",
        "bedrock:InvokeAgent"
      ],
      "Resource": "*"
    }
  ]
}
`
