package commands

import (
	"log/slog"

	"github.com/avolkov/cloudhygiene/internal/config"
	"github.com/avolkov/cloudhygiene/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	profile string
	version string
	commit  string
	date    string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cloudhygiene",
	Short: "cloudhygiene — AWS resource hygiene auditor",
	Long: `cloudhygiene audits an AWS account for wasteful or idle resources:
unattached EBS volumes, stale snapshots, unassociated Elastic IPs, idle NAT
gateways and load balancers, and empty CloudWatch log groups.

Each finding includes an approximate monthly cost in USD. cloudhygiene only
reports; it never mutates or deletes anything.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
		} else {
			cfg = loaded
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS profile name")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
