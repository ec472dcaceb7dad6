package commands

import (
	"fmt"

	"github.com/avolkov/cloudhygiene/internal/aws"
	"github.com/avolkov/cloudhygiene/internal/config"
	"github.com/avolkov/cloudhygiene/internal/report"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/spf13/cobra"
)

var reportFlags struct {
	reportType string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble a narrative report and deliver it by email",
	Long: `Build a daily or weekly cloud report and send it over SES. With a
configured Bedrock agent the body is agent-generated prose; otherwise it is
a plain rendering of a fresh hygiene scan. Delivery settings come from the
config file or from REPORT_RECIPIENTS, SES_FROM_EMAIL, AGENT_ID,
AGENT_ALIAS_ID, and ENVIRONMENT_NAME.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFlags.reportType, "type", "daily", "Report type: daily or weekly")
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := config.ReportFromEnv(cfg.Report)
	if err != nil {
		return err
	}

	prof := profile
	if prof == "" {
		prof = cfg.Profile
	}

	client, err := aws.NewClient(ctx, prof, "")
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	scanCfg, err := buildScanConfig()
	if err != nil {
		return err
	}

	orchestrator := &report.Orchestrator{
		Scanner:     aws.NewHygieneScanner(client, scanCfg, 4),
		Recipients:  settings.Recipients,
		Environment: settings.Environment,
	}

	if settings.FromEmail != "" {
		orchestrator.Sender = report.NewEmailSender(sesv2.NewFromConfig(client.Config()), settings.FromEmail)
	}

	if narrator, err := report.NewNarrator(bedrockagentruntime.NewFromConfig(client.Config()), settings.AgentID, settings.AgentAliasID); err == nil {
		orchestrator.Narrate = narrator.Narrate
	}

	status, err := orchestrator.Run(ctx, reportFlags.reportType)
	if err != nil {
		return enhanceError("deliver report", err)
	}

	if status.Status == "skipped" {
		fmt.Printf("Report skipped: %s\n", status.Reason)
		return nil
	}
	fmt.Printf("Sent %s report to %d recipient(s)\n", status.ReportType, status.RecipientCount)
	return nil
}
