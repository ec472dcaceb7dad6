// Lambda entrypoint for the scheduled report. EventBridge triggers it daily
// or weekly; the handler assembles the report and delivers it over SES.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/avolkov/cloudhygiene/internal/aws"
	"github.com/avolkov/cloudhygiene/internal/config"
	"github.com/avolkov/cloudhygiene/internal/handler"
	"github.com/avolkov/cloudhygiene/internal/logging"
	"github.com/avolkov/cloudhygiene/internal/pricing"
	"github.com/avolkov/cloudhygiene/internal/report"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

func main() {
	logging.Init(false)
	ctx := context.Background()

	client, err := aws.NewClient(ctx, "", "")
	if err != nil {
		slog.Error("Failed to initialize AWS client", "error", err)
		os.Exit(1)
	}

	settings, err := config.ReportFromEnv(config.Report{})
	if err != nil {
		slog.Error("Failed to load report settings", "error", err)
		os.Exit(1)
	}

	prices, err := pricing.FromEnv()
	if err != nil {
		slog.Error("Failed to load price overrides", "error", err)
		os.Exit(1)
	}

	orchestrator := &report.Orchestrator{
		Scanner: aws.NewHygieneScanner(client, aws.ScanConfig{
			SnapshotMinAgeDays: 3,
			LookbackDays:       7,
			DefaultRegion:      config.DefaultRegion(),
			Prices:             prices,
		}, 4),
		Recipients:  settings.Recipients,
		Environment: settings.Environment,
	}

	if settings.FromEmail != "" {
		orchestrator.Sender = report.NewEmailSender(sesv2.NewFromConfig(client.Config()), settings.FromEmail)
	}

	if narrator, err := report.NewNarrator(bedrockagentruntime.NewFromConfig(client.Config()), settings.AgentID, settings.AgentAliasID); err == nil {
		orchestrator.Narrate = narrator.Narrate
	}

	lambda.Start(handler.NewScheduleHandler(orchestrator).Handle)
}
