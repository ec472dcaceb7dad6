// Lambda entrypoint for the Bedrock agent action group. The agent calls
// run_scan with an optional regions parameter; the handler answers with the
// serialized scan result in the action-group response envelope.
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
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	logging.Init(false)
	ctx := context.Background()

	client, err := aws.NewClient(ctx, "", "")
	if err != nil {
		slog.Error("Failed to initialize AWS client", "error", err)
		os.Exit(1)
	}

	prices, err := pricing.FromEnv()
	if err != nil {
		slog.Error("Failed to load price overrides", "error", err)
		os.Exit(1)
	}

	scanner := aws.NewHygieneScanner(client, aws.ScanConfig{
		SnapshotMinAgeDays: 3,
		LookbackDays:       7,
		DefaultRegion:      config.DefaultRegion(),
		Prices:             prices,
	}, 4)

	lambda.Start(handler.NewActionHandler(scanner).Handle)
}
