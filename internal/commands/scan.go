package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/avolkov/cloudhygiene/internal/aws"
	"github.com/avolkov/cloudhygiene/internal/config"
	"github.com/avolkov/cloudhygiene/internal/pricing"
	"github.com/avolkov/cloudhygiene/internal/report"
	"github.com/spf13/cobra"
)

var scanFlags struct {
	regions        []string
	allRegions     bool
	snapshotMinAge int
	lookbackDays   int
	format         string
	outputFile     string
	timeout        time.Duration
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan AWS resources for hygiene findings",
	Long: `Scan AWS regions for wasteful or idle resources. With no region
arguments the scan covers exactly one fallback region (AWS_REGION, then
AWS_DEFAULT_REGION, then us-east-1).`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanFlags.regions, "regions", nil, "Comma-separated region list")
	scanCmd.Flags().BoolVar(&scanFlags.allRegions, "all-regions", false, "Scan all enabled regions")
	scanCmd.Flags().IntVar(&scanFlags.snapshotMinAge, "snapshot-min-age", 3, "Minimum snapshot age before flagging (days)")
	scanCmd.Flags().IntVar(&scanFlags.lookbackDays, "lookback-days", 7, "Trailing window for traffic metrics (days)")
	scanCmd.Flags().StringVar(&scanFlags.format, "format", "text", "Output format: text, json, sarif")
	scanCmd.Flags().StringVarP(&scanFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().DurationVar(&scanFlags.timeout, "timeout", 10*time.Minute, "Scan timeout")
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if scanFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, scanFlags.timeout)
		defer cancel()
	}

	applyConfigDefaults()

	prof := profile
	if prof == "" {
		prof = cfg.Profile
	}

	client, err := aws.NewClient(ctx, prof, "")
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	regions, err := resolveRegions(ctx, client)
	if err != nil {
		return enhanceError("resolve regions", err)
	}
	slog.Info("Scanning regions", "count", len(regions), "regions", regions)

	scanCfg, err := buildScanConfig()
	if err != nil {
		return err
	}

	scanner := aws.NewHygieneScanner(client, scanCfg, 4)
	result, err := scanner.Run(ctx, regions)
	if err != nil {
		return enhanceError("scan resources", err)
	}

	data := report.Data{
		Tool:      "cloudhygiene",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Target: report.Target{
			Type:    "aws-account",
			URIHash: computeTargetHash(prof, regions),
		},
		Config: report.ScanSettings{
			Regions:            regions,
			SnapshotMinAgeDays: scanCfg.SnapshotMinAgeDays,
			LookbackDays:       scanCfg.LookbackDays,
		},
		Result: result,
	}

	reporter, err := selectReporter(scanFlags.format, scanFlags.outputFile)
	if err != nil {
		return err
	}
	return reporter.Generate(data)
}

// buildScanConfig assembles the explicit config detectors receive. Price
// precedence: built-in defaults, then HYGIENE_* environment overrides, then
// the config file.
func buildScanConfig() (aws.ScanConfig, error) {
	prices, err := pricing.FromEnv()
	if err != nil {
		return aws.ScanConfig{}, err
	}
	prices = prices.Merge(cfg.Prices)

	return aws.ScanConfig{
		SnapshotMinAgeDays: scanFlags.snapshotMinAge,
		LookbackDays:       scanFlags.lookbackDays,
		DefaultRegion:      config.DefaultRegion(),
		Prices:             prices,
	}, nil
}

func resolveRegions(ctx context.Context, client *aws.Client) ([]string, error) {
	if len(scanFlags.regions) > 0 {
		return scanFlags.regions, nil
	}

	if len(cfg.Regions) > 0 {
		return cfg.Regions, nil
	}

	if scanFlags.allRegions {
		return client.ListEnabledRegions(ctx)
	}

	// Leave region selection to the scanner's single-region fallback.
	return nil, nil
}

func applyConfigDefaults() {
	if scanFlags.format == "text" && cfg.Format != "" {
		scanFlags.format = cfg.Format
	}
	if scanFlags.snapshotMinAge == 3 && cfg.SnapshotMinAgeDays > 0 {
		scanFlags.snapshotMinAge = cfg.SnapshotMinAgeDays
	}
	if scanFlags.lookbackDays == 7 && cfg.LookbackDays > 0 {
		scanFlags.lookbackDays = cfg.LookbackDays
	}
	if scanFlags.timeout == 10*time.Minute && cfg.TimeoutDuration() > 0 {
		scanFlags.timeout = cfg.TimeoutDuration()
	}
}

func selectReporter(format, outputFile string) (report.Reporter, error) {
	w := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		w = f
	}

	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "sarif":
		return &report.SARIFReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or sarif)", format)
	}
}
