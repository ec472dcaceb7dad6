package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	awstype "github.com/avolkov/cloudhygiene/internal/aws"
)

// Scanner is the slice of the hygiene scanner the orchestrator needs.
type Scanner interface {
	Run(ctx context.Context, regions []string) (*awstype.ScanResult, error)
}

// Sender is the slice of the email sender the orchestrator needs.
type Sender interface {
	Send(ctx context.Context, recipients []string, subject, htmlBody string) error
}

// NarrateFunc produces the prose body of a report. Nil means no narrative
// agent is configured and the orchestrator renders the scan itself.
type NarrateFunc func(ctx context.Context, reportType string) (string, error)

// Orchestrator assembles a scheduled report and delivers it by email.
type Orchestrator struct {
	Scanner     Scanner
	Sender      Sender
	Narrate     NarrateFunc
	Recipients  []string
	Environment string
}

// Status is the structured outcome of one orchestration run.
type Status struct {
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	ReportType     string `json:"reportType,omitempty"`
	RecipientCount int    `json:"recipientCount,omitempty"`
}

// Run builds and delivers one report. Missing delivery configuration is a
// skip, not an error: scheduled invocations in unconfigured environments
// must not page anyone.
func (o *Orchestrator) Run(ctx context.Context, reportType string) (Status, error) {
	if reportType != "daily" && reportType != "weekly" {
		reportType = "daily"
	}

	if len(o.Recipients) == 0 || o.Sender == nil {
		slog.Info("Report recipients or sender not configured; skipping report")
		return Status{Status: "skipped", Reason: "missing_config"}, nil
	}

	body, err := o.reportBody(ctx, reportType)
	if err != nil {
		return Status{}, err
	}

	subject := fmt.Sprintf("[%s] AWS Cloud Report – %s", o.Environment, titleCase(reportType))
	if err := o.Sender.Send(ctx, o.Recipients, subject, HTMLBody(body)); err != nil {
		return Status{}, err
	}

	return Status{
		Status:         "sent",
		ReportType:     reportType,
		RecipientCount: len(o.Recipients),
	}, nil
}

func (o *Orchestrator) reportBody(ctx context.Context, reportType string) (string, error) {
	if o.Narrate != nil {
		return o.Narrate(ctx, reportType)
	}

	// No narrative agent: run the hygiene scan and render it as text.
	result, err := o.Scanner.Run(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("hygiene scan: %w", err)
	}

	var b strings.Builder
	r := &TextReporter{Writer: &b}
	err = r.Generate(Data{
		Tool:      "cloudhygiene",
		Version:   "scheduled",
		Timestamp: time.Now().UTC(),
		Result:    result,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
