package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/avolkov/cloudhygiene/internal/report"
	"github.com/aws/aws-lambda-go/events"
)

// ScheduleHandler serves EventBridge-triggered report runs.
type ScheduleHandler struct {
	orchestrator *report.Orchestrator
}

// NewScheduleHandler creates the handler around an orchestrator.
func NewScheduleHandler(o *report.Orchestrator) *ScheduleHandler {
	return &ScheduleHandler{orchestrator: o}
}

// Handle reads the report type from the event detail and runs the report
// orchestration. An absent or malformed detail falls back to a daily report.
func (h *ScheduleHandler) Handle(ctx context.Context, event events.CloudWatchEvent) (report.Status, error) {
	return h.orchestrator.Run(ctx, reportType(event.Detail))
}

func reportType(detail json.RawMessage) string {
	if len(detail) == 0 {
		return "daily"
	}

	var d struct {
		ReportType string `json:"reportType"`
	}
	if err := json.Unmarshal(detail, &d); err != nil {
		slog.Debug("Unparseable event detail, defaulting to daily report", "error", err)
		return "daily"
	}
	if d.ReportType == "" {
		return "daily"
	}
	return d.ReportType
}
