// Package handler adapts external invocation envelopes (Bedrock agent
// action groups, EventBridge schedules) to the hygiene scanner and report
// orchestrator.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	awstype "github.com/avolkov/cloudhygiene/internal/aws"
)

// Scanner is the slice of the hygiene scanner the action handler needs.
type Scanner interface {
	Run(ctx context.Context, regions []string) (*awstype.ScanResult, error)
}

// AgentEvent is the Bedrock agent action-group invocation envelope.
type AgentEvent struct {
	MessageVersion string           `json:"messageVersion"`
	ActionGroup    string           `json:"actionGroup"`
	Function       string           `json:"function"`
	Parameters     []AgentParameter `json:"parameters"`
}

// AgentParameter is one named input from the agent.
type AgentParameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// AgentResponse is the messageVersion 1.0 action-group response envelope.
type AgentResponse struct {
	MessageVersion string        `json:"messageVersion"`
	Response       AgentFunction `json:"response"`
}

// AgentFunction carries the function result back to the agent.
type AgentFunction struct {
	ActionGroup      string       `json:"actionGroup"`
	Function         string       `json:"function"`
	ResponseState    string       `json:"responseState,omitempty"`
	FunctionResponse ResponseBody `json:"functionResponse"`
}

// ResponseBody wraps the TEXT body the agent consumes.
type ResponseBody struct {
	Body map[string]TextBody `json:"responseBody"`
}

// TextBody is a single serialized payload.
type TextBody struct {
	Body string `json:"body"`
}

// ActionHandler serves hygiene-scan requests from a Bedrock agent.
type ActionHandler struct {
	scanner Scanner
}

// NewActionHandler creates the handler around a scanner.
func NewActionHandler(scanner Scanner) *ActionHandler {
	return &ActionHandler{scanner: scanner}
}

// Handle runs the scan and wraps the result in the response envelope. Any
// failure is returned as a structured FAILED response, never as a handler
// error, so the invoking agent always receives a well-formed envelope.
func (h *ActionHandler) Handle(ctx context.Context, event AgentEvent) (AgentResponse, error) {
	regions := parseRegions(event.Parameters)

	result, err := h.scanner.Run(ctx, regions)
	if err != nil {
		slog.Error("Hygiene scan failed", "error", err)
		return failureResponse(event, err), nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return failureResponse(event, err), nil
	}

	return AgentResponse{
		MessageVersion: "1.0",
		Response: AgentFunction{
			ActionGroup: actionGroup(event),
			Function:    function(event),
			FunctionResponse: ResponseBody{
				Body: map[string]TextBody{"TEXT": {Body: string(payload)}},
			},
		},
	}, nil
}

// parseRegions extracts the optional "regions" parameter, accepting a
// comma-separated list.
func parseRegions(params []AgentParameter) []string {
	for _, p := range params {
		if p.Name != "regions" {
			continue
		}
		var regions []string
		for _, r := range strings.Split(p.Value, ",") {
			if r = strings.TrimSpace(r); r != "" {
				regions = append(regions, r)
			}
		}
		return regions
	}
	return nil
}

func failureResponse(event AgentEvent, cause error) AgentResponse {
	body, _ := json.Marshal(map[string]string{
		"error":   cause.Error(),
		"message": "Hygiene scan failed",
	})

	return AgentResponse{
		MessageVersion: "1.0",
		Response: AgentFunction{
			ActionGroup:   actionGroup(event),
			Function:      function(event),
			ResponseState: "FAILED",
			FunctionResponse: ResponseBody{
				Body: map[string]TextBody{"TEXT": {Body: string(body)}},
			},
		},
	}
}

func actionGroup(event AgentEvent) string {
	if event.ActionGroup == "" {
		return "hygiene_scan"
	}
	return event.ActionGroup
}

func function(event AgentEvent) string {
	if event.Function == "" {
		return "run_scan"
	}
	return event.Function
}
