package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/google/uuid"
)

// AgentAPI is the minimal interface for Bedrock agent invocation.
type AgentAPI interface {
	InvokeAgent(ctx context.Context, input *bedrockagentruntime.InvokeAgentInput, opts ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.InvokeAgentOutput, error)
}

// Narrator turns scan context into a prose report by invoking a Bedrock
// agent and collecting its streamed completion.
type Narrator struct {
	client       AgentAPI
	agentID      string
	agentAliasID string
}

// NewNarrator creates a narrator for the given agent. Returns an error when
// the agent ID is missing, so callers can fall back to a plain rendering.
func NewNarrator(client AgentAPI, agentID, agentAliasID string) (*Narrator, error) {
	if agentID == "" {
		return nil, fmt.Errorf("narrative agent not configured")
	}
	if agentAliasID == "" {
		agentAliasID = "TSTALIASID"
	}
	return &Narrator{client: client, agentID: agentID, agentAliasID: agentAliasID}, nil
}

// Narrate asks the agent for a daily or weekly cloud report and returns the
// assembled completion text.
func (n *Narrator) Narrate(ctx context.Context, reportType string) (string, error) {
	out, err := n.client.InvokeAgent(ctx, &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(n.agentID),
		AgentAliasId: aws.String(n.agentAliasID),
		SessionId:    aws.String(uuid.NewString()),
		InputText:    aws.String(narrativePrompt(reportType)),
	})
	if err != nil {
		return "", fmt.Errorf("invoke agent: %w", err)
	}

	stream := out.GetStream()
	defer stream.Close()

	var b strings.Builder
	for event := range stream.Events() {
		if chunk, ok := event.(*agenttypes.ResponseStreamMemberChunk); ok {
			b.Write(chunk.Value.Bytes)
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("read agent completion: %w", err)
	}

	completion := strings.TrimSpace(b.String())
	if completion == "" {
		completion = "(No report content generated.)"
	}
	return completion, nil
}

// narrativePrompt is the fixed instruction sent to the supervisor agent.
func narrativePrompt(reportType string) string {
	return fmt.Sprintf("Generate a %s cloud report for this AWS account. Include: "+
		"1) Cost optimization opportunities (use CostOptimizationAgent). "+
		"2) Security issues from Trusted Advisor (use SecurityAgent). "+
		"3) Hygiene findings – unused EBS, snapshots, EIPs, idle NAT/ALB, empty log groups (use HygieneAgent). "+
		"Format as clear sections with bullet points. Do not include internal reasoning; output only the final report.",
		reportType)
}
