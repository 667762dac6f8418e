// Package trace implements the trace builder (C5): converting the opaque
// (messages, usage, tool results) triple a thread/run turn produces into a
// consumer-ready chronological stream keyed by agent name.
package trace

import (
	"strings"

	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/threadrun"
)

// processingPlaceholder is the leading supervisor chunk's fixed message,
// shown before any specialist has responded.
const processingPlaceholder = "Processing claim through specialist agents…"

// toolCallPrefix is stripped from a tool-call's function name to recover
// the specialist's registry name ("call_risk_analyst" -> "risk_analyst").
const toolCallPrefix = "call_"

// Chunk is one entry in the chronological trace: exactly one agent's
// contribution, in the order a reviewer would naturally read it.
type Chunk struct {
	AgentName       string
	Messages        []string
	Source          string
	FinalAssessment bool
}

// ErrorChunk is emitted in place of a final supervisor chunk when no final
// assistant text is available (spec.md §4.4 Failure semantics).
type ErrorChunk struct {
	Message string
}

// Build converts one supervisor turn's output into the chronological
// sequence: a leading placeholder supervisor chunk, one chunk per tool
// result in surfaced order, and a final supervisor chunk carrying the
// supervisor's last assistant message (or an ErrorChunk if none exists).
func Build(out threadrun.Output) ([]Chunk, *ErrorChunk) {
	chunks := make([]Chunk, 0, len(out.ToolResults)+2)
	chunks = append(chunks, Chunk{
		AgentName: "supervisor",
		Messages:  []string{processingPlaceholder},
		Source:    "supervisor",
	})

	for _, tr := range out.ToolResults {
		chunks = append(chunks, Chunk{
			AgentName: specialistName(tr.FunctionName),
			Messages:  []string{tr.Output},
			Source:    "specialist",
		})
	}

	if out.FailureReason != "" {
		return chunks, &ErrorChunk{Message: out.FailureReason}
	}

	finalText := lastAssistantText(out.Messages)
	if finalText == "" {
		return chunks, &ErrorChunk{Message: "no final assessment produced"}
	}

	chunks = append(chunks, Chunk{
		AgentName:       "supervisor",
		Messages:        []string{finalText},
		Source:          "supervisor",
		FinalAssessment: true,
	})
	return chunks, nil
}

func specialistName(functionName string) string {
	return strings.TrimPrefix(functionName, toolCallPrefix)
}

func lastAssistantText(messages []claim.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == claim.RoleAssistant {
			return messages[i].Normalize()
		}
	}
	return ""
}
