// Package specialists implements the specialist delegation adapters (C3):
// per-specialist prompt shaping, delegation to the thread/run driver, and
// post-processing (soft-failure detection and fallback for the
// data-analytics specialist, query annotation, uniform error framing).
package specialists

import (
	"context"
	"fmt"
	"time"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/threadrun"
)

// Default poll cadence and deadline for a delegated specialist turn. The
// orchestrator may override these per call by constructing Input directly
// instead of going through Adapter.Invoke.
const (
	defaultPollInterval    = 500 * time.Millisecond
	defaultMaxPollDuration = 2 * time.Minute
)

// UsageRecorder receives the prompt/completion token counts consumed by one
// specialist delegation. The orchestrator wires this to the usage tracker
// (spec.md §4.6 record_token_usage); adapter-level tests omit it when usage
// capture is not under test. Kept as a plain function type rather than an
// import of the usage package so specialists has no dependency on C6.
type UsageRecorder func(promptTokens, completionTokens int)

// PromptBuilder constructs a specialist-specific prompt from the claim
// under assessment. Different specialists need different framing: the
// policy checker is told which claim fields to include and reminded to
// search by claim type; the data-analytics specialist gets a terse
// natural-language query derived from the claim; and so on.
type PromptBuilder func(c claim.Claim) string

// Adapter exposes one specialist as a delegation target for the supervisor.
type Adapter struct {
	// Name is the specialist's registry key (e.g. "risk_analyst").
	Name string
	// DisplayName is used in the uniform error message
	// ("Error from <DisplayName>: ...").
	DisplayName string
	// BuildPrompt constructs the specialist-specific prompt for a claim.
	BuildPrompt PromptBuilder
	// ToolChoice is passed to the driver as Input.ToolChoice. NewAdapters
	// leaves it empty, and OpenAIService.StartRun does not send it to the
	// service.
	ToolChoice string
	// IsDataAnalytics enables soft-failure detection and the fallback
	// pipeline; only the data-analytics specialist sets this.
	IsDataAnalytics bool
	// Fallback is consulted by the fallback pipeline when IsDataAnalytics
	// is set. May be nil, in which case the pipeline goes straight to
	// synthesized demo data.
	Fallback *SQLFallback

	registry *agentregistry.Registry
	driver   *threadrun.Driver
}

// NewAdapter constructs an Adapter wired to reg for specialist lookup and
// driver for delegation.
func NewAdapter(name, displayName string, build PromptBuilder, reg *agentregistry.Registry, driver *threadrun.Driver) *Adapter {
	return &Adapter{
		Name:        name,
		DisplayName: displayName,
		BuildPrompt: build,
		registry:    reg,
		driver:      driver,
	}
}

// Invoke runs the full delegation adapter flow for one claim: registry
// lookup, prompt construction, delegation to the thread/run driver,
// extraction of the last assistant message, and post-processing.
//
// Invoke never returns a Go error for specialist-side failures: any
// exception-equivalent is caught and converted to the string
// "Error from <DisplayName>: <message>" so the tool call always returns a
// string to the supervisor's run (spec.md §4.3 Failure semantics).
func (a *Adapter) Invoke(ctx context.Context, c claim.Claim, threadID string, recorders ...UsageRecorder) (string, error) {
	entry, err := a.registry.Lookup(a.Name)
	if err != nil {
		return fmt.Sprintf("Error: %s agent not available", a.DisplayName), nil
	}

	var prompt, fabricQuery string
	if a.IsDataAnalytics {
		fabricQuery = FabricQuery(c.ClaimantID, c.ClaimType, c.State)
		prompt = fabricQuery
	} else {
		prompt = a.BuildPrompt(c)
	}

	out, err := a.driver.Run(ctx, threadrun.Input{
		AgentRemoteID:   entry.RemoteID,
		UserMessage:     prompt,
		ThreadID:        threadID,
		Functions:       entry.ToolFunctions,
		ToolChoice:      a.ToolChoice,
		UserToken:       c.UserToken,
		PollInterval:    defaultPollInterval,
		MaxPollDuration: defaultMaxPollDuration,
	})
	if err != nil {
		return fmt.Sprintf("Error from %s: %s", a.DisplayName, err), nil
	}
	recordUsage(recorders, out.Usage)

	content := lastAssistantText(out.Messages)

	if !a.IsDataAnalytics {
		return content, nil
	}

	if IsSoftFailure(content) {
		fallbackContent := RunFallbackPipeline(ctx, a.Fallback, c.ClaimantID, c.ClaimType, c.State, c.ClaimantName)
		return WithQueryHeader(fabricQuery, fallbackContent), nil
	}
	return WithQueryHeader(fabricQuery, content), nil
}

func recordUsage(recorders []UsageRecorder, u claim.TokenUsage) {
	for _, rec := range recorders {
		if rec != nil {
			rec(u.PromptTokens, u.CompletionTokens)
		}
	}
}

func lastAssistantText(messages []claim.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == claim.RoleAssistant {
			return messages[i].Normalize()
		}
	}
	return ""
}
