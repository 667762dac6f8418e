// Package orchestrator implements the supervisor orchestrator (C4): one
// supervisor turn per claim, letting the supervisor call specialists in
// whatever order its instructions dictate, then handing the result to the
// trace builder (C5).
package orchestrator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/specialists"
	"github.com/clarion-insurance/claims-orchestrator/threadrun"
	"github.com/clarion-insurance/claims-orchestrator/trace"
)

const (
	defaultPollInterval    = 500 * time.Millisecond
	defaultMaxPollDuration = 3 * time.Minute
)

// Result is what ProcessClaim returns: the chronological trace, usage for
// the supervisor turn, and the thread the run executed on (needed by
// ProcessContinue for conversational drill-downs).
type Result struct {
	Chunks   []trace.Chunk
	Error    *trace.ErrorChunk
	Usage    claim.TokenUsage
	ThreadID string
}

// Orchestrator runs supervisor turns against a registry of specialist
// adapters and a thread/run driver.
type Orchestrator struct {
	registry         *agentregistry.Registry
	driver           *threadrun.Driver
	adapters         specialists.Adapters
	supervisorRemote func() (string, error)
}

// New constructs an Orchestrator. remoteID resolves the supervisor's
// remote agent id on each call (typically a closure over the registry
// entry registered for the supervisor at deploy time), so the
// orchestrator never hardcodes it.
func New(reg *agentregistry.Registry, driver *threadrun.Driver, adapters specialists.Adapters, remoteID func() (string, error)) *Orchestrator {
	return &Orchestrator{registry: reg, driver: driver, adapters: adapters, supervisorRemote: remoteID}
}

// UsageRecorder receives one specialist or supervisor turn's token usage,
// tagged with the agent name and operation type (spec.md §4.6
// record_token_usage's agent_type/operation_type parameters). The caller
// wires this to a usage.Tracker bound to a per-run usage.Scope; nil disables
// usage capture entirely (e.g. in tests that don't exercise C6).
type UsageRecorder func(agentName, operationType string, promptTokens, completionTokens int)

// ProcessClaim runs one supervisor turn for c and converts its output into
// a chronological trace. analyticsEnabled selects the with-analytics
// workflow variant (claims_data_analyst exposed as a callable tool) versus
// the standard three-specialist variant (spec.md §4.4 Workflow variants).
// rec, if non-nil, is invoked once per specialist delegation and once for
// the supervisor's own turn.
func (o *Orchestrator) ProcessClaim(ctx context.Context, c claim.Claim, analyticsEnabled bool, rec UsageRecorder) (Result, error) {
	remoteID, err := o.supervisorRemote()
	if err != nil {
		return Result{}, err
	}

	funcs := o.buildFunctions(c, analyticsEnabled, rec)

	out, err := o.driver.Run(ctx, threadrun.Input{
		AgentRemoteID:   remoteID,
		UserMessage:     buildUserMessage(c, analyticsEnabled),
		Functions:       funcs,
		UserToken:       c.UserToken,
		PollInterval:    defaultPollInterval,
		MaxPollDuration: defaultMaxPollDuration,
	})
	if err != nil {
		return Result{}, err
	}
	if rec != nil {
		rec("supervisor", "supervisor_synthesis", out.Usage.PromptTokens, out.Usage.CompletionTokens)
	}

	chunks, errChunk := trace.Build(out)
	return Result{Chunks: chunks, Error: errChunk, Usage: out.Usage, ThreadID: out.ThreadID}, nil
}

// ProcessContinue runs a single-specialist multi-turn interaction on an
// existing thread (spec.md §4.4 process_continue) — used for
// conversational drill-downs such as the data-analytics specialist asking
// the user to confirm a query.
func (o *Orchestrator) ProcessContinue(ctx context.Context, agentRemoteID, threadID, message, userToken string) ([]claim.Message, error) {
	out, err := o.driver.Run(ctx, threadrun.Input{
		AgentRemoteID:   agentRemoteID,
		UserMessage:     message,
		ThreadID:        threadID,
		UserToken:       userToken,
		PollInterval:    defaultPollInterval,
		MaxPollDuration: defaultMaxPollDuration,
	})
	if err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// buildFunctions maps tool-call function names to specialist delegation
// closures. The claim-shaped specialists' closures capture c directly rather
// than re-parsing the model-supplied argument string: the orchestrator
// already holds the canonical claim, and the adapter's prompt builders
// derive everything they need from it (spec.md §4.3 point 2). The
// communication agent's closure is the exception: it reads its draft
// request from the model-supplied arguments (communicationRequest).
func (o *Orchestrator) buildFunctions(c claim.Claim, analyticsEnabled bool, rec UsageRecorder) map[string]agentregistry.ToolFunc {
	forAgent := func(agentName string) specialists.UsageRecorder {
		if rec == nil {
			return nil
		}
		return func(promptTokens, completionTokens int) {
			rec(agentName, "specialist_delegation", promptTokens, completionTokens)
		}
	}

	funcs := map[string]agentregistry.ToolFunc{
		"call_claim_assessor": func(ctx context.Context, _ map[string]any) (string, error) {
			return o.adapters.ClaimAssessor.Invoke(ctx, c, "", forAgent(specialists.NameClaimAssessor))
		},
		"call_policy_checker": func(ctx context.Context, _ map[string]any) (string, error) {
			return o.adapters.PolicyChecker.Invoke(ctx, c, "", forAgent(specialists.NamePolicyChecker))
		},
		"call_risk_analyst": func(ctx context.Context, _ map[string]any) (string, error) {
			return o.adapters.RiskAnalyst.Invoke(ctx, c, "", forAgent(specialists.NameRiskAnalyst))
		},
		"call_communication_agent": func(ctx context.Context, args map[string]any) (string, error) {
			return o.adapters.InvokeCommunication(ctx, communicationRequest(args), "", forAgent(specialists.NameCommunication))
		},
	}
	if analyticsEnabled {
		funcs["call_claims_data_analyst"] = func(ctx context.Context, _ map[string]any) (string, error) {
			return o.adapters.DataAnalyst.Invoke(ctx, c, "", forAgent(specialists.NameDataAnalyst))
		}
	}
	return funcs
}

// communicationRequest recovers the free-text draft request the supervisor
// passed to the communication agent tool call: the "communication_request"
// string if present, else the "input" string (a bare-string argument), else
// the raw argument map re-serialized as JSON.
func communicationRequest(args map[string]any) string {
	if v, ok := args["communication_request"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if v, ok := args["input"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	return string(raw)
}
