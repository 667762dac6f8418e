// Package service implements the exposed interfaces (spec.md §6.2):
// process_claim, run_single_agent, continue_single_agent, and the
// auxiliary agent-registry and analytics operations. It is the top-level
// facade wiring C4 (orchestrator), C5 (trace), and C6 (usage tracking,
// execution persistence, evaluation) together for one orchestration run —
// spec.md's data flow "C4 synthesis → C5 trace → C6 persistence → caller".
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/evaluation"
	"github.com/clarion-insurance/claims-orchestrator/execstore"
	"github.com/clarion-insurance/claims-orchestrator/orchestrator"
	"github.com/clarion-insurance/claims-orchestrator/telemetry"
	"github.com/clarion-insurance/claims-orchestrator/trace"
	"github.com/clarion-insurance/claims-orchestrator/usage"
)

// ClaimOut is the result of ProcessClaim (spec.md §6.2
// "process_claim(claim) → ClaimOut{execution_id, final_decision,
// conversation_chronological, evaluation_results?}").
type ClaimOut struct {
	ExecutionID               string
	FinalDecision              string
	ConversationChronological []trace.Chunk
	EvaluationResult          *claim.EvaluationResult
}

// Service wires an Orchestrator to the C6 telemetry/persistence/evaluation
// collaborators. All fields are explicit dependencies; there are no
// package-level singletons (spec.md §9 redesign flag).
type Service struct {
	orchestrator    *orchestrator.Orchestrator
	registry        *agentregistry.Registry
	store           execstore.Store
	tracker         *usage.Tracker
	evaluator       evaluation.Evaluator
	evaluatorID     string
	modelDeployment string
	logger          telemetry.Logger
	newID           func() string
	now             func() time.Time
}

// Options configures a Service. Store and Evaluator may be nil (execution
// persistence and evaluation are best-effort and skipped when absent).
type Options struct {
	Orchestrator    *orchestrator.Orchestrator
	Registry        *agentregistry.Registry
	Store           execstore.Store
	Tracker         *usage.Tracker
	Evaluator       evaluation.Evaluator
	EvaluatorID     string
	ModelDeployment string
	Logger          telemetry.Logger
	NewID           func() string
	Now             func() time.Time
}

// New constructs a Service from opts, defaulting Logger to a no-op and Now
// to time.Now.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		orchestrator:    opts.Orchestrator,
		registry:        opts.Registry,
		store:           opts.Store,
		tracker:         opts.Tracker,
		evaluator:       opts.Evaluator,
		evaluatorID:     opts.EvaluatorID,
		modelDeployment: opts.ModelDeployment,
		logger:          logger,
		newID:           opts.NewID,
		now:             now,
	}
}

// ProcessClaim runs the full orchestration pipeline for c: a supervisor
// turn (C4), trace construction (C5), token-usage capture and execution
// persistence (C6), and — when an evaluator is configured — a post-run
// quality evaluation (spec.md §4.6 "Evaluation trigger").
func (s *Service) ProcessClaim(ctx context.Context, c claim.Claim, analyticsEnabled bool) (ClaimOut, error) {
	if err := c.Validate(); err != nil {
		return ClaimOut{}, err
	}

	executionID := s.newID()
	scope := usage.NewScope(c.ClaimID, executionID)
	startedAt := s.now()

	result, err := s.orchestrator.ProcessClaim(ctx, c, analyticsEnabled, s.recorderFor(ctx, scope))
	endedAt := s.now()
	if err != nil {
		s.persistFailure(ctx, executionID, c, startedAt, endedAt, err)
		return ClaimOut{}, err
	}

	execution := s.buildExecution(executionID, c, result, scope, startedAt, endedAt)
	s.persistExecution(ctx, execution)

	out := ClaimOut{
		ExecutionID:               executionID,
		FinalDecision:             execution.FinalResponse,
		ConversationChronological: result.Chunks,
	}

	if s.evaluator != nil && execution.Status == claim.RunCompleted {
		out.EvaluationResult = s.runEvaluation(ctx, result, c, executionID)
	}
	return out, nil
}

// RunSingleAgent sends userMessage to one agent on a new thread and returns
// the agent's messages (spec.md §6.2 run_single_agent) — used for
// diagnostics and single-specialist replay without a full supervisor turn.
// The returned usage is always zero and the thread id always empty, since
// ProcessContinue exposes neither.
func (s *Service) RunSingleAgent(ctx context.Context, agentRemoteID, userMessage, userToken string) ([]claim.Message, claim.TokenUsage, string, error) {
	messages, err := s.orchestrator.ProcessContinue(ctx, agentRemoteID, "", userMessage, userToken)
	if err != nil {
		return nil, claim.TokenUsage{}, "", err
	}
	return messages, claim.TokenUsage{}, "", nil
}

// ContinueSingleAgent resumes an existing thread with a follow-up message
// (spec.md §6.2 continue_single_agent).
func (s *Service) ContinueSingleAgent(ctx context.Context, agentRemoteID, threadID, message, userToken string) ([]claim.Message, error) {
	return s.orchestrator.ProcessContinue(ctx, agentRemoteID, threadID, message, userToken)
}

// ListAgents returns the names of every specialist currently registered
// (spec.md §6.2 auxiliary list_agents).
func (s *Service) ListAgents() []string {
	return s.registry.List()
}

// RegisterAgentDefinition persists a version-bumped AgentDefinition (spec.md
// §6.2 register_agent_definition) via the execution store.
func (s *Service) RegisterAgentDefinition(ctx context.Context, def claim.AgentDefinition) error {
	if s.store == nil {
		return fmt.Errorf("service: no execution store configured")
	}
	return s.store.SaveAgentDefinition(ctx, def)
}

// GetClaimExecutionHistory returns every persisted execution for claimID,
// most recent first (spec.md §6.2 get_claim_execution_history).
func (s *Service) GetClaimExecutionHistory(ctx context.Context, claimID string) ([]claim.AgentExecution, error) {
	if s.store == nil {
		return nil, fmt.Errorf("service: no execution store configured")
	}
	return s.store.GetClaimHistory(ctx, claimID)
}

// GetTokenAnalytics aggregates token usage for claimID (spec.md §6.2
// get_token_analytics, scoped here by claim rather than agent_type/days_back
// since the execution store partitions token records by claim and
// execution, not by calendar time).
func (s *Service) GetTokenAnalytics(ctx context.Context, claimID string) (usage.ClaimTokenSummary, error) {
	if s.tracker == nil {
		return usage.ClaimTokenSummary{}, fmt.Errorf("service: no usage tracker configured")
	}
	return s.tracker.GetClaimTokenSummary(ctx, claimID)
}

func (s *Service) recorderFor(ctx context.Context, scope *usage.Scope) orchestrator.UsageRecorder {
	if s.tracker == nil {
		return nil
	}
	return func(agentName, operationType string, promptTokens, completionTokens int) {
		s.tracker.RecordTokenUsage(ctx, scope, s.modelDeployment, promptTokens, completionTokens, agentName, operationType)
	}
}

func (s *Service) persistExecution(ctx context.Context, execution claim.AgentExecution) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveExecution(ctx, execution); err != nil {
		s.logger.Error(ctx, "failed to persist execution record", "execution_id", execution.ExecutionID, "claim_id", execution.ClaimID, "err", err)
	}
}

// persistFailure records a FAILED execution when the supervisor turn itself
// errors out before a trace could be built (spec.md §4.6 "status = FAILED
// with error_message on exception").
func (s *Service) persistFailure(ctx context.Context, executionID string, c claim.Claim, startedAt, endedAt time.Time, runErr error) {
	execution := claim.AgentExecution{
		ExecutionID:   executionID,
		ClaimID:       c.ClaimID,
		StartedAt:     startedAt,
		EndedAt:       endedAt,
		Status:        claim.RunFailed,
		FinalResponse: "error: " + runErr.Error(),
	}
	s.persistExecution(ctx, execution)
}

// buildExecution assembles the AgentExecution record for one completed run
// (spec.md §4.6 "Execution-record assembly"): one step per non-supervisor
// agent observed in the trace, token usage/cost summed from those steps
// only (claim.AgentExecution's documented invariant), and COMPLETED/FAILED
// status depending on whether the trace builder produced a final
// assessment.
func (s *Service) buildExecution(executionID string, c claim.Claim, result orchestrator.Result, scope *usage.Scope, startedAt, endedAt time.Time) claim.AgentExecution {
	specialistUsage := specialistEntries(scope.Entries())

	steps := make([]claim.AgentStepExecution, 0, len(result.Chunks))
	var totalCost float64
	idx := 0
	for _, chunk := range result.Chunks {
		if chunk.Source != "specialist" {
			continue
		}
		step := claim.AgentStepExecution{
			StepID:    fmt.Sprintf("%s-step-%d", executionID, idx+1),
			AgentName: chunk.AgentName,
			Output:    strings.Join(chunk.Messages, "\n"),
			StartedAt: startedAt,
			EndedAt:   endedAt,
		}
		if idx < len(specialistUsage) {
			e := specialistUsage[idx]
			step.TokenUsage = claim.TokenUsage{
				PromptTokens:     e.PromptTokens,
				CompletionTokens: e.CompletionTokens,
				TotalTokens:      e.PromptTokens + e.CompletionTokens,
			}
			rate, _ := usage.RateFor(e.ModelName)
			_, _, cost := usage.Cost(rate, e.PromptTokens, e.CompletionTokens)
			totalCost += cost
		}
		steps = append(steps, step)
		idx++
	}

	status := claim.RunCompleted
	var finalResponse string
	if result.Error != nil {
		status = claim.RunFailed
		finalResponse = result.Error.Message
	} else {
		finalResponse = finalAssessmentText(result.Chunks)
	}

	execution := claim.AgentExecution{
		ExecutionID:   executionID,
		ClaimID:       c.ClaimID,
		ThreadID:      result.ThreadID,
		Steps:         steps,
		FinalResponse: finalResponse,
		TotalCostUSD:  totalCost,
		StartedAt:     startedAt,
		EndedAt:       endedAt,
		Status:        status,
	}
	execution.Recompute()
	return execution
}

func specialistEntries(entries []usage.Entry) []usage.Entry {
	out := make([]usage.Entry, 0, len(entries))
	for _, e := range entries {
		if e.OperationType == "specialist_delegation" {
			out = append(out, e)
		}
	}
	return out
}

func finalAssessmentText(chunks []trace.Chunk) string {
	for i := len(chunks) - 1; i >= 0; i-- {
		if chunks[i].FinalAssessment {
			return strings.Join(chunks[i].Messages, "\n")
		}
	}
	return ""
}

// runEvaluation builds an evaluation request from the run's messages and
// invokes the configured evaluator, logging and swallowing any failure
// (spec.md §4.6 "Evaluation failures are logged and swallowed; they never
// fail the orchestration").
func (s *Service) runEvaluation(ctx context.Context, result orchestrator.Result, c claim.Claim, executionID string) *claim.EvaluationResult {
	messages := chunksToMessages(result.Chunks)
	req := evaluation.BuildRequest(messages, c)

	raw, err := s.evaluator.Evaluate(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "evaluation failed", "execution_id", executionID, "claim_id", c.ClaimID, "err", err)
		return nil
	}

	out := evaluation.AttachResult(raw, s.newID(), executionID, c.ClaimID, s.evaluatorID, s.now())
	if !out.Valid() {
		s.logger.Warn(ctx, "evaluation produced out-of-range scores, discarding", "execution_id", executionID)
		return nil
	}
	return &out
}

// chunksToMessages reconstructs a minimal message list from trace chunks so
// evaluation.BuildRequest can apply its first-user/last-assistant rule: the
// synthesized user prompt (not available this late) is represented by the
// leading placeholder chunk, and every supervisor chunk becomes an
// assistant message.
func chunksToMessages(chunks []trace.Chunk) []claim.Message {
	messages := make([]claim.Message, 0, len(chunks)+1)
	messages = append(messages, claim.Message{Role: claim.RoleUser, Text: "Process this insurance claim and provide an assessment."})
	for _, chunk := range chunks {
		role := claim.RoleAssistant
		if chunk.Source == "specialist" {
			role = claim.RoleTool
		}
		messages = append(messages, claim.Message{Role: role, Text: strings.Join(chunk.Messages, "\n")})
	}
	return messages
}
