// Package threadrun implements the thread/run driver (C2): one turn of
// conversation against a remote LLM-agent service, including manual tool
// dispatch and the queued→in_progress→requires_action→completed state
// machine.
package threadrun

import (
	"context"
	"time"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/claimerrors"
	"github.com/clarion-insurance/claims-orchestrator/telemetry"
)

// AgentService is the subset of the remote LLM-agent service the driver
// needs: thread/message/run lifecycle operations. Concrete bindings (e.g.
// OpenAIService) adapt a specific provider's SDK to this interface.
type AgentService interface {
	CreateOrReuseThread(ctx context.Context, threadID string) (string, error)
	PostMessage(ctx context.Context, threadID, content string) error
	StartRun(ctx context.Context, threadID, agentRemoteID string, toolChoice string, userToken string) (string, error)
	PollRun(ctx context.Context, threadID, runID string) (RunSnapshot, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolSubmission) error
	CancelRun(ctx context.Context, threadID, runID string) error
	MessagesSince(ctx context.Context, threadID string, since time.Time) ([]claim.Message, error)
}

// RunSnapshot is one poll observation of a remote run.
type RunSnapshot struct {
	Status           claim.RunStatus
	PendingToolCalls []claim.ToolCall
	Usage            claim.TokenUsage
	LastError        string
}

// ToolSubmission is one tool result submitted back to a run awaiting
// requires_action.
type ToolSubmission struct {
	CallID string
	Output string
}

// Input is the public contract for Run (spec.md §4.2).
type Input struct {
	AgentRemoteID   string
	UserMessage     string
	ThreadID        string
	Functions       map[string]agentregistry.ToolFunc
	ToolChoice      string
	UserToken       string
	PollInterval    time.Duration
	MaxPollDuration time.Duration
}

// ToolResultEvent records one tool call dispatched during a run, in the
// order the remote service surfaced it — the order the chronological trace
// (C5) replays.
type ToolResultEvent struct {
	FunctionName string
	CallID       string
	Arguments    string
	Output       string
}

// Output is what Run returns: the assistant messages produced, cumulative
// token usage, the tool results observed (in surfaced order), and the
// (possibly newly created) thread ID.
type Output struct {
	Messages    []claim.Message
	Usage       claim.TokenUsage
	ToolResults []ToolResultEvent
	ThreadID    string

	// FailureReason is non-empty when the run ended in a terminal
	// failed/cancelled/expired status rather than a normal completion. The
	// trace builder (C5) uses this to emit an ErrorChunk unconditionally,
	// rather than mistaking the synthesized Messages entry for a genuine
	// final assessment.
	FailureReason string
}

// Driver executes Run's state machine against an AgentService.
type Driver struct {
	svc     AgentService
	logger  telemetry.Logger
	tracer  telemetry.Tracer
	metrics telemetry.Metrics
}

// New constructs a Driver. Nil telemetry collaborators default to no-ops.
func New(svc AgentService, logger telemetry.Logger, tracer telemetry.Tracer, metrics telemetry.Metrics) *Driver {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	if tracer == nil {
		tracer = telemetry.NewNoopTracer()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Driver{svc: svc, logger: logger, tracer: tracer, metrics: metrics}
}

// Run executes one turn of conversation: create-or-reuse the thread, post
// the user message, start a run, then loop S3/S4 (poll / dispatch pending
// tool calls) until the run reaches a terminal status.
//
// A run that terminates in failed/cancelled/expired does not return an
// error for model-side failures: it synthesizes the documented error
// message and sets FailureReason so the trace builder emits an ErrorChunk
// rather than mistaking it for a final synthesis, while still returning
// whatever ToolResults were collected from earlier requires_action rounds
// in the same run (spec.md §4.2 Failure semantics). Run only returns a Go
// error for driver-level failures (deadline exceeded, transport errors
// from AgentService).
func (d *Driver) Run(ctx context.Context, in Input) (Output, error) {
	ctx, span := d.tracer.Start(ctx, "threadrun.Run")
	defer span.End()

	deadline := time.Now().Add(in.MaxPollDuration)
	turnStart := time.Now()

	threadID, err := d.svc.CreateOrReuseThread(ctx, in.ThreadID)
	if err != nil {
		return Output{}, err
	}
	if err := d.svc.PostMessage(ctx, threadID, in.UserMessage); err != nil {
		return Output{}, err
	}
	runID, err := d.svc.StartRun(ctx, threadID, in.AgentRemoteID, in.ToolChoice, in.UserToken)
	if err != nil {
		return Output{}, err
	}

	var toolResults []ToolResultEvent

	for {
		if in.MaxPollDuration > 0 && time.Now().After(deadline) {
			_ = d.svc.CancelRun(ctx, threadID, runID)
			d.metrics.IncCounter("threadrun.timeout", 1, "agent", in.AgentRemoteID)
			return Output{}, &claimerrors.TimeoutError{RunID: runID}
		}

		snap, err := d.svc.PollRun(ctx, threadID, runID)
		if err != nil {
			return Output{}, err
		}

		switch snap.Status {
		case claim.RunQueued, claim.RunInProgress:
			select {
			case <-ctx.Done():
				return Output{}, ctx.Err()
			case <-time.After(in.PollInterval):
			}
			continue

		case claim.RunRequiresAction:
			submissions := make([]ToolSubmission, 0, len(snap.PendingToolCalls))
			for _, call := range snap.PendingToolCalls {
				output := dispatchTool(ctx, in.Functions, call)
				submissions = append(submissions, ToolSubmission{CallID: call.CallID, Output: output})
				toolResults = append(toolResults, ToolResultEvent{
					FunctionName: call.FunctionName,
					CallID:       call.CallID,
					Arguments:    string(call.Arguments),
					Output:       output,
				})
			}
			if err := d.svc.SubmitToolOutputs(ctx, threadID, runID, submissions); err != nil {
				return Output{}, err
			}
			continue

		case claim.RunCompleted:
			messages, err := d.svc.MessagesSince(ctx, threadID, turnStart)
			if err != nil {
				return Output{}, err
			}
			return Output{
				Messages:    messages,
				Usage:       snap.Usage,
				ToolResults: toolResults,
				ThreadID:    threadID,
			}, nil

		default: // failed, cancelled, expired
			runErr := &claimerrors.RunFailedError{RunID: runID, Status: string(snap.Status), Reason: snap.LastError}
			d.logger.Warn(ctx, "run ended in terminal failure", "run_id", runID, "status", string(snap.Status), "err", runErr.Error())
			reason := "Agent run failed — " + snap.LastError
			return Output{
				Messages: []claim.Message{{
					Role: claim.RoleAssistant,
					Text: "Error: " + reason,
				}},
				Usage:         claim.TokenUsage{},
				ToolResults:   toolResults,
				ThreadID:      threadID,
				FailureReason: reason,
			}, nil
		}
	}
}
