package threadrun

import (
	"context"
	"errors"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/clarion-insurance/claims-orchestrator/claim"
)

// ThreadsAPI captures the subset of the OpenAI SDK's Beta Assistants API
// surface the OpenAI-backed AgentService needs, letting tests substitute a
// fake without depending on the concrete SDK client.
type ThreadsAPI interface {
	NewThread(ctx context.Context, body sdk.BetaThreadNewParams, opts ...option.RequestOption) (*sdk.Thread, error)
	NewMessage(ctx context.Context, threadID string, body sdk.BetaThreadMessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
	ListMessages(ctx context.Context, threadID string, query sdk.BetaThreadMessageListParams, opts ...option.RequestOption) ([]sdk.Message, error)
	NewRun(ctx context.Context, threadID string, body sdk.BetaThreadRunNewParams, opts ...option.RequestOption) (*sdk.Run, error)
	GetRun(ctx context.Context, threadID, runID string, opts ...option.RequestOption) (*sdk.Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, body sdk.BetaThreadRunSubmitToolOutputsParams, opts ...option.RequestOption) (*sdk.Run, error)
	CancelRun(ctx context.Context, threadID, runID string, opts ...option.RequestOption) (*sdk.Run, error)
}

// OpenAIService adapts ThreadsAPI to the driver's AgentService interface.
type OpenAIService struct {
	api ThreadsAPI
}

// NewOpenAIService wraps api for use as a Driver's AgentService.
func NewOpenAIService(api ThreadsAPI) *OpenAIService {
	return &OpenAIService{api: api}
}

var _ AgentService = (*OpenAIService)(nil)

// CreateOrReuseThread returns threadID unchanged if non-empty, otherwise
// creates a new thread on the remote service.
func (s *OpenAIService) CreateOrReuseThread(ctx context.Context, threadID string) (string, error) {
	if threadID != "" {
		return threadID, nil
	}
	thread, err := s.api.NewThread(ctx, sdk.BetaThreadNewParams{})
	if err != nil {
		return "", err
	}
	return thread.ID, nil
}

// PostMessage appends a user message to the thread.
func (s *OpenAIService) PostMessage(ctx context.Context, threadID, content string) error {
	_, err := s.api.NewMessage(ctx, threadID, sdk.BetaThreadMessageNewParams{
		Role:    sdk.BetaThreadMessageNewParamsRoleUser,
		Content: sdk.BetaThreadMessageNewParamsContentUnion{OfString: sdk.String(content)},
	})
	return err
}

// StartRun starts a run against agentRemoteID, forwarding userToken as an
// on-behalf-of credential. toolChoice is not sent to the service, so the run
// uses the agent's own tool-choice setting. An empty agentRemoteID fails
// with ErrMissingAssistant.
func (s *OpenAIService) StartRun(ctx context.Context, threadID, agentRemoteID, toolChoice, userToken string) (string, error) {
	if agentRemoteID == "" {
		return "", ErrMissingAssistant
	}
	params := sdk.BetaThreadRunNewParams{AssistantID: agentRemoteID}
	opts := requestOptionsFor(userToken)
	run, err := s.api.NewRun(ctx, threadID, params, opts...)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// PollRun fetches the current run status and, when requires_action, the
// pending tool calls.
func (s *OpenAIService) PollRun(ctx context.Context, threadID, runID string) (RunSnapshot, error) {
	run, err := s.api.GetRun(ctx, threadID, runID)
	if err != nil {
		return RunSnapshot{}, err
	}
	return translateRun(run), nil
}

// SubmitToolOutputs submits every tool result in one request.
func (s *OpenAIService) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolSubmission) error {
	toolOutputs := make([]sdk.BetaThreadRunSubmitToolOutputsParamsToolOutput, 0, len(outputs))
	for _, o := range outputs {
		toolOutputs = append(toolOutputs, sdk.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: sdk.String(o.CallID),
			Output:     sdk.String(o.Output),
		})
	}
	_, err := s.api.SubmitToolOutputs(ctx, threadID, runID, sdk.BetaThreadRunSubmitToolOutputsParams{
		ToolOutputs: toolOutputs,
	})
	return err
}

// CancelRun issues a best-effort cancel and returns the service's error
// unchanged; Driver.Run ignores it since it is already failing the run with
// TimeoutError.
func (s *OpenAIService) CancelRun(ctx context.Context, threadID, runID string) error {
	_, err := s.api.CancelRun(ctx, threadID, runID)
	return err
}

// MessagesSince lists thread messages and keeps only those created at or
// after since, the turn-start watermark, compared at the service's
// one-second timestamp resolution.
func (s *OpenAIService) MessagesSince(ctx context.Context, threadID string, since time.Time) ([]claim.Message, error) {
	msgs, err := s.api.ListMessages(ctx, threadID, sdk.BetaThreadMessageListParams{})
	if err != nil {
		return nil, err
	}

	cutoff := since.Truncate(time.Second)
	var out []claim.Message
	for _, m := range msgs {
		if time.Unix(m.CreatedAt, 0).Before(cutoff) {
			continue
		}
		out = append(out, translateMessage(m))
	}
	return out, nil
}

func requestOptionsFor(userToken string) []option.RequestOption {
	if userToken == "" {
		return nil
	}
	return []option.RequestOption{option.WithHeader("Authorization", "Bearer "+userToken)}
}

func translateRun(run *sdk.Run) RunSnapshot {
	snap := RunSnapshot{Status: translateStatus(string(run.Status))}
	snap.Usage = claim.TokenUsage{
		PromptTokens:     int(run.Usage.PromptTokens),
		CompletionTokens: int(run.Usage.CompletionTokens),
		TotalTokens:      int(run.Usage.TotalTokens),
	}
	if run.LastError.Message != "" {
		snap.LastError = run.LastError.Message
	}
	if run.RequiredAction.SubmitToolOutputs.ToolCalls != nil {
		for _, tc := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
			snap.PendingToolCalls = append(snap.PendingToolCalls, claim.ToolCall{
				CallID:       tc.ID,
				FunctionName: tc.Function.Name,
				Arguments:    []byte(tc.Function.Arguments),
			})
		}
	}
	return snap
}

func translateStatus(status string) claim.RunStatus {
	switch status {
	case "queued":
		return claim.RunQueued
	case "in_progress":
		return claim.RunInProgress
	case "requires_action":
		return claim.RunRequiresAction
	case "completed":
		return claim.RunCompleted
	case "cancelled":
		return claim.RunCancelled
	case "expired":
		return claim.RunExpired
	default:
		return claim.RunFailed
	}
}

func translateMessage(m sdk.Message) claim.Message {
	role := claim.RoleAssistant
	if string(m.Role) == "user" {
		role = claim.RoleUser
	}
	msg := claim.Message{Role: role}
	for _, c := range m.Content {
		if c.Type == "text" {
			msg.Parts = append(msg.Parts, claim.ContentPart{Type: "text", Value: c.Text.Value})
		}
	}
	return msg
}

// ErrMissingAssistant is returned when StartRun is invoked without a
// resolved agent remote ID — the registry lookup must happen before the
// driver is called.
var ErrMissingAssistant = errors.New("threadrun: agent remote id is required")
