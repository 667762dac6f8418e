package claim

import "time"

// RunStatus is the lifecycle state of a Run, mirroring the Assistants-API
// state machine: queued -> in_progress -> (requires_action -> in_progress)*
// -> {completed, failed, cancelled, expired}.
type RunStatus string

const (
	RunQueued         RunStatus = "queued"
	RunInProgress     RunStatus = "in_progress"
	RunRequiresAction RunStatus = "requires_action"
	RunCompleted      RunStatus = "completed"
	RunFailed         RunStatus = "failed"
	RunCancelled      RunStatus = "cancelled"
	RunExpired        RunStatus = "expired"
)

// Terminal reports whether status admits no further transitions.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunFailed, RunCancelled, RunExpired:
		return true
	default:
		return false
	}
}

// TokenUsage is the prompt/completion/total token count for one LLM call, or
// the sum of several.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Add returns the element-wise sum of u and other.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
	}
}

// Thread is a durable conversation: an ordered, append-only Messages log
// plus the sequence of Runs driven against it.
type Thread struct {
	ThreadID  string
	ClaimID   string
	Messages  []Message
	CreatedAt time.Time
}

// Run is one turn of the thread/run driver's state machine (spec.md §4.2):
// a single request to the remote agent service to advance a Thread,
// possibly pausing on requires_action for tool submission.
type Run struct {
	RunID     string
	ThreadID  string
	AgentName string
	Status    RunStatus
	// PendingToolCalls holds the tool calls awaiting submission while Status
	// is RunRequiresAction. Empty otherwise.
	PendingToolCalls []ToolCall
	Usage            TokenUsage
	FailureReason    string
	StartedAt        time.Time
	EndedAt          time.Time
}
