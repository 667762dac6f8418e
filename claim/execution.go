package claim

import "time"

// AgentStepExecution records one specialist invocation made by the
// supervisor during a single AgentExecution: the delegation call, its
// result text, and the token usage it consumed.
type AgentStepExecution struct {
	StepID     string
	AgentName  string
	Input      string
	Output     string
	TokenUsage TokenUsage
	Error      string
	StartedAt  time.Time
	EndedAt    time.Time
}

// AgentExecution is the full record of one orchestration run over a Claim:
// every specialist step taken, the final synthesized response, and the
// aggregated cost.
//
// Invariant (spec.md §3.3.2 / §8): TotalTokens equals the sum of every
// step's TokenUsage.TotalTokens, and AgentsInvoked lists each AgentName that
// appears in Steps exactly once, in first-invocation order.
type AgentExecution struct {
	ExecutionID    string
	ClaimID        string
	ThreadID       string
	Steps          []AgentStepExecution
	FinalResponse  string
	AgentsInvoked  []string
	TotalTokens    TokenUsage
	TotalCostUSD   float64
	StartedAt      time.Time
	EndedAt        time.Time
	Status         RunStatus
}

// Recompute derives TotalTokens and AgentsInvoked from Steps, restoring the
// invariant after Steps is mutated directly (e.g. by an execution store
// decoder). It does not touch TotalCostUSD, which depends on the pricing
// table and is computed by the usage package.
func (e *AgentExecution) Recompute() {
	var total TokenUsage
	seen := make(map[string]bool, len(e.Steps))
	invoked := make([]string, 0, len(e.Steps))
	for _, step := range e.Steps {
		total = total.Add(step.TokenUsage)
		if !seen[step.AgentName] {
			seen[step.AgentName] = true
			invoked = append(invoked, step.AgentName)
		}
	}
	e.TotalTokens = total
	e.AgentsInvoked = invoked
}

// AgentRunSummary is a lightweight read-model projection of an
// AgentExecution, built for listing/dashboard views that don't need full
// step detail.
type AgentRunSummary struct {
	ExecutionID string
	ClaimID     string
	AgentType   string
	Status      RunStatus
	DurationMS  int64
	Tokens      TokenUsage
}

// Summarize projects e into its lightweight read-model form. AgentType is
// the supervisor's own name when the execution invoked no specialists, and
// the last specialist invoked otherwise, matching the dashboard's
// "who mattered most" convention.
func (e AgentExecution) Summarize(supervisorName string) AgentRunSummary {
	agentType := supervisorName
	if len(e.AgentsInvoked) > 0 {
		agentType = e.AgentsInvoked[len(e.AgentsInvoked)-1]
	}
	return AgentRunSummary{
		ExecutionID: e.ExecutionID,
		ClaimID:     e.ClaimID,
		AgentType:   agentType,
		Status:      e.Status,
		DurationMS:  e.EndedAt.Sub(e.StartedAt).Milliseconds(),
		Tokens:      e.TotalTokens,
	}
}
