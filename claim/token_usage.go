package claim

import "time"

// TokenUsageRecord is a durable record of one LLM call's cost, persisted
// independently of the AgentExecution it belongs to so the usage and
// execution stores can evolve separately (spec.md §4.6).
type TokenUsageRecord struct {
	RecordID      string
	ClaimID       string
	ExecutionID   string
	AgentName     string
	ModelName     string
	OperationType string
	Usage         TokenUsage
	PromptCostUSD float64
	CompletionCostUSD float64
	TotalCostUSD  float64
	RecordedAt    time.Time
}
