package usage

import (
	"context"

	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/telemetry"
)

// Store persists token usage records. Implementations live in the
// execstore package (Mongo-backed and in-memory).
type Store interface {
	SaveTokenUsage(ctx context.Context, record claim.TokenUsageRecord) error
	TokenUsageForClaim(ctx context.Context, claimID string) ([]claim.TokenUsageRecord, error)
}

// Tracker turns recorded Scope entries into priced, persisted
// TokenUsageRecords and claim-level summaries.
type Tracker struct {
	store  Store
	logger telemetry.Logger
	newID  func() string
}

// NewTracker constructs a Tracker. logger defaults to a no-op; newID has no
// default and callers must supply one, since this package avoids any direct
// dependency on a UUID generator's global state (cmd/claimsdemo passes
// uuid.NewString).
func NewTracker(store Store, logger telemetry.Logger, newID func() string) *Tracker {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	return &Tracker{store: store, logger: logger, newID: newID}
}

// RecordTokenUsage accumulates one usage event into scope, computes its
// cost from the pricing table (falling back to gpt-4o-mini with a warning
// for unrecognized models), and persists the resulting record.
//
// A persistence failure is logged and swallowed (spec.md §4.6 Failure
// semantics: "a token record that fails to write does not abort the run").
func (t *Tracker) RecordTokenUsage(ctx context.Context, scope *Scope, modelName string, promptTokens, completionTokens int, agentName, operationType string) claim.TokenUsageRecord {
	rate, known := RateFor(modelName)
	if !known {
		t.logger.Warn(ctx, "unrecognized model for pricing, using fallback", "model", modelName, "fallback", fallbackModel)
	}

	scope.Record(Entry{
		AgentName:        agentName,
		ModelName:        modelName,
		OperationType:    operationType,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
	})

	promptCost, completionCost, totalCost := Cost(rate, promptTokens, completionTokens)
	record := claim.TokenUsageRecord{
		RecordID:    t.newID(),
		ClaimID:     scope.ClaimID,
		ExecutionID: scope.ExecutionID,
		AgentName:     agentName,
		ModelName:     modelName,
		OperationType: operationType,
		Usage: claim.TokenUsage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
		PromptCostUSD:     promptCost,
		CompletionCostUSD: completionCost,
		TotalCostUSD:      totalCost,
	}

	if t.store != nil {
		if err := t.store.SaveTokenUsage(ctx, record); err != nil {
			t.logger.Error(ctx, "failed to persist token usage record", "claim_id", scope.ClaimID, "err", err)
		}
	}
	return record
}

// ClaimTokenSummary aggregates every persisted record for claimID (spec.md
// §4.6 get_claim_token_summary).
type ClaimTokenSummary struct {
	TotalTokens claim.TokenUsage
	TotalCostUSD float64
	ByAgent      map[string]claim.TokenUsage
	ByOperation  map[string]claim.TokenUsage
	TotalCalls   int
}

// GetClaimTokenSummary aggregates all records on file for claimID.
func (t *Tracker) GetClaimTokenSummary(ctx context.Context, claimID string) (ClaimTokenSummary, error) {
	records, err := t.store.TokenUsageForClaim(ctx, claimID)
	if err != nil {
		return ClaimTokenSummary{}, err
	}

	summary := ClaimTokenSummary{
		ByAgent:     make(map[string]claim.TokenUsage),
		ByOperation: make(map[string]claim.TokenUsage),
	}
	for _, r := range records {
		summary.TotalTokens = summary.TotalTokens.Add(r.Usage)
		summary.TotalCostUSD += r.TotalCostUSD
		summary.ByAgent[r.AgentName] = summary.ByAgent[r.AgentName].Add(r.Usage)
		summary.ByOperation[r.OperationType] = summary.ByOperation[r.OperationType].Add(r.Usage)
		summary.TotalCalls++
	}
	return summary, nil
}
