// Package execstore implements the execution store (C6 persistence
// collaborator): durable storage for AgentExecution records, token usage
// records, and AgentDefinition configuration, with an in-memory
// implementation for tests/local development and a MongoDB-backed one for
// production, standing in for the source's Cosmos DB store.
package execstore

import (
	"context"
	"time"

	"github.com/clarion-insurance/claims-orchestrator/claim"
)

// ExecutionFilters narrows ListExecutions; zero-valued fields are ignored.
type ExecutionFilters struct {
	ClaimID string
	Status  claim.RunStatus
	Since   time.Time
}

// AgentDefinitionFilters narrows ListAgentDefinitions; zero-valued fields
// are ignored.
type AgentDefinitionFilters struct {
	Name     string
	IsActive *bool
}

// Store is the full execution-store contract (spec.md §6.1): executions,
// token usage, and agent definitions, partitioned by ExecutionID for
// executions and by a synthetic RecordID for token records.
type Store interface {
	SaveExecution(ctx context.Context, record claim.AgentExecution) error
	GetExecution(ctx context.Context, executionID string) (claim.AgentExecution, error)
	ListExecutions(ctx context.Context, filters ExecutionFilters, limit int) ([]claim.AgentExecution, error)
	GetClaimHistory(ctx context.Context, claimID string) ([]claim.AgentExecution, error)

	SaveTokenUsage(ctx context.Context, record claim.TokenUsageRecord) error
	TokenUsageForClaim(ctx context.Context, claimID string) ([]claim.TokenUsageRecord, error)

	SaveAgentDefinition(ctx context.Context, def claim.AgentDefinition) error
	GetAgentDefinition(ctx context.Context, name string) (claim.AgentDefinition, error)
	ListAgentDefinitions(ctx context.Context, filters AgentDefinitionFilters) ([]claim.AgentDefinition, error)
}

// ErrNotFound is returned by single-record lookups (GetExecution,
// GetAgentDefinition) when no matching record exists.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "execstore: record not found" }
