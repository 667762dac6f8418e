package execstore

import (
	"context"
	"sort"
	"sync"

	"github.com/clarion-insurance/claims-orchestrator/claim"
)

// MemoryStore is an in-memory Store, useful for tests and local
// development without a MongoDB instance. Safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	executions map[string]claim.AgentExecution
	tokens     []claim.TokenUsageRecord
	agentDefs  map[string]claim.AgentDefinition
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		executions: make(map[string]claim.AgentExecution),
		agentDefs:  make(map[string]claim.AgentDefinition),
	}
}

func (m *MemoryStore) SaveExecution(ctx context.Context, record claim.AgentExecution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executions[record.ExecutionID] = record
	return nil
}

func (m *MemoryStore) GetExecution(ctx context.Context, executionID string) (claim.AgentExecution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.executions[executionID]
	if !ok {
		return claim.AgentExecution{}, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryStore) ListExecutions(ctx context.Context, filters ExecutionFilters, limit int) ([]claim.AgentExecution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []claim.AgentExecution
	for _, rec := range m.executions {
		if filters.ClaimID != "" && rec.ClaimID != filters.ClaimID {
			continue
		}
		if filters.Status != "" && rec.Status != filters.Status {
			continue
		}
		if !filters.Since.IsZero() && rec.StartedAt.Before(filters.Since) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) GetClaimHistory(ctx context.Context, claimID string) ([]claim.AgentExecution, error) {
	return m.ListExecutions(ctx, ExecutionFilters{ClaimID: claimID}, 0)
}

func (m *MemoryStore) SaveTokenUsage(ctx context.Context, record claim.TokenUsageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = append(m.tokens, record)
	return nil
}

func (m *MemoryStore) TokenUsageForClaim(ctx context.Context, claimID string) ([]claim.TokenUsageRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []claim.TokenUsageRecord
	for _, r := range m.tokens {
		if r.ClaimID == claimID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) SaveAgentDefinition(ctx context.Context, def claim.AgentDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agentDefs[def.Name] = def
	return nil
}

func (m *MemoryStore) GetAgentDefinition(ctx context.Context, name string) (claim.AgentDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.agentDefs[name]
	if !ok {
		return claim.AgentDefinition{}, ErrNotFound
	}
	return def, nil
}

func (m *MemoryStore) ListAgentDefinitions(ctx context.Context, filters AgentDefinitionFilters) ([]claim.AgentDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []claim.AgentDefinition
	for _, def := range m.agentDefs {
		if filters.Name != "" && def.Name != filters.Name {
			continue
		}
		if filters.IsActive != nil && def.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, def)
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
