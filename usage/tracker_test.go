package usage_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/usage"
)

type memStore struct {
	mu      sync.Mutex
	records []claim.TokenUsageRecord
}

func (m *memStore) SaveTokenUsage(ctx context.Context, record claim.TokenUsageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memStore) TokenUsageForClaim(ctx context.Context, claimID string) ([]claim.TokenUsageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []claim.TokenUsageRecord
	for _, r := range m.records {
		if r.ClaimID == claimID {
			out = append(out, r)
		}
	}
	return out, nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "rec_" + string(rune('a'+n))
	}
}

func TestRecordTokenUsageComputesCostAndPersists(t *testing.T) {
	store := &memStore{}
	tracker := usage.NewTracker(store, nil, sequentialIDs())
	scope := usage.NewScope("CLM-1", "EXEC-1")

	record := tracker.RecordTokenUsage(context.Background(), scope, "gpt-4o", 1000, 500, "risk_analyst", "completion")
	require.Equal(t, 1500, record.Usage.TotalTokens)
	require.InDelta(t, 0.005+0.0075, record.TotalCostUSD, 0.0001)
	require.Len(t, store.records, 1)
	require.Len(t, scope.Entries(), 1)
}

func TestRecordTokenUsageFallsBackForUnknownModel(t *testing.T) {
	store := &memStore{}
	tracker := usage.NewTracker(store, nil, sequentialIDs())
	scope := usage.NewScope("CLM-2", "EXEC-2")

	record := tracker.RecordTokenUsage(context.Background(), scope, "some-future-model", 1000, 1000, "claim_assessor", "completion")
	fallbackRate, _ := usage.RateFor("gpt-4o-mini")
	_, _, expectedCost := usage.Cost(fallbackRate, 1000, 1000)
	require.InDelta(t, expectedCost, record.TotalCostUSD, 0.0001)
}

func TestGetClaimTokenSummaryAggregates(t *testing.T) {
	store := &memStore{}
	tracker := usage.NewTracker(store, nil, sequentialIDs())
	scope := usage.NewScope("CLM-3", "EXEC-3")

	tracker.RecordTokenUsage(context.Background(), scope, "gpt-4o", 100, 50, "claim_assessor", "completion")
	tracker.RecordTokenUsage(context.Background(), scope, "gpt-4o-mini", 200, 100, "risk_analyst", "completion")

	summary, err := tracker.GetClaimTokenSummary(context.Background(), "CLM-3")
	require.NoError(t, err)
	require.Equal(t, 2, summary.TotalCalls)
	require.Equal(t, 450, summary.TotalTokens.TotalTokens)
	require.Contains(t, summary.ByAgent, "claim_assessor")
	require.Contains(t, summary.ByAgent, "risk_analyst")
}

func TestGetClaimTokenSummaryIgnoresOtherClaims(t *testing.T) {
	store := &memStore{}
	tracker := usage.NewTracker(store, nil, sequentialIDs())
	scope1 := usage.NewScope("CLM-4", "EXEC-4")
	scope2 := usage.NewScope("CLM-5", "EXEC-5")

	tracker.RecordTokenUsage(context.Background(), scope1, "gpt-4o", 100, 50, "claim_assessor", "completion")
	tracker.RecordTokenUsage(context.Background(), scope2, "gpt-4o", 999, 999, "claim_assessor", "completion")

	summary, err := tracker.GetClaimTokenSummary(context.Background(), "CLM-4")
	require.NoError(t, err)
	require.Equal(t, 1, summary.TotalCalls)
}
