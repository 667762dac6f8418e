package usage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/usage"
)

func TestRateForKnownModel(t *testing.T) {
	rate, known := usage.RateFor("gpt-4o")
	require.True(t, known)
	require.Equal(t, 0.005, rate.PromptPer1K)
	require.Equal(t, 0.015, rate.CompletionPer1K)
}

func TestRateForUnknownModelFallsBackToGPT4oMini(t *testing.T) {
	fallback, _ := usage.RateFor("gpt-4o-mini")
	rate, known := usage.RateFor("some-future-model")
	require.False(t, known)
	require.Equal(t, fallback, rate)
}

func TestCostComputation(t *testing.T) {
	rate := usage.Rate{PromptPer1K: 0.01, CompletionPer1K: 0.02}
	promptCost, completionCost, totalCost := usage.Cost(rate, 1000, 500)
	require.InDelta(t, 0.01, promptCost, 0.0001)
	require.InDelta(t, 0.01, completionCost, 0.0001)
	require.InDelta(t, 0.02, totalCost, 0.0001)
}

func TestEmbeddingModelsHaveZeroCompletionRate(t *testing.T) {
	for _, model := range []string{"text-embedding-3-small", "text-embedding-3-large", "text-embedding-ada-002"} {
		rate, known := usage.RateFor(model)
		require.True(t, known, model)
		require.Zero(t, rate.CompletionPer1K, model)
	}
}
