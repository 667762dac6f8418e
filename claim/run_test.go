package claim_test

import (
	"testing"

	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/stretchr/testify/require"
)

func TestRunStatusTerminal(t *testing.T) {
	terminal := []claim.RunStatus{claim.RunCompleted, claim.RunFailed, claim.RunCancelled, claim.RunExpired}
	for _, s := range terminal {
		require.True(t, s.Terminal(), "%s should be terminal", s)
	}

	nonTerminal := []claim.RunStatus{claim.RunQueued, claim.RunInProgress, claim.RunRequiresAction}
	for _, s := range nonTerminal {
		require.False(t, s.Terminal(), "%s should not be terminal", s)
	}
}

func TestTokenUsageAdd(t *testing.T) {
	a := claim.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}
	b := claim.TokenUsage{PromptTokens: 2, CompletionTokens: 3, TotalTokens: 5}
	sum := a.Add(b)
	require.Equal(t, claim.TokenUsage{PromptTokens: 12, CompletionTokens: 8, TotalTokens: 20}, sum)
}
