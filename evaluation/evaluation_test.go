package evaluation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/evaluation"
)

func TestBuildRequestUsesFirstUserAndLastAssistantMessage(t *testing.T) {
	messages := []claim.Message{
		{Role: claim.RoleUser, Text: "Assess this claim."},
		{Role: claim.RoleAssistant, Text: "Processing..."},
		{Role: claim.RoleAssistant, Text: "ASSESSMENT_COMPLETE: APPROVE"},
	}
	c := claim.Claim{ClaimID: "CLM-1", ClaimType: "Major Collision", State: "CA", Description: "rear-end collision"}

	req := evaluation.BuildRequest(messages, c)
	require.Equal(t, "Assess this claim.", req.Question)
	require.Equal(t, "ASSESSMENT_COMPLETE: APPROVE", req.Answer)
	require.Contains(t, req.Context, "claim_type: Major Collision")
	require.Equal(t, evaluation.DefaultMetrics, req.Metrics)
}

func TestAttachResultComputesOverallAsMean(t *testing.T) {
	result := evaluation.Result{Scores: map[string]float64{
		"groundedness": 5, "relevance": 4, "coherence": 4, "fluency": 5,
	}, Reasoning: "Solid."}

	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	out := evaluation.AttachResult(result, "EVAL-1", "EXEC-1", "CLM-1", "anthropic:test", now)

	require.True(t, out.Valid())
	require.Equal(t, claim.EvaluationScore(5), out.Groundedness)
	require.Equal(t, claim.EvaluationScore(5), out.Fluency)
	require.Equal(t, claim.EvaluationScore(5), out.Overall) // mean of 5,4,4,5 = 4.5 rounds to 5
}

func TestAttachResultMissingScoreLeavesResultInvalid(t *testing.T) {
	result := evaluation.Result{Scores: map[string]float64{
		"groundedness": 5, "relevance": 4, "coherence": 4,
	}}
	out := evaluation.AttachResult(result, "EVAL-2", "EXEC-2", "CLM-2", "anthropic:test", time.Now())
	require.False(t, out.Valid())
	require.Equal(t, claim.EvaluationScore(0), out.Fluency)
}
