package claim_test

import (
	"testing"

	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/stretchr/testify/require"
)

func TestEvaluationScoreValid(t *testing.T) {
	require.True(t, claim.EvaluationScore(1).Valid())
	require.True(t, claim.EvaluationScore(5).Valid())
	require.False(t, claim.EvaluationScore(0).Valid())
	require.False(t, claim.EvaluationScore(6).Valid())
}

func TestEvaluationResultValid(t *testing.T) {
	good := claim.EvaluationResult{
		Groundedness: 4, Relevance: 5, Coherence: 3, Fluency: 4, Overall: 4,
	}
	require.True(t, good.Valid())

	bad := good
	bad.Overall = 6
	require.False(t, bad.Valid())
}
