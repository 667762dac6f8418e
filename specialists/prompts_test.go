package specialists_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/specialists"
)

func TestBuildClaimAssessorPromptIncludesClaimJSON(t *testing.T) {
	prompt := specialists.BuildClaimAssessorPrompt(testClaim())
	require.Contains(t, prompt, `"claim_id":"CLM-1"`)
	require.Contains(t, prompt, "VALID, QUESTIONABLE, or INVALID")
}

func TestBuildPolicyCheckerPromptMentionsClaimType(t *testing.T) {
	prompt := specialists.BuildPolicyCheckerPrompt(testClaim())
	require.Contains(t, prompt, "Major Collision")
	require.Contains(t, prompt, "$18000.00")
	require.Contains(t, prompt, "COVERED, PARTIALLY COVERED, or NOT COVERED")
}

func TestBuildRiskAnalystPromptAsksForVerdict(t *testing.T) {
	prompt := specialists.BuildRiskAnalystPrompt(testClaim())
	require.Contains(t, prompt, "LOW RISK, MODERATE RISK, or HIGH RISK")
}

func TestBuildCommunicationPromptEchoesRequest(t *testing.T) {
	prompt := specialists.BuildCommunicationPrompt("please request a police report")
	require.Contains(t, prompt, "please request a police report")
	require.Contains(t, prompt, "professional closing")
}
