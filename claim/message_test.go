package claim_test

import (
	"testing"

	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/stretchr/testify/require"
)

func TestMessageNormalizeFallsBackToText(t *testing.T) {
	m := claim.Message{Role: claim.RoleAssistant, Text: "plain text"}
	require.Equal(t, "plain text", m.Normalize())
}

func TestMessageNormalizeJoinsTextPartsAndDropsOthers(t *testing.T) {
	m := claim.Message{
		Role: claim.RoleAssistant,
		Parts: []claim.ContentPart{
			{Type: "text", Value: "first"},
			{Type: "annotation", Value: "ignored"},
			{Type: "text", Value: "second"},
		},
	}
	require.Equal(t, "first\nsecond", m.Normalize())
}
