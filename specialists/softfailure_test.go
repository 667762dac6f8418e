package specialists_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/specialists"
)

func TestIsSoftFailureDetectsConnectivityPhrases(t *testing.T) {
	cases := []string{
		"I'm having trouble accessing the data source right now.",
		"We encountered an issue connecting to the Fabric lakehouse.",
		"I apologize, but I am unable to retrieve claims history at this time.",
		"Please advise how you'd like to proceed while we resolve this.",
	}
	for _, c := range cases {
		require.True(t, specialists.IsSoftFailure(c), c)
	}
}

func TestIsSoftFailureIgnoresOrdinaryResponses(t *testing.T) {
	require.False(t, specialists.IsSoftFailure("## Claims Data Analysis\n\nTotal Claims Filed: 3"))
	require.False(t, specialists.IsSoftFailure(""))
}

func TestIsSoftFailureCaseInsensitive(t *testing.T) {
	require.True(t, specialists.IsSoftFailure("TECHNICAL DIFFICULTIES prevented completion."))
}
