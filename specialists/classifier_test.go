package specialists_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/specialists"
)

func TestFabricQueryCollision(t *testing.T) {
	q := specialists.FabricQuery("CL-1", "Major Collision", "TX")
	require.Contains(t, q, "CL-1")
	require.Contains(t, q, "TX")
	require.Contains(t, strings.ToLower(q), "collision")
}

func TestFabricQueryDefaultsForUnknownType(t *testing.T) {
	q := specialists.FabricQuery("CL-2", "Some Unheard Of Type", "NY")
	require.Contains(t, q, "CL-2")
	require.Contains(t, q, "NY")
}

func TestFabricQueryCoversEveryClaimType(t *testing.T) {
	for _, claimType := range []string{
		"Major Collision", "Property Damage", "Vehicle Accident",
		"Fire Damage", "Theft", "Liability",
	} {
		q := specialists.FabricQuery("CL-3", claimType, "CA")
		require.NotEmpty(t, q)
		require.Contains(t, q, "CL-3")
	}
}
