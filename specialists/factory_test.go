package specialists_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/specialists"
	"github.com/clarion-insurance/claims-orchestrator/threadrun"
)

func TestNewAdaptersWiresAllFive(t *testing.T) {
	reg := agentregistry.New()
	driver := threadrun.New(&scriptedService{}, nil, nil, nil)

	adapters := specialists.NewAdapters(reg, driver, nil)
	require.NotNil(t, adapters.ClaimAssessor)
	require.NotNil(t, adapters.PolicyChecker)
	require.NotNil(t, adapters.RiskAnalyst)
	require.NotNil(t, adapters.DataAnalyst)
	require.NotNil(t, adapters.Communication)
	require.True(t, adapters.DataAnalyst.IsDataAnalytics)
}

func TestAdaptersAllReturnsPrimaryDelegationOrder(t *testing.T) {
	reg := agentregistry.New()
	driver := threadrun.New(&scriptedService{}, nil, nil, nil)

	adapters := specialists.NewAdapters(reg, driver, nil)
	all := adapters.All()
	require.Len(t, all, 4)
	require.Equal(t, specialists.NameClaimAssessor, all[0].Name)
	require.Equal(t, specialists.NamePolicyChecker, all[1].Name)
	require.Equal(t, specialists.NameRiskAnalyst, all[2].Name)
	require.Equal(t, specialists.NameDataAnalyst, all[3].Name)
}
