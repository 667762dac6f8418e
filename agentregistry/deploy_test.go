package agentregistry_test

import (
	"context"
	"testing"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/stretchr/testify/require"
)

type fakeRemoteService struct {
	agents      []agentregistry.RemoteAgent
	createCalls int
	deleteCalls []string
}

func (f *fakeRemoteService) ListAgents(ctx context.Context) ([]agentregistry.RemoteAgent, error) {
	return f.agents, nil
}

func (f *fakeRemoteService) CreateAgent(ctx context.Context, spec agentregistry.AgentSpec) (agentregistry.RemoteAgent, error) {
	f.createCalls++
	created := agentregistry.RemoteAgent{RemoteID: "asst_new", Name: spec.Name, Tools: spec.ToolsetDescriptor}
	f.agents = append(f.agents, created)
	return created, nil
}

func (f *fakeRemoteService) DeleteAgent(ctx context.Context, remoteID string) error {
	f.deleteCalls = append(f.deleteCalls, remoteID)
	return nil
}

func TestDeployCreatesWhenAbsent(t *testing.T) {
	reg := agentregistry.New()
	svc := &fakeRemoteService{}

	err := agentregistry.Deploy(context.Background(), reg, svc, agentregistry.DeploySpec{
		AgentSpec: agentregistry.AgentSpec{Name: "risk_analyst", ToolsetDescriptor: []string{"lookup_policy"}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, svc.createCalls)

	entry, err := reg.Lookup("risk_analyst")
	require.NoError(t, err)
	require.Equal(t, "asst_new", entry.RemoteID)
}

func TestDeployReusesExistingAgent(t *testing.T) {
	reg := agentregistry.New()
	svc := &fakeRemoteService{agents: []agentregistry.RemoteAgent{
		{RemoteID: "asst_existing", Name: "risk_analyst", Tools: []string{"lookup_policy"}},
	}}

	err := agentregistry.Deploy(context.Background(), reg, svc, agentregistry.DeploySpec{
		AgentSpec: agentregistry.AgentSpec{Name: "risk_analyst", ToolsetDescriptor: []string{"lookup_policy"}},
	})
	require.NoError(t, err)
	require.Equal(t, 0, svc.createCalls)

	entry, err := reg.Lookup("risk_analyst")
	require.NoError(t, err)
	require.Equal(t, "asst_existing", entry.RemoteID)
}

func TestDeployRecreatesWhenRequiredToolMissing(t *testing.T) {
	reg := agentregistry.New()
	svc := &fakeRemoteService{agents: []agentregistry.RemoteAgent{
		{RemoteID: "asst_stale", Name: "data_analyst", Tools: []string{}},
	}}

	err := agentregistry.Deploy(context.Background(), reg, svc, agentregistry.DeploySpec{
		AgentSpec:    agentregistry.AgentSpec{Name: "data_analyst", ToolsetDescriptor: []string{"query_fabric"}},
		RequiredTool: "query_fabric",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"asst_stale"}, svc.deleteCalls)
	require.Equal(t, 1, svc.createCalls)
}
