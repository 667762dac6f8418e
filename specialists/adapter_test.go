package specialists_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/specialists"
	"github.com/clarion-insurance/claims-orchestrator/threadrun"
)

// scriptedService is a single-shot AgentService stand-in: it completes
// immediately with a fixed final message, regardless of input.
type scriptedService struct {
	finalText string
}

func (s *scriptedService) CreateOrReuseThread(ctx context.Context, threadID string) (string, error) {
	return "thread_1", nil
}
func (s *scriptedService) PostMessage(ctx context.Context, threadID, content string) error { return nil }
func (s *scriptedService) StartRun(ctx context.Context, threadID, agentRemoteID, toolChoice, userToken string) (string, error) {
	return "run_1", nil
}
func (s *scriptedService) PollRun(ctx context.Context, threadID, runID string) (threadrun.RunSnapshot, error) {
	return threadrun.RunSnapshot{Status: claim.RunCompleted}, nil
}
func (s *scriptedService) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []threadrun.ToolSubmission) error {
	return nil
}
func (s *scriptedService) CancelRun(ctx context.Context, threadID, runID string) error { return nil }
func (s *scriptedService) MessagesSince(ctx context.Context, threadID string, since time.Time) ([]claim.Message, error) {
	return []claim.Message{{Role: claim.RoleAssistant, Text: s.finalText}}, nil
}

func testClaim() claim.Claim {
	return claim.Claim{
		ClaimID:         "CLM-1",
		ClaimType:       "Major Collision",
		ClaimantID:      "CLAIMANT-1",
		ClaimantName:    "Jordan Lee",
		State:           "CA",
		EstimatedDamage: 18000,
	}
}

func registryWithSpecialist(name string) *agentregistry.Registry {
	reg := agentregistry.New()
	_ = reg.Register(name, agentregistry.Entry{RemoteID: "asst_" + name}, false)
	return reg
}

func TestAdapterInvokeReturnsSpecialistContent(t *testing.T) {
	reg := registryWithSpecialist(specialists.NameClaimAssessor)
	svc := &scriptedService{finalText: "Final verdict: VALID"}
	driver := threadrun.New(svc, nil, nil, nil)

	adapter := specialists.NewAdapter(specialists.NameClaimAssessor, "Claim Assessor", specialists.BuildClaimAssessorPrompt, reg, driver)
	out, err := adapter.Invoke(context.Background(), testClaim(), "")
	require.NoError(t, err)
	require.Equal(t, "Final verdict: VALID", out)
}

func TestAdapterInvokeUnregisteredSpecialistReturnsNotAvailable(t *testing.T) {
	reg := agentregistry.New()
	driver := threadrun.New(&scriptedService{}, nil, nil, nil)

	adapter := specialists.NewAdapter(specialists.NameRiskAnalyst, "Risk Analyst", specialists.BuildRiskAnalystPrompt, reg, driver)
	out, err := adapter.Invoke(context.Background(), testClaim(), "")
	require.NoError(t, err)
	require.Equal(t, "Error: Risk Analyst agent not available", out)
}

func TestAdapterInvokeDataAnalyticsAnnotatesQuery(t *testing.T) {
	reg := registryWithSpecialist(specialists.NameDataAnalyst)
	svc := &scriptedService{finalText: "## Claims Data Analysis\n\nTotal Claims Filed: 3"}
	driver := threadrun.New(svc, nil, nil, nil)

	adapters := specialists.NewAdapters(reg, driver, nil)
	out, err := adapters.DataAnalyst.Invoke(context.Background(), testClaim(), "")
	require.NoError(t, err)
	require.Contains(t, out, "Fabric Query")
	require.Contains(t, out, "Total Claims Filed: 3")
}

func TestAdapterInvokeDataAnalyticsFallsBackOnSoftFailure(t *testing.T) {
	reg := registryWithSpecialist(specialists.NameDataAnalyst)
	svc := &scriptedService{finalText: "I'm having trouble accessing the data source right now."}
	driver := threadrun.New(svc, nil, nil, nil)

	adapters := specialists.NewAdapters(reg, driver, nil)
	out, err := adapters.DataAnalyst.Invoke(context.Background(), testClaim(), "")
	require.NoError(t, err)
	require.Contains(t, out, "Demo Data Mode")
}

func TestInvokeCommunicationDraftsEmail(t *testing.T) {
	reg := registryWithSpecialist(specialists.NameCommunication)
	svc := &scriptedService{finalText: "Dear claimant, ..."}
	driver := threadrun.New(svc, nil, nil, nil)

	adapters := specialists.NewAdapters(reg, driver, nil)
	out, err := adapters.InvokeCommunication(context.Background(), "missing police report", "")
	require.NoError(t, err)
	require.Equal(t, "Dear claimant, ...", out)
}
