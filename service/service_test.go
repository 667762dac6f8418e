package service_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/evaluation"
	"github.com/clarion-insurance/claims-orchestrator/execstore"
	"github.com/clarion-insurance/claims-orchestrator/orchestrator"
	"github.com/clarion-insurance/claims-orchestrator/service"
	"github.com/clarion-insurance/claims-orchestrator/specialists"
	"github.com/clarion-insurance/claims-orchestrator/threadrun"
	"github.com/clarion-insurance/claims-orchestrator/usage"
)

// supervisorFake mirrors orchestrator_test.go's fixture: one
// requires_action round with a pending tool call per function name it was
// built with, then a completed synthesis turn.
type supervisorFake struct {
	pendingCalls []claim.ToolCall
	dispatched   bool
	finalText    string
}

func (f *supervisorFake) CreateOrReuseThread(ctx context.Context, threadID string) (string, error) {
	return "thread_sup", nil
}
func (f *supervisorFake) PostMessage(ctx context.Context, threadID, content string) error { return nil }
func (f *supervisorFake) StartRun(ctx context.Context, threadID, agentRemoteID, toolChoice, userToken string) (string, error) {
	return "run_sup", nil
}
func (f *supervisorFake) PollRun(ctx context.Context, threadID, runID string) (threadrun.RunSnapshot, error) {
	if !f.dispatched {
		f.dispatched = true
		return threadrun.RunSnapshot{Status: claim.RunRequiresAction, PendingToolCalls: f.pendingCalls}, nil
	}
	return threadrun.RunSnapshot{Status: claim.RunCompleted, Usage: claim.TokenUsage{PromptTokens: 80, CompletionTokens: 20, TotalTokens: 100}}, nil
}
func (f *supervisorFake) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []threadrun.ToolSubmission) error {
	return nil
}
func (f *supervisorFake) CancelRun(ctx context.Context, threadID, runID string) error { return nil }
func (f *supervisorFake) MessagesSince(ctx context.Context, threadID string, since time.Time) ([]claim.Message, error) {
	return []claim.Message{{Role: claim.RoleAssistant, Text: f.finalText}}, nil
}

func newSupervisorFake(functionNames []string, finalText string) *supervisorFake {
	calls := make([]claim.ToolCall, len(functionNames))
	for i, name := range functionNames {
		calls[i] = claim.ToolCall{CallID: "call_" + name, FunctionName: name, Arguments: []byte(`{}`)}
	}
	return &supervisorFake{pendingCalls: calls, finalText: finalText}
}

func testClaim() claim.Claim {
	return claim.Claim{
		ClaimID:      "CLM-1",
		ClaimType:    "Major Collision",
		ClaimantID:   "CLAIMANT-1",
		ClaimantName: "Jordan Lee",
		State:        "CA",
		PolicyNumber: "POL-9",
	}
}

type sequentialIDs struct {
	prefix string
	n      int
}

func (s *sequentialIDs) next() string {
	s.n++
	return s.prefix + "-" + strconv.Itoa(s.n)
}

func fixedNow() time.Time { return time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC) }

func buildService(t *testing.T, finalText string, evaluator evaluation.Evaluator) (*service.Service, *execstore.MemoryStore) {
	t.Helper()
	reg := agentregistry.New()
	for _, name := range []string{specialists.NameClaimAssessor, specialists.NamePolicyChecker} {
		require.NoError(t, reg.Register(name, agentregistry.Entry{RemoteID: "asst_" + name}, false))
	}
	svc := newSupervisorFake([]string{"call_claim_assessor", "call_policy_checker"}, finalText)
	driver := threadrun.New(svc, nil, nil, nil)
	adapters := specialists.NewAdapters(reg, driver, nil)
	remote := func() (string, error) { return "asst_supervisor", nil }
	orc := orchestrator.New(reg, driver, adapters, remote)

	store := execstore.NewMemoryStore()
	tracker := usage.NewTracker(store, nil, (&sequentialIDs{prefix: "tok"}).next)

	ids := &sequentialIDs{prefix: "exec"}
	svcObj := service.New(service.Options{
		Orchestrator:    orc,
		Registry:        reg,
		Store:           store,
		Tracker:         tracker,
		Evaluator:       evaluator,
		EvaluatorID:     "anthropic-judge",
		ModelDeployment: "gpt-4o-mini",
		NewID:           ids.next,
		Now:             fixedNow,
	})
	return svcObj, store
}

func TestProcessClaimPersistsExecutionWithStepTokenUsage(t *testing.T) {
	svc, store := buildService(t, "ASSESSMENT_COMPLETE\nPRIMARY RECOMMENDATION: APPROVE (Confidence: HIGH)", nil)

	out, err := svc.ProcessClaim(context.Background(), testClaim(), false)
	require.NoError(t, err)
	require.NotEmpty(t, out.ExecutionID)
	require.Contains(t, out.FinalDecision, "APPROVE")
	require.Len(t, out.ConversationChronological, 4) // leading + 2 specialists + final
	require.Nil(t, out.EvaluationResult)

	history, err := store.GetClaimHistory(context.Background(), "CLM-1")
	require.NoError(t, err)
	require.Len(t, history, 1)

	execution := history[0]
	require.Equal(t, claim.RunCompleted, execution.Status)
	require.Len(t, execution.Steps, 2)
	require.Equal(t, []string{"claim_assessor", "policy_checker"}, execution.AgentsInvoked)

	// Supervisor's own usage must not appear in the execution's step-summed
	// totals (spec.md AgentExecution invariant: agent_steps excludes the
	// supervisor).
	var stepTotal int
	for _, step := range execution.Steps {
		stepTotal += step.TokenUsage.TotalTokens
	}
	require.Equal(t, stepTotal, execution.TotalTokens.TotalTokens)
}

func TestProcessClaimNoFinalTextMarksExecutionFailed(t *testing.T) {
	svc, store := buildService(t, "", nil)

	out, err := svc.ProcessClaim(context.Background(), testClaim(), false)
	require.NoError(t, err)
	require.NotEmpty(t, out.ExecutionID)

	history, err := store.GetClaimHistory(context.Background(), "CLM-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, claim.RunFailed, history[0].Status)
}

func TestProcessClaimRejectsInvalidClaim(t *testing.T) {
	svc, _ := buildService(t, "ASSESSMENT_COMPLETE\nPRIMARY RECOMMENDATION: APPROVE (Confidence: HIGH)", nil)

	_, err := svc.ProcessClaim(context.Background(), claim.Claim{}, false)
	require.Error(t, err)
}

type fakeEvaluator struct {
	result evaluation.Result
	err    error
}

func (f fakeEvaluator) Evaluate(ctx context.Context, req evaluation.Request) (evaluation.Result, error) {
	return f.result, f.err
}

func TestProcessClaimAttachesEvaluationResultWhenEvaluatorConfigured(t *testing.T) {
	evaluator := fakeEvaluator{result: evaluation.Result{
		Scores: map[string]float64{
			"groundedness": 4,
			"relevance":    5,
			"coherence":    4,
			"fluency":      5,
		},
		Reasoning: "well grounded in the specialist findings",
	}}
	svc, _ := buildService(t, "ASSESSMENT_COMPLETE\nPRIMARY RECOMMENDATION: APPROVE (Confidence: HIGH)", evaluator)

	out, err := svc.ProcessClaim(context.Background(), testClaim(), false)
	require.NoError(t, err)
	require.NotNil(t, out.EvaluationResult)
	require.Equal(t, claim.EvaluationScore(5), out.EvaluationResult.Relevance)
	require.True(t, out.EvaluationResult.Valid())
}

func TestProcessClaimSwallowsEvaluationFailure(t *testing.T) {
	evaluator := fakeEvaluator{err: errors.New("judge unavailable")}
	svc, _ := buildService(t, "ASSESSMENT_COMPLETE\nPRIMARY RECOMMENDATION: APPROVE (Confidence: HIGH)", evaluator)

	out, err := svc.ProcessClaim(context.Background(), testClaim(), false)
	require.NoError(t, err)
	require.Nil(t, out.EvaluationResult)
}

func TestListAgentsReturnsRegisteredNames(t *testing.T) {
	reg := agentregistry.New()
	svc := service.New(service.Options{Registry: reg})
	require.Empty(t, svc.ListAgents())

	require.NoError(t, reg.Register(specialists.NameRiskAnalyst, agentregistry.Entry{RemoteID: "asst_risk_analyst"}, false))
	require.Equal(t, []string{specialists.NameRiskAnalyst}, svc.ListAgents())
}

func TestGetTokenAnalyticsAggregatesAcrossSteps(t *testing.T) {
	svc, _ := buildService(t, "ASSESSMENT_COMPLETE\nPRIMARY RECOMMENDATION: APPROVE (Confidence: HIGH)", nil)

	_, err := svc.ProcessClaim(context.Background(), testClaim(), false)
	require.NoError(t, err)

	summary, err := svc.GetTokenAnalytics(context.Background(), "CLM-1")
	require.NoError(t, err)
	require.Greater(t, summary.TotalCalls, 0)
}
