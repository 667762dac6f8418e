package specialists

import (
	"context"
	"fmt"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/threadrun"
)

// Registered specialist names, used both as agentregistry keys and as the
// supervisor's tool-function names (with the "call_" prefix the supervisor
// model sees; see trace/chunk.go for where that prefix is stripped back off).
const (
	NameClaimAssessor = "claim_assessor"
	NamePolicyChecker = "policy_checker"
	NameRiskAnalyst   = "risk_analyst"
	NameDataAnalyst   = "claims_data_analyst"
	NameCommunication = "communication_agent"
)

// Adapters bundles every specialist delegation adapter the supervisor can
// call for one claim-processing run.
type Adapters struct {
	ClaimAssessor *Adapter
	PolicyChecker *Adapter
	RiskAnalyst   *Adapter
	DataAnalyst   *Adapter
	Communication *Adapter
}

// NewAdapters wires every specialist adapter to the shared registry and
// driver. fallback may be nil, in which case the data-analytics adapter's
// fallback pipeline goes straight to synthesized demo data.
func NewAdapters(reg *agentregistry.Registry, driver *threadrun.Driver, fallback *SQLFallback) Adapters {
	dataAnalyst := NewAdapter(NameDataAnalyst, "Claims Data Analyst", nil, reg, driver)
	dataAnalyst.IsDataAnalytics = true
	dataAnalyst.Fallback = fallback

	return Adapters{
		ClaimAssessor: NewAdapter(NameClaimAssessor, "Claim Assessor", BuildClaimAssessorPrompt, reg, driver),
		PolicyChecker: NewAdapter(NamePolicyChecker, "Policy Checker", BuildPolicyCheckerPrompt, reg, driver),
		RiskAnalyst:   NewAdapter(NameRiskAnalyst, "Risk Analyst", BuildRiskAnalystPrompt, reg, driver),
		DataAnalyst:   dataAnalyst,
		Communication: NewAdapter(NameCommunication, "Communication Agent", nil, reg, driver),
	}
}

// InvokeCommunication drafts a customer email from a free-text request. The
// communication agent takes no tools and is never given raw claim JSON, so
// it is invoked directly rather than through Adapter.Invoke's claim-shaped
// prompt builder.
func (a Adapters) InvokeCommunication(ctx context.Context, request, threadID string, recorders ...UsageRecorder) (string, error) {
	ad := a.Communication
	entry, err := ad.registry.Lookup(ad.Name)
	if err != nil {
		return fmt.Sprintf("Error: %s not available", ad.DisplayName), nil
	}

	out, err := ad.driver.Run(ctx, threadrun.Input{
		AgentRemoteID:   entry.RemoteID,
		UserMessage:     BuildCommunicationPrompt(request),
		ThreadID:        threadID,
		Functions:       entry.ToolFunctions,
		PollInterval:    defaultPollInterval,
		MaxPollDuration: defaultMaxPollDuration,
	})
	if err != nil {
		return fmt.Sprintf("Error from %s: %s", ad.DisplayName, err), nil
	}
	recordUsage(recorders, out.Usage)
	return lastAssistantText(out.Messages), nil
}

// All returns the claim-shaped delegation adapters in a fixed order:
// assessor, policy, risk, then data analyst. The communication adapter is
// not included.
func (a Adapters) All() []*Adapter {
	return []*Adapter{a.ClaimAssessor, a.PolicyChecker, a.RiskAnalyst, a.DataAnalyst}
}
