package orchestrator

import (
	"encoding/json"
	"fmt"

	"github.com/clarion-insurance/claims-orchestrator/claim"
)

type claimJSON struct {
	ClaimID         string   `json:"claim_id"`
	ClaimType       string   `json:"claim_type"`
	ClaimantID      string   `json:"claimant_id"`
	ClaimantName    string   `json:"claimant_name"`
	State           string   `json:"state"`
	PolicyNumber    string   `json:"policy_number"`
	EstimatedDamage float64  `json:"estimated_damage"`
	Description     string   `json:"description"`
	DocumentPaths   []string `json:"document_paths,omitempty"`
	ImagePaths      []string `json:"image_paths,omitempty"`
}

func prettyClaimJSON(c claim.Claim) string {
	payload := claimJSON{
		ClaimID:         c.ClaimID,
		ClaimType:       c.ClaimType,
		ClaimantID:      c.ClaimantID,
		ClaimantName:    c.ClaimantName,
		State:           c.State,
		PolicyNumber:    c.PolicyNumber,
		EstimatedDamage: c.EstimatedDamage,
		Description:     c.Description,
		DocumentPaths:   c.DocumentPaths,
		ImagePaths:      c.ImagePaths,
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(raw)
}

const standardWorkflowSteps = `Follow this workflow - you MUST call ALL FOUR specialist agents in order:
1. First call the Claim Assessor to evaluate the damage and documentation
2. Then call the Policy Checker to verify coverage
3. Then call the Risk Analyst to assess fraud risk
4. Finally, call the Communication Agent to draft a summary email to the claimant with the status and any next steps
5. After all four agents respond, provide your comprehensive assessment summary

IMPORTANT: You must call all four agents (claim_assessor, policy_checker, risk_analyst, communication_agent) in sequence.`

const analyticsWorkflowSteps = `Follow this workflow - you MUST call ALL FIVE specialist agents in order:
1. First call the Claim Assessor to evaluate the damage and documentation
2. Then call the Policy Checker to verify coverage
3. Then call the Claims Data Analyst to query historical data and statistics
4. Then call the Risk Analyst to assess fraud risk
5. Finally, call the Communication Agent to draft a summary email to the claimant with the status and any next steps
6. After all five agents respond, provide your comprehensive assessment summary

IMPORTANT: You must call all five agents (claim_assessor, policy_checker, claims_data_analyst, risk_analyst, communication_agent) in sequence.`

// buildUserMessage constructs the supervisor's initial turn message: a
// fixed framing string, a pretty-printed claim JSON, and the enumerated
// workflow instruction for the selected variant (spec.md §4.4 step 2).
func buildUserMessage(c claim.Claim, analyticsEnabled bool) string {
	steps := standardWorkflowSteps
	if analyticsEnabled {
		steps = analyticsWorkflowSteps
	}
	return fmt.Sprintf("Please process this insurance claim through your team of specialists:\n\n%s\n\n%s", prettyClaimJSON(c), steps)
}
