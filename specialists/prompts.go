package specialists

import (
	"encoding/json"
	"fmt"

	"github.com/clarion-insurance/claims-orchestrator/claim"
)

// claimPayload is the JSON shape specialists receive for a claim, mirroring
// the original's ad-hoc dict so prompt text referencing field names still
// makes sense to a reader of a specialist's transcript.
type claimPayload struct {
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

func marshalClaim(c claim.Claim) string {
	payload := claimPayload{
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
	raw, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// BuildClaimAssessorPrompt asks the Claim Assessor to evaluate damage
// validity, cost reasonableness, and documentation.
func BuildClaimAssessorPrompt(c claim.Claim) string {
	return fmt.Sprintf(`Please assess this insurance claim:

%s

Provide a detailed assessment including:
1. Damage evaluation and consistency with incident description
2. Cost assessment reasonableness
3. Documentation verification
4. Any red flags or inconsistencies
5. Final verdict: VALID, QUESTIONABLE, or INVALID`, marshalClaim(c))
}

// BuildPolicyCheckerPrompt reminds the Policy Checker to search policy
// documents by the claim's specific claim type, and surfaces the estimated
// damage amount for the coverage-limit comparison.
func BuildPolicyCheckerPrompt(c claim.Claim) string {
	return fmt.Sprintf(`Please verify coverage for this insurance claim:

Claim Details:
%s

IMPORTANT: Use the search_policy_documents tool to find relevant policy coverage based on the CLAIM TYPE: "%s"
Search for policies that cover this type of claim (e.g., "collision coverage", "comprehensive coverage", "property damage", "fire damage", etc.)

Provide verification including:
1. Policy coverage type that applies to this claim type: %s
2. Relevant coverage limits and deductibles for claims of this type
3. Any applicable exclusions that might affect this claim
4. Whether the estimated damage ($%.2f) is within typical coverage limits
5. Final verdict: COVERED, PARTIALLY COVERED, or NOT COVERED`, marshalClaim(c), c.ClaimType, c.ClaimType, c.EstimatedDamage)
}

// BuildRiskAnalystPrompt asks the Risk Analyst to evaluate claimant history
// patterns, frequency, and fraud red flags.
func BuildRiskAnalystPrompt(c claim.Claim) string {
	return fmt.Sprintf(`Please analyze the risk for this claim:

%s

Provide risk analysis including:
1. Claimant history patterns
2. Claim frequency and amounts evaluation
3. Red flags identification
4. Fraud indicators assessment
5. Final verdict: LOW RISK, MODERATE RISK, or HIGH RISK`, marshalClaim(c))
}

// BuildCommunicationPrompt drafts a customer-facing email; the
// communication agent has no tools and is the only specialist that never
// receives raw claim JSON, only the free-text draft request.
func BuildCommunicationPrompt(request string) string {
	return fmt.Sprintf(`Please draft a professional email based on this request:

%s

The email should:
1. Have appropriate greeting and claim reference
2. Clearly explain the situation/request
3. Provide specific next steps
4. Include contact information
5. Have professional closing`, request)
}
