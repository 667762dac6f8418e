// Package claim defines the core data model shared across the orchestration
// runtime: the claim payload itself, agent definitions, conversation
// messages, run/execution records, token usage, and evaluation results. Types
// here are data-only; validation lives in plain functions so DTOs stay free
// of behavior, matching the rest of the runtime's record/interface split.
package claim

import "time"

// Claim is the input to a single orchestration run. It is immutable across
// the run: the supervisor and every specialist see the same payload.
type Claim struct {
	// ClaimID uniquely identifies the claim within the execution store.
	ClaimID string
	// ClaimType is an enum-valued string such as "Major Collision", "Property
	// Damage", "Fire Damage", "Theft", or "Liability".
	ClaimType string
	// ClaimantID identifies the policyholder filing the claim.
	ClaimantID string
	// ClaimantName is the human-readable name of the claimant.
	ClaimantName string
	// State is the US state abbreviation where the claim was filed.
	State string
	// PolicyNumber identifies the policy under which the claim is filed.
	PolicyNumber string
	// EstimatedDamage is the claimant- or adjuster-reported damage estimate.
	EstimatedDamage float64
	// Description is the free-text narrative of the incident.
	Description string
	// DocumentPaths lists supporting document references (blob store keys).
	// The blob store itself is out of scope for this module; these are opaque
	// identifiers passed through to specialists that reason about them.
	DocumentPaths []string
	// ImagePaths lists supporting image references, same ownership as
	// DocumentPaths.
	ImagePaths []string
	// Documents carries richer metadata for supporting documents when
	// available, supplementing the bare DocumentPaths slice.
	Documents []ClaimDocument
	// UserToken is an optional bearer credential for on-behalf-of access to
	// the data-analytics specialist's remote data source. Owned by the
	// caller: flows through unchanged, never persisted, never logged.
	UserToken string
}

// ClaimDocument carries metadata about one supporting document attached to a
// claim. The document bytes themselves live in an external blob store (out
// of scope); this struct is the typed slot specialists use to reason about
// what evidence exists without fetching it.
type ClaimDocument struct {
	DocumentID  string
	Path        string
	ContentType string
	UploadedAt  time.Time
}

// Validate checks the minimal invariant the orchestrator depends on: a
// non-empty ClaimID. All other fields are optional — §8 "boundary behaviors"
// requires a zero-field claim (only ClaimID set) to still complete a run.
func (c Claim) Validate() error {
	if c.ClaimID == "" {
		return ErrMissingClaimID
	}
	return nil
}
