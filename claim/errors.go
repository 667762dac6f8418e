package claim

import "errors"

// ErrMissingClaimID indicates a Claim was constructed without a ClaimID, the
// only field the orchestration core requires to be present.
var ErrMissingClaimID = errors.New("claim: claim_id is required")
