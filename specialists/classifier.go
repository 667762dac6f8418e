package specialists

import (
	"fmt"
	"strings"
)

// FabricQuery derives a concise natural-language query for the data-
// analytics specialist from (claimantID, claimType, state), via a fixed
// classifier on lowercased claimType. The rule is deterministic and keeps
// the query simple because the remote natural-language data agent fails on
// complex composite queries (spec.md §4.3 "Algorithmic notes on query
// shaping").
func FabricQuery(claimantID, claimType, state string) string {
	lower := strings.ToLower(claimType)

	switch {
	case strings.Contains(lower, "collision"):
		return fmt.Sprintf("Show claims history for claimant %s and fraud rate for collision claims over 20000 in %s", claimantID, state)
	case strings.Contains(lower, "property"):
		return fmt.Sprintf("Show claims history for claimant %s and average property damage claims in %s", claimantID, state)
	case strings.Contains(lower, "accident"):
		return fmt.Sprintf("Show claims history for claimant %s and fraud rate for auto accident claims in %s", claimantID, state)
	case strings.Contains(lower, "fire"):
		return fmt.Sprintf("Show claims history for claimant %s and fire damage fraud indicators in %s", claimantID, state)
	case strings.Contains(lower, "theft"):
		return fmt.Sprintf("Show claims history for claimant %s and auto theft fraud rate in %s", claimantID, state)
	case strings.Contains(lower, "liability"):
		return fmt.Sprintf("Show claims history for claimant %s and liability claim patterns in %s", claimantID, state)
	default:
		return fmt.Sprintf("Show claims history for claimant %s and fraud rate for %s claims in %s", claimantID, claimType, state)
	}
}
