package specialists

import "strings"

// connectivityPhrases are exact casefolded substrings that, when present in
// the data-analytics specialist's response, indicate the remote data agent
// hit a connectivity problem rather than answering the query (spec.md
// §6.3). Order is irrelevant.
var connectivityPhrases = []string{
	"technical difficulties", "technical issue", "connectivity issue",
	"unable to retrieve", "data service issue", "encountered an issue",
	"failure connecting", "issue retrieving", "cannot query", "unable to query",
	"error accessing", "will retry", "please advise", "alternate access",
	"made an error", "apologize", "i apologize", "issue accessing",
	"having trouble", "trouble accessing", "cannot access", "unable to access",
	"failed to access", "could not access", "could not retrieve",
	"failed to retrieve", "unable to connect", "failed to connect",
	"no data available", "encountered a technical", "unable to directly",
	"was unable to", "let me retry", "ensure connection", "once accessible",
}

// IsSoftFailure reports whether response contains a recognized connectivity
// phrase, triggering the fallback pipeline.
func IsSoftFailure(response string) bool {
	lower := strings.ToLower(response)
	for _, phrase := range connectivityPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
