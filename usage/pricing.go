// Package usage implements token usage tracking and cost accounting (part
// of C6): a per-1000-token pricing table, a per-run Scope that
// accumulates usage without any thread-local or span-attached state, and a
// Tracker that turns recorded usage into persisted TokenUsageRecords and
// claim-level summaries.
package usage

// Rate is a model's cost per 1000 tokens, split by prompt/completion
// token kind (spec.md §6.4).
type Rate struct {
	PromptPer1K     float64
	CompletionPer1K float64
}

// fallbackModel is the pricing row used for unrecognized model
// identifiers; a warning is logged each time this happens (spec.md §6.4).
const fallbackModel = "gpt-4o-mini"

// pricingTable is read-only after initialization (spec.md §5 shared-
// resource policy).
var pricingTable = map[string]Rate{
	"gpt-4o":                  {PromptPer1K: 0.005, CompletionPer1K: 0.015},
	"gpt-4o-mini":             {PromptPer1K: 0.00015, CompletionPer1K: 0.0006},
	"gpt-4.1-mini":            {PromptPer1K: 0.00015, CompletionPer1K: 0.0006},
	"gpt-4":                   {PromptPer1K: 0.03, CompletionPer1K: 0.06},
	"gpt-35-turbo":            {PromptPer1K: 0.0015, CompletionPer1K: 0.002},
	"text-embedding-3-small":  {PromptPer1K: 0.00002, CompletionPer1K: 0},
	"text-embedding-3-large":  {PromptPer1K: 0.00013, CompletionPer1K: 0},
	"text-embedding-ada-002":  {PromptPer1K: 0.0001, CompletionPer1K: 0},
}

// RateFor returns the pricing row for model, and whether model was
// recognized (false means the fallback row was substituted).
func RateFor(model string) (Rate, bool) {
	if rate, ok := pricingTable[model]; ok {
		return rate, true
	}
	return pricingTable[fallbackModel], false
}

// Cost computes the USD cost of a prompt/completion token pair at rate.
func Cost(rate Rate, promptTokens, completionTokens int) (promptCost, completionCost, totalCost float64) {
	promptCost = float64(promptTokens) / 1000 * rate.PromptPer1K
	completionCost = float64(completionTokens) / 1000 * rate.CompletionPer1K
	totalCost = promptCost + completionCost
	return
}
