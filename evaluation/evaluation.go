// Package evaluation implements the post-run quality evaluation service
// (spec.md §4.6 "Evaluation trigger", §6.1 "Evaluation service"): an
// LLM-as-judge that scores a completed claim assessment against four
// dimensions (groundedness, relevance, coherence, fluency) and returns
// free-text reasoning alongside the scores.
package evaluation

import (
	"context"
	"strings"
	"time"

	"github.com/clarion-insurance/claims-orchestrator/claim"
)

// DefaultMetrics is the fixed metric set every evaluation request scores
// against (spec.md §3 EvaluationResult).
var DefaultMetrics = []string{"groundedness", "relevance", "coherence", "fluency"}

// Request is the input to an Evaluator: a question/answer pair to judge
// plus supporting context and the metric set to score.
type Request struct {
	Question string
	Answer   string
	Context  []string
	Metrics  []string
}

// Result is the raw output of an Evaluator: one score per requested metric
// plus the judge's reasoning. Scores are not yet attached to an execution or
// claim id.
type Result struct {
	Scores    map[string]float64
	Reasoning string
}

// Evaluator scores a question/answer pair. Implementations call out to an
// LLM judge; network or parsing failures are returned as errors so callers
// can log-and-swallow per spec.md §4.6 "Evaluation failures are logged and
// swallowed; they never fail the orchestration."
type Evaluator interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
}

// BuildRequest assembles an EvaluationRequest from a completed run's
// message list and the originating claim, per spec.md §4.6: "build an
// EvaluationRequest from (first user-role message as question, last
// assistant synthesis as answer, claim fields as context list)".
func BuildRequest(messages []claim.Message, c claim.Claim) Request {
	return Request{
		Question: firstUserMessage(messages),
		Answer:   lastAssistantMessage(messages),
		Context:  claimContext(c),
		Metrics:  DefaultMetrics,
	}
}

func firstUserMessage(messages []claim.Message) string {
	for _, m := range messages {
		if m.Role == claim.RoleUser {
			return m.Normalize()
		}
	}
	return ""
}

func lastAssistantMessage(messages []claim.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == claim.RoleAssistant {
			return messages[i].Normalize()
		}
	}
	return ""
}

func claimContext(c claim.Claim) []string {
	ctx := []string{
		"claim_id: " + c.ClaimID,
		"claim_type: " + c.ClaimType,
		"state: " + c.State,
		"description: " + c.Description,
	}
	return ctx
}

// AttachResult converts a judge Result into a claim.EvaluationResult,
// clamping nothing: a missing score leaves the corresponding field at its
// zero value, and a present score is rounded to the nearest integer and kept
// even when out of range, so claim.EvaluationResult.Valid rejects either case
// rather than silently accepting it (spec.md §8 boundary behavior).
func AttachResult(r Result, evaluationID, executionID, claimID, evaluatorID string, now time.Time) claim.EvaluationResult {
	out := claim.EvaluationResult{
		EvaluationID: evaluationID,
		ExecutionID:  executionID,
		ClaimID:      claimID,
		EvaluatorID:  evaluatorID,
		Groundedness: scoreOf(r.Scores, "groundedness"),
		Relevance:    scoreOf(r.Scores, "relevance"),
		Coherence:    scoreOf(r.Scores, "coherence"),
		Fluency:      scoreOf(r.Scores, "fluency"),
		Reasoning:    strings.TrimSpace(r.Reasoning),
		EvaluatedAt:  now,
	}
	out.Overall = overall(out)
	return out
}

func scoreOf(scores map[string]float64, metric string) claim.EvaluationScore {
	v, ok := scores[metric]
	if !ok {
		return 0
	}
	return claim.EvaluationScore(v + 0.5) // round to nearest int
}

// overall is the arithmetic mean of the present (valid) dimension scores,
// rounded to the nearest integer (spec.md §3 "overall (arithmetic mean of
// present scores)").
func overall(r claim.EvaluationResult) claim.EvaluationScore {
	scores := []claim.EvaluationScore{r.Groundedness, r.Relevance, r.Coherence, r.Fluency}
	var sum, n int
	for _, s := range scores {
		if s.Valid() {
			sum += int(s)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return claim.EvaluationScore((sum + n/2) / n)
}
