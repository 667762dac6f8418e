package claim

import "time"

// EvaluationScore is a judge-assigned rating on a 1..5 scale.
type EvaluationScore int

// Valid reports whether the score falls in the documented 1..5 range.
func (s EvaluationScore) Valid() bool {
	return s >= 1 && s <= 5
}

// EvaluationResult is the output of running an LLM-as-judge evaluator
// against one AgentExecution: four dimension scores (groundedness,
// relevance, coherence, fluency), an overall score (arithmetic mean of the
// present scores), and the judge's reasoning.
type EvaluationResult struct {
	EvaluationID string
	ExecutionID  string
	ClaimID      string
	EvaluatorID  string
	Groundedness EvaluationScore
	Relevance    EvaluationScore
	Coherence    EvaluationScore
	Fluency      EvaluationScore
	Overall      EvaluationScore
	Reasoning    string
	EvaluatedAt  time.Time
}

// Valid reports whether every score on r falls within the documented 1..5
// range (spec.md §8 boundary behavior: evaluators must reject or clamp
// out-of-range judge output rather than persist it).
func (r EvaluationResult) Valid() bool {
	return r.Groundedness.Valid() && r.Relevance.Valid() &&
		r.Coherence.Valid() && r.Fluency.Valid() && r.Overall.Valid()
}
