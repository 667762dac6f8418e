package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Model is the narrow completion surface both judge backends implement:
// send a single prompt, get back the model's raw text response. Mirrors the
// teacher's thin-wrapper pattern (features/model/anthropic/client.go,
// features/model/bedrock/client.go) reduced to the one operation a judge
// needs — PromptJudge is the only caller.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PromptJudge is an Evaluator built on any Model: it renders the judge
// prompt, sends it, and parses the model's JSON response into scores. Both
// the Anthropic and Bedrock backends are Models passed to PromptJudge,
// so the parsing and prompt-construction logic is written once.
type PromptJudge struct {
	model       Model
	evaluatorID string
}

// NewPromptJudge returns an Evaluator backed by model. evaluatorID
// identifies the backend in persisted results (e.g. "anthropic:claude-3-5-haiku").
func NewPromptJudge(model Model, evaluatorID string) *PromptJudge {
	return &PromptJudge{model: model, evaluatorID: evaluatorID}
}

// EvaluatorID returns the identifier this judge stamps onto results.
func (j *PromptJudge) EvaluatorID() string { return j.evaluatorID }

func (j *PromptJudge) Evaluate(ctx context.Context, req Request) (Result, error) {
	prompt := buildJudgePrompt(req)
	raw, err := j.model.Complete(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("evaluation: judge completion failed: %w", err)
	}
	return parseJudgeResponse(raw)
}

var _ Evaluator = (*PromptJudge)(nil)

type judgeResponse struct {
	Scores    map[string]float64 `json:"scores"`
	Reasoning string             `json:"reasoning"`
}

// parseJudgeResponse extracts the {"scores": {...}, "reasoning": "..."} JSON
// object from the judge's response, tolerating surrounding prose or a
// markdown code fence (models routinely wrap JSON in ```json ... ```).
func parseJudgeResponse(raw string) (Result, error) {
	body := extractJSONObject(raw)
	if body == "" {
		return Result{}, fmt.Errorf("evaluation: no JSON object found in judge response")
	}

	var parsed judgeResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return Result{}, fmt.Errorf("evaluation: parse judge response: %w", err)
	}
	return Result{Scores: parsed.Scores, Reasoning: parsed.Reasoning}, nil
}

func extractJSONObject(raw string) string {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
