package evaluation

import (
	"fmt"
	"strings"
)

// buildJudgePrompt renders req into the instruction the judge model
// completes, asking for a strict JSON object so parseJudgeResponse can
// extract it reliably. Metric descriptions mirror
// original_source/backend/app/api/v1/endpoints/evaluation.py's
// groundedness/relevance/coherence/fluency definitions.
func buildJudgePrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are an impartial evaluator scoring an AI assistant's response to a question. ")
	b.WriteString("Score the response on each of the following metrics, using a 1 to 5 integer scale:\n\n")
	b.WriteString("- groundedness: Is the response supported by the provided context?\n")
	b.WriteString("- relevance: Does the response address the question?\n")
	b.WriteString("- coherence: Is the response logically consistent?\n")
	b.WriteString("- fluency: Is the response well-written?\n\n")

	fmt.Fprintf(&b, "Question:\n%s\n\n", req.Question)
	fmt.Fprintf(&b, "Response:\n%s\n\n", req.Answer)
	if len(req.Context) > 0 {
		b.WriteString("Context:\n")
		for _, c := range req.Context {
			b.WriteString("- ")
			b.WriteString(c)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Respond with ONLY a JSON object of the exact shape:\n")
	b.WriteString(`{"scores": {"groundedness": <1-5>, "relevance": <1-5>, "coherence": <1-5>, "fluency": <1-5>}, "reasoning": "<one or two sentences>"}`)
	b.WriteString("\nDo not include any text outside the JSON object.")
	return b.String()
}
