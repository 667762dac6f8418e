package specialists

import (
	"context"
	"fmt"
)

// RunFallbackPipeline implements the two-stage fallback spec.md §4.3
// describes for a soft data-analytics failure: (a) try a direct SQL query
// against the secondary data source; (b) if that fails or fallback is not
// configured, synthesize a deterministic demo dataset seeded by claimantID.
func RunFallbackPipeline(ctx context.Context, fallback *SQLFallback, claimantID, claimType, state, claimantName string) string {
	if fallback != nil {
		history, err := fallback.ClaimantHistory(ctx, claimantID)
		if err == nil {
			fraudRate, rateErr := fallback.FraudRateByRegion(ctx, state, claimType)
			if rateErr == nil {
				return RenderHistoryReport(claimantID, claimantName, state, claimType, history, fraudRate)
			}
		}
	}
	return GenerateDemoData(claimantID, claimType, state, claimantName)
}

// WithQueryHeader prepends the "query that was issued" header the UI
// displays for both successful and soft-failed data-analytics responses
// (spec.md §4.3 steps 5: query annotation and fallback header).
func WithQueryHeader(query, content string) string {
	return fmt.Sprintf("**📊 Fabric Query:** `%s`\n\n---\n\n%s", query, content)
}
