package specialists

import (
	"context"
	"database/sql"
	"fmt"
)

// ClaimHistoryRow is one row of a claimant's prior claims, as read from the
// secondary analytics SQL data source.
type ClaimHistoryRow struct {
	ClaimID      string
	ClaimType    string
	ClaimAmount  float64
	Status       string
	FraudFlagged bool
}

// SQLFallback queries a secondary analytics data source directly when the
// primary data-analytics agent reports a soft failure. This stands in for
// the original's Service-Principal-authenticated SQL analytics endpoint
// query, scoped here to a local analytics replica.
type SQLFallback struct {
	db *sql.DB
}

// NewSQLFallback wraps db for use as a fallback data source. A nil db makes
// every query fail immediately, which callers treat as "not configured" and
// fall through to GenerateDemoData.
func NewSQLFallback(db *sql.DB) *SQLFallback {
	return &SQLFallback{db: db}
}

// ClaimantHistory returns every claim on record for claimantID, most recent
// first.
func (f *SQLFallback) ClaimantHistory(ctx context.Context, claimantID string) ([]ClaimHistoryRow, error) {
	if f.db == nil {
		return nil, fmt.Errorf("sql fallback: not configured")
	}

	rows, err := f.db.QueryContext(ctx, `
		SELECT claim_id, claim_type, claim_amount, status, fraud_flag
		FROM claims_history
		WHERE claimant_id = ?
		ORDER BY claim_date DESC`, claimantID)
	if err != nil {
		return nil, fmt.Errorf("sql fallback: query claimant history: %w", err)
	}
	defer rows.Close()

	var out []ClaimHistoryRow
	for rows.Next() {
		var r ClaimHistoryRow
		var fraudFlag int
		if err := rows.Scan(&r.ClaimID, &r.ClaimType, &r.ClaimAmount, &r.Status, &fraudFlag); err != nil {
			return nil, fmt.Errorf("sql fallback: scan row: %w", err)
		}
		r.FraudFlagged = fraudFlag != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// FraudRateByRegion returns the fraction of claims flagged fraudulent for
// state (optionally filtered by a claimType substring), or an error if the
// region has no recorded claims.
func (f *SQLFallback) FraudRateByRegion(ctx context.Context, state, claimType string) (float64, error) {
	if f.db == nil {
		return 0, fmt.Errorf("sql fallback: not configured")
	}

	var query string
	var args []any
	if claimType != "" {
		query = `SELECT CAST(SUM(CASE WHEN fraud_flag = 1 THEN 1 ELSE 0 END) AS REAL) / COUNT(*)
			FROM claims_history WHERE state = ? AND claim_type LIKE ?`
		args = []any{state, "%" + claimType + "%"}
	} else {
		query = `SELECT CAST(SUM(CASE WHEN fraud_flag = 1 THEN 1 ELSE 0 END) AS REAL) / COUNT(*)
			FROM claims_history WHERE state = ?`
		args = []any{state}
	}

	var rate sql.NullFloat64
	if err := f.db.QueryRowContext(ctx, query, args...).Scan(&rate); err != nil {
		return 0, fmt.Errorf("sql fallback: fraud rate query: %w", err)
	}
	if !rate.Valid {
		return 0, fmt.Errorf("sql fallback: no claims on record for %s", state)
	}
	return rate.Float64, nil
}

// RenderHistoryReport formats history rows and a fraud rate as markdown with
// the same title and section headings GenerateDemoData uses. It is shorter:
// it has no "Demo Data Mode" banner, no risk indicators and no
// recommendations.
func RenderHistoryReport(claimantID, claimantName, state, claimType string, history []ClaimHistoryRow, fraudRate float64) string {
	report := fmt.Sprintf("## Claims Data Analysis for %s (%s)\n\n### Claimant History Summary\n\n", claimantName, claimantID)
	report += fmt.Sprintf("| Metric | Value |\n|--------|-------|\n| Total Claims on Record | %d |\n", len(history))

	var total float64
	for _, h := range history {
		total += h.ClaimAmount
	}
	avg := 0.0
	if len(history) > 0 {
		avg = total / float64(len(history))
	}
	report += fmt.Sprintf("| Average Claim Amount | $%.2f |\n\n", avg)
	report += fmt.Sprintf("### Regional Statistics (%s)\n\n| Metric | Value |\n|--------|-------|\n| %s Fraud Rate | %.1f%% |\n", state, claimType, fraudRate*100)
	return report
}
