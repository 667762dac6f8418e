package specialists

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
)

// stateFraudRates are demo regional fraud rate percentages; states absent
// from the table default to 3.5.
var stateFraudRates = map[string]float64{
	"CA": 4.2, "FL": 5.8, "TX": 3.9, "NY": 4.5, "IL": 3.7,
	"PA": 3.2, "OH": 3.0, "GA": 4.8, "NC": 3.5, "MI": 3.8,
}

// seedFor derives a deterministic PRNG seed from claimantID so the same
// claimant always sees the same demo data, matching the original's
// md5-digest-as-seed approach.
func seedFor(claimantID string) int64 {
	sum := md5.Sum([]byte(claimantID))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

// GenerateDemoData synthesizes a deterministic, claimant-seeded analytics
// report for use when both the primary data-analytics agent and the SQL
// fallback are unavailable (spec.md §4.3 fallback pipeline, step (b)).
func GenerateDemoData(claimantID, claimType, state, claimantName string) string {
	rng := rand.New(rand.NewSource(seedFor(claimantID)))

	totalClaims := rng.Intn(5) + 1 // 1..5
	approvedClaims := rng.Intn(totalClaims + 1)
	deniedClaims := totalClaims - approvedClaims

	totalAmount := 0
	for i := 0; i < totalClaims; i++ {
		totalAmount += rng.Intn(25000-1000+1) + 1000
	}
	avgAmount := 0
	if totalClaims > 0 {
		avgAmount = totalAmount / totalClaims
	}

	fraudRate, ok := stateFraudRates[state]
	if !ok {
		fraudRate = 3.5
	}

	lower := strings.ToLower(claimType)
	var typeFraudRate float64
	var typeAvgClaim int
	switch {
	case strings.Contains(lower, "collision"):
		typeFraudRate = fraudRate + uniform(rng, 0.5, 1.5)
		typeAvgClaim = rng.Intn(35000-15000+1) + 15000
	case strings.Contains(lower, "theft"):
		typeFraudRate = fraudRate + uniform(rng, 2.0, 4.0)
		typeAvgClaim = rng.Intn(20000-8000+1) + 8000
	case strings.Contains(lower, "fire"):
		typeFraudRate = fraudRate + uniform(rng, 1.0, 2.5)
		typeAvgClaim = rng.Intn(75000-25000+1) + 25000
	default:
		typeFraudRate = fraudRate
		typeAvgClaim = rng.Intn(15000-5000+1) + 5000
	}

	riskScore := rng.Intn(85-15+1) + 15
	riskLevel := "Low"
	switch {
	case riskScore >= 60:
		riskLevel = "High"
	case riskScore >= 30:
		riskLevel = "Medium"
	}

	claimFrequency := "Normal"
	if totalClaims > 3 {
		claimFrequency = "Above average"
	}
	amountPattern := "Consistent"
	if approvedClaims > 0 && deniedClaims > 0 {
		amountPattern = "High variance"
	}
	geoRisk := "standard"
	if fraudRate > 4.0 {
		geoRisk = "elevated"
	}

	historyNote := "✅ Limited claim history - standard review recommended"
	if totalClaims > 2 {
		historyNote = "⚠️ Review claim history carefully - multiple prior claims detected"
	}
	typeNote := "✅ Claim type has moderate risk profile"
	if typeAvgClaim > 20000 {
		typeNote = fmt.Sprintf("⚠️ High-value claim type (%s) - enhanced verification recommended", claimType)
	}
	regionNote := "✅ Regional fraud rate within normal range"
	if fraudRate > 4.5 {
		regionNote = "⚠️ Regional fraud rate elevated - additional documentation may be warranted"
	}

	return fmt.Sprintf(`## Claims Data Analysis for %s (%s)

### ⚠️ Demo Data Mode
*Note: This analysis uses demonstration data. Live data agent connection unavailable.*

---

### Claimant History Summary

| Metric | Value |
|--------|-------|
| Total Claims Filed | %d |
| Approved Claims | %d |
| Denied Claims | %d |
| Total Amount Claimed | $%d |
| Average Claim Amount | $%d |
| Account Risk Score | %d/100 (%s) |

### Regional Statistics (%s)

| Metric | Value |
|--------|-------|
| Regional Fraud Rate | %.1f%% |
| %s Fraud Rate | %.1f%% |
| Average %s Claim | $%d |

### Risk Indicators

- **Claim Frequency**: %s (%d claims in 24 months)
- **Claim Amount Pattern**: %s
- **Geographic Risk**: %s has %s fraud activity

### Data-Driven Recommendations

1. %s
2. %s
3. %s

---
*To enable live data, verify the data-analytics specialist's connection and credentials.*
`,
		claimantName, claimantID,
		totalClaims, approvedClaims, deniedClaims, totalAmount, avgAmount, riskScore, riskLevel,
		state,
		fraudRate, claimType, typeFraudRate, claimType, typeAvgClaim,
		claimFrequency, totalClaims, amountPattern, state, geoRisk,
		historyNote, typeNote, regionNote,
	)
}

// uniform returns a pseudo-random float64 in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
