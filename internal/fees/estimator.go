// Package fees implements the clinic's sliding-fee schedule: poverty
// percentage, tier assignment, and per-procedure price lookup.
package fees

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/xrash/smetrics"
)

// ErrUnresolvedProcedure means no catalogue entry matched the free-text
// procedure, even fuzzily.
var ErrUnresolvedProcedure = errors.New("fees: procedure not on the sliding-fee schedule")

// DefaultMatchThreshold is the similarity floor for fuzzy procedure
// matching. Deliberately lenient: the input is conversational free text.
const DefaultMatchThreshold = 0.72

// Quote is the outcome of a fee estimate. EstimatedFee is either a dollar
// amount (int) or the FullCharge sentinel string.
type Quote struct {
	Procedure      string  `json:"procedure"`
	Tier           string  `json:"tier"`
	PovertyPercent float64 `json:"poverty_percent"`
	EstimatedFee   any     `json:"estimated_fee"`
}

// Estimator resolves procedures and prices them by poverty tier. It is a
// pure function over its table and inputs; no state beyond the threshold.
type Estimator struct {
	threshold float64
}

// NewEstimator creates an estimator with the given fuzzy-match threshold.
// Non-positive thresholds fall back to the default.
func NewEstimator(threshold float64) *Estimator {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Estimator{threshold: threshold}
}

// PovertyPercent computes household income as a percentage of the federal
// poverty guideline, rounded to one decimal. This is the display value;
// tier assignment works on the exact ratio so rounding cannot move a
// household across a band edge.
func PovertyPercent(income float64, familySize int) float64 {
	return math.Round(povertyRatio(income, familySize)*10) / 10
}

// povertyRatio is the exact, unrounded percentage.
func povertyRatio(income float64, familySize int) float64 {
	base := povertyBase + float64(familySize-1)*povertyPerMember
	return 100 * income / base
}

// TierFor maps a poverty percentage onto a sliding-fee band. Percentages
// outside every band, including the gaps between integer band edges, fall
// through to F.
func TierFor(pct float64) string {
	for _, band := range tierBands {
		if band.MinPct <= pct && pct <= band.MaxPct {
			return band.Tier
		}
	}
	return "F"
}

// Estimate prices the procedure for the given household. When the
// procedure cannot be resolved the quote echoes the raw term at full
// charge and the error is ErrUnresolvedProcedure; the tier and percentage
// are still valid.
func (e *Estimator) Estimate(income float64, familySize int, procedure string) (Quote, error) {
	if income < 0 {
		return Quote{}, fmt.Errorf("fees: income must be non-negative, got %v", income)
	}
	if familySize < 1 {
		return Quote{}, fmt.Errorf("fees: family size must be positive, got %d", familySize)
	}

	// Tier from the exact ratio: 30121/1 is 200.0066%, which is past band
	// E even though it displays as 200.0.
	tier := TierFor(povertyRatio(income, familySize))
	pct := PovertyPercent(income, familySize)

	resolved, ok := e.ResolveProcedure(procedure)
	if !ok {
		return Quote{
			Procedure:      procedure,
			Tier:           tier,
			PovertyPercent: pct,
			EstimatedFee:   FullCharge,
		}, fmt.Errorf("%w: %q", ErrUnresolvedProcedure, procedure)
	}

	var fee any = FullCharge
	if tier != "F" {
		if amount, ok := feeTable[resolved][tier]; ok {
			fee = amount
		}
	}

	return Quote{
		Procedure:      resolved,
		Tier:           tier,
		PovertyPercent: pct,
		EstimatedFee:   fee,
	}, nil
}

// ResolveProcedure maps free text onto a catalogue entry: exact
// case-insensitive match first, then substring containment, then the best
// fuzzy match at or above the threshold.
func (e *Estimator) ResolveProcedure(raw string) (string, bool) {
	term := strings.ToLower(strings.TrimSpace(raw))
	if term == "" {
		return "", false
	}

	// Sorted iteration keeps resolution deterministic when several
	// catalogue entries contain the term.
	names := Services()
	for _, name := range names {
		if term == strings.ToLower(name) {
			return name, true
		}
	}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), term) {
			return name, true
		}
	}

	best := ""
	bestScore := 0.0
	for _, name := range names {
		score := smetrics.JaroWinkler(term, strings.ToLower(name), 0.7, 4)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	if bestScore >= e.threshold {
		return best, true
	}
	return "", false
}

// Services lists every procedure on the sliding-fee schedule, sorted.
func Services() []string {
	names := make([]string, 0, len(feeTable))
	for name := range feeTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
