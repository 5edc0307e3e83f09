package analysis

import (
	"math"

	"github.com/jonathan/resume-doctor/internal/types"
)

// Blend weights for the final overall score. The AI's judgment dominates;
// the deterministic local signals nudge it.
const (
	weightAI          = 0.70
	weightReadability = 0.15
	weightVerbs       = 0.15

	// Flesch reading ease band considered ideal for resumes.
	readabilityLow  = 60.0
	readabilityHigh = 80.0

	// Strong-verb ratio at or above this earns a full verb score.
	verbRatioTarget = 0.3
)

// ReadabilityScore maps a Flesch reading ease value onto 0-100. Values in
// the ideal band score 100; outside it the score decays linearly from the
// band's midpoint.
func ReadabilityScore(readability float64) float64 {
	if readability >= readabilityLow && readability <= readabilityHigh {
		return 100
	}
	mid := (readabilityLow + readabilityHigh) / 2
	return math.Max(0, 100-2*math.Abs(mid-readability))
}

// VerbScore maps a strong-verb ratio onto 0-100, saturating at the target
// ratio.
func VerbScore(ratio float64) float64 {
	return math.Min(100, ratio/verbRatioTarget*100)
}

// Merge blends the AI report's overall score with the local text statistics
// using the fixed weighting. All other AI-derived fields pass through
// untouched.
func Merge(report types.Report, stats types.TextStats) types.FinalReport {
	rs := ReadabilityScore(stats.Readability)
	vs := VerbScore(stats.StrongVerbRatio)

	final := math.Round(float64(report.OverallScore)*weightAI + rs*weightReadability + vs*weightVerbs)
	report.OverallScore = int(final)

	return types.FinalReport{
		Report:    report,
		TextStats: stats,
	}
}
