// Package empathy implements the empresa/candidato code style empathy score:
// a weighted, correlation-adjusted comparison of two per-repository metric
// reports producing a single explainable 0-100 score with category breakdowns
// and recommendations.
package empathy

import (
	"fmt"
	"math"
)

// Algorithm computes empathy scores. It holds no mutable state; one instance
// is safe for concurrent use across goroutines.
type Algorithm struct{}

// New creates an empathy scoring algorithm.
func New() *Algorithm {
	return &Algorithm{}
}

// CalculateEmpathyScore compares a reference (empresa) report against a
// candidate (candidato) report. It is pure and deterministic: the same pair of
// inputs always yields the same result. Missing categories or metrics are
// tolerated; nil reports are a caller contract violation and return an error.
func (a *Algorithm) CalculateEmpathyScore(reference, candidate *MetricReport) (*EmpathyResult, error) {
	if reference == nil || candidate == nil {
		return nil, fmt.Errorf("empathy: both metric reports are required")
	}

	overlap := calculateLanguageOverlap(
		reference.Metadata.AnalyzedLanguages,
		candidate.Metadata.AnalyzedLanguages,
	)

	rawScores := scoreCategories(reference, candidate)
	adjustedScores, correlationAdjustment := applyCorrelations(rawScores)

	base := composeBaseScore(adjustedScores)
	final := applyAdjustments(
		base,
		overlap,
		candidate,
		reference.Metadata.AnalyzedFiles,
		candidate.Metadata.AnalyzedFiles,
		adjustedScores,
	)

	return &EmpathyResult{
		EmpathyScore:     round2(final),
		CategoryScores:   adjustedScores,
		LanguageOverlap:  overlap,
		DetailedAnalysis: generateDetailedAnalysis(adjustedScores, overlap),
		Recommendations:  generateRecommendations(adjustedScores, overlap),
		Interpretation:   interpretScore(final),
		AlgorithmVersion: AlgorithmVersion,
		ComplexityFactors: ComplexityFactors{
			BaseScore:             round2(base),
			CorrelationAdjustment: round2(correlationAdjustment),
			MultiFactorAdjustment: round2(final - base),
		},
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
