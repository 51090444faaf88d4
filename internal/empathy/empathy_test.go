package empathy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullReport builds a rich MetricReport: every base category carries two
// metrics at the given value, and all three advanced blocks are present.
func fullReport(languages []string, files int, value float64) *MetricReport {
	categories := make(map[string]map[string]float64, len(baseCategoryNames))
	for _, category := range baseCategoryNames {
		categories[category] = map[string]float64{
			"metric_a": value,
			"metric_b": value,
		}
	}

	return &MetricReport{
		Metadata: Metadata{
			AnalyzedLanguages: languages,
			AnalyzedFiles:     files,
		},
		Categories: categories,
		Patterns: &PatternBlock{
			PatternScore: 90,
			DesignPatterns: map[string][]string{
				"singleton": {"a.py"},
				"factory":   {"b.py"},
				"observer":  {"c.py"},
				"strategy":  {"d.py"},
			},
			AntiPatterns: map[string][]string{},
		},
		Performance: &PerformanceBlock{
			PerformanceScore:  90,
			PerformanceIssues: map[string][]string{},
		},
		Comments: &CommentBlock{
			CommentMetrics: CommentMetrics{CommentQualityScore: 90},
			Markers:        map[string][]string{"TODO": {"x.py"}},
		},
	}
}

func TestCalculateEmpathyScoreRequiresBothReports(t *testing.T) {
	algorithm := New()

	_, err := algorithm.CalculateEmpathyScore(nil, &MetricReport{})
	assert.Error(t, err)

	_, err = algorithm.CalculateEmpathyScore(&MetricReport{}, nil)
	assert.Error(t, err)
}

func TestCalculateEmpathyScoreIsDeterministic(t *testing.T) {
	algorithm := New()
	reference := fullReport([]string{"Python", "Go"}, 120, 0.9)
	candidate := fullReport([]string{"Python", "Go"}, 100, 0.7)

	first, err := algorithm.CalculateEmpathyScore(reference, candidate)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := algorithm.CalculateEmpathyScore(reference, candidate)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestIdenticalReportsScorePerfectly(t *testing.T) {
	algorithm := New()
	report := fullReport([]string{"Python", "Go"}, 120, 0.9)

	result, err := algorithm.CalculateEmpathyScore(report, report)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.EmpathyScore, 0.01)
	assert.Equal(t, "Excelente", result.Interpretation.Level)
	assert.Greater(t, result.EmpathyScore, 95.0)
	assert.Equal(t, AlgorithmVersion, result.AlgorithmVersion)
}

// Swapping reference and candidate is not score-preserving: the threshold
// similarity categories reward the candidate meeting the reference's bar, not
// the other way around.
func TestScoreIsNotSymmetric(t *testing.T) {
	algorithm := New()
	strong := fullReport([]string{"Python", "Go"}, 120, 0.9)
	weak := fullReport([]string{"Python", "Go"}, 120, 0.4)

	forward, err := algorithm.CalculateEmpathyScore(strong, weak)
	require.NoError(t, err)
	backward, err := algorithm.CalculateEmpathyScore(weak, strong)
	require.NoError(t, err)

	assert.NotEqual(t, forward.EmpathyScore, backward.EmpathyScore)
	// The candidate beating a weak bar scores better than one missing a high bar.
	assert.Greater(t, backward.EmpathyScore, forward.EmpathyScore)
}

func TestMissingLanguagesDepressTheScore(t *testing.T) {
	algorithm := New()
	reference := fullReport([]string{"Python", "Go", "Rust"}, 120, 0.9)

	aligned := fullReport([]string{"Python", "Go", "Rust"}, 120, 0.9)
	misaligned := fullReport([]string{"JavaScript"}, 120, 0.9)

	alignedResult, err := algorithm.CalculateEmpathyScore(reference, aligned)
	require.NoError(t, err)
	misalignedResult, err := algorithm.CalculateEmpathyScore(reference, misaligned)
	require.NoError(t, err)

	assert.Equal(t, 0.0, misalignedResult.LanguageOverlap.Score)
	assert.Less(t, misalignedResult.EmpathyScore, alignedResult.EmpathyScore)
	assert.Less(t, misalignedResult.EmpathyScore, 70.0)

	// The gap must also surface as a high-priority recommendation.
	var found bool
	for _, rec := range misalignedResult.Recommendations {
		if rec.Category == "languages" {
			found = true
			assert.Equal(t, "high", rec.Priority)
		}
	}
	assert.True(t, found, "expected a missing-languages recommendation")
}

func TestMissingCategoryIsToleratedAndOmitted(t *testing.T) {
	algorithm := New()
	reference := fullReport([]string{"Python"}, 50, 0.9)
	candidate := fullReport([]string{"Python"}, 50, 0.9)
	delete(candidate.Categories, CategorySeguridad)

	result, err := algorithm.CalculateEmpathyScore(reference, candidate)
	require.NoError(t, err)

	assert.NotContains(t, result.CategoryScores, CategorySeguridad)
	assert.GreaterOrEqual(t, result.EmpathyScore, 0.0)
	assert.LessOrEqual(t, result.EmpathyScore, 100.0)
}

func TestEmptyReportsDoNotPanic(t *testing.T) {
	algorithm := New()

	result, err := algorithm.CalculateEmpathyScore(&MetricReport{}, &MetricReport{})
	require.NoError(t, err)

	// Only the advanced categories score, all at the neutral fallback.
	assert.Equal(t, map[string]float64{
		CategoryPatrones:    50,
		CategoryRendimiento: 50,
		CategoryComentarios: 50,
	}, result.CategoryScores)
	assert.Equal(t, 0.0, result.LanguageOverlap.Score)
	assert.GreaterOrEqual(t, result.EmpathyScore, 0.0)
	assert.LessOrEqual(t, result.EmpathyScore, 100.0)
}

func TestScoresStayWithinBounds(t *testing.T) {
	algorithm := New()

	pairs := []struct {
		name      string
		reference *MetricReport
		candidate *MetricReport
	}{
		{"rich vs rich", fullReport([]string{"Python", "Go"}, 500, 0.95), fullReport([]string{"Python"}, 20, 0.1)},
		{"weak vs strong", fullReport([]string{"Go"}, 10, 0.05), fullReport([]string{"Go"}, 400, 1.0)},
		{"zero metrics", fullReport([]string{"Python"}, 50, 0.0), fullReport([]string{"Python"}, 50, 0.0)},
		{"empty vs rich", &MetricReport{}, fullReport([]string{"Python"}, 50, 0.9)},
	}

	for _, pair := range pairs {
		t.Run(pair.name, func(t *testing.T) {
			result, err := algorithm.CalculateEmpathyScore(pair.reference, pair.candidate)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, result.EmpathyScore, 0.0)
			assert.LessOrEqual(t, result.EmpathyScore, 100.0)
			for category, score := range result.CategoryScores {
				assert.GreaterOrEqual(t, score, 0.0, "category %s", category)
				assert.LessOrEqual(t, score, 100.0, "category %s", category)
			}
		})
	}
}

func TestComplexityFactorsExplainTheScore(t *testing.T) {
	algorithm := New()
	reference := fullReport([]string{"Python", "Go"}, 120, 0.9)
	candidate := fullReport([]string{"Python", "Go"}, 120, 0.7)

	result, err := algorithm.CalculateEmpathyScore(reference, candidate)
	require.NoError(t, err)

	factors := result.ComplexityFactors
	assert.InDelta(t, result.EmpathyScore, factors.BaseScore+factors.MultiFactorAdjustment, 0.02)
	assert.GreaterOrEqual(t, factors.BaseScore, 0.0)
	assert.LessOrEqual(t, factors.BaseScore, 100.0)
}

func TestRecommendationsAreSortedByPriority(t *testing.T) {
	algorithm := New()
	reference := fullReport([]string{"Python", "Go", "Rust"}, 120, 0.9)
	candidate := fullReport([]string{"Python"}, 120, 0.3)

	result, err := algorithm.CalculateEmpathyScore(reference, candidate)
	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)

	order := map[string]int{"high": 0, "medium": 1, "low": 2}
	for i := 1; i < len(result.Recommendations); i++ {
		assert.LessOrEqual(t,
			order[result.Recommendations[i-1].Priority],
			order[result.Recommendations[i].Priority],
			"recommendations out of priority order at %d", i)
	}
}

func TestDetailedAnalysisSplitsStrengthsAndWeaknesses(t *testing.T) {
	algorithm := New()
	reference := fullReport([]string{"Python"}, 100, 0.9)
	candidate := fullReport([]string{"Python"}, 100, 0.9)
	// Drag pruebas well below 60 on the candidate side.
	candidate.Categories[CategoryPruebas] = map[string]float64{
		"metric_a": 0.2,
		"metric_b": 0.2,
	}

	result, err := algorithm.CalculateEmpathyScore(reference, candidate)
	require.NoError(t, err)

	var weakCategories []string
	for _, weakness := range result.DetailedAnalysis.Weaknesses {
		weakCategories = append(weakCategories, weakness.Category)
	}
	assert.Contains(t, weakCategories, CategoryPruebas)

	var strongCategories []string
	for _, strength := range result.DetailedAnalysis.Strengths {
		strongCategories = append(strongCategories, strength.Category)
	}
	assert.Contains(t, strongCategories, CategoryNombres)
}
