package empathy

import (
	"math"
	"sort"
)

// scoreBaseCategory averages the per-metric similarity between the two sides of
// one base category and scales it to 0-100. Metrics missing on either side are
// skipped, not zero-filled. Returns (0, false) when nothing is comparable.
func scoreBaseCategory(reference, candidate map[string]float64, category string) (float64, bool) {
	if len(reference) == 0 || len(candidate) == 0 {
		return 0, false
	}

	metrics := make([]string, 0, len(reference))
	for metric := range reference {
		if _, ok := candidate[metric]; ok {
			metrics = append(metrics, metric)
		}
	}
	if len(metrics) == 0 {
		return 0, false
	}
	sort.Strings(metrics)

	total := 0.0
	for _, metric := range metrics {
		refValue := reference[metric]
		candValue := candidate[metric]

		var similarity float64
		switch category {
		case CategoryComplejidad:
			similarity = inverseSimilarity(refValue, candValue)
		case CategoryPruebas, CategoryDocumentacion, CategorySeguridad:
			similarity = thresholdSimilarity(refValue, candValue)
		default:
			similarity = cosineSimilarity(refValue, candValue)
		}
		total += similarity
	}

	return total / float64(len(metrics)) * 100, true
}

// neutralAdvancedScore is returned when an advanced block is missing on either
// side; the category then drags the comparison neither way.
const neutralAdvancedScore = 50.0

// comparePatterns scores the candidate's design pattern usage against the
// reference. The pattern-to-anti-pattern ratio decides whether the candidate's
// own pattern score gets a bounded boost or a bounded cut.
func comparePatterns(reference, candidate *PatternBlock) float64 {
	if reference.empty() || candidate.empty() {
		return neutralAdvancedScore
	}

	refRatio := patternRatio(reference)
	candRatio := patternRatio(candidate)

	if candRatio > refRatio {
		bonus := math.Min(20, (candRatio-refRatio)*10)
		return math.Min(100, candidate.PatternScore+bonus)
	}

	penalty := math.Min(30, (refRatio-candRatio)*10)
	return math.Max(0, candidate.PatternScore-penalty)
}

func patternRatio(block *PatternBlock) float64 {
	return float64(countNested(block.DesignPatterns)) / float64(countNested(block.AntiPatterns)+1)
}

// comparePerformance scores the candidate's performance profile against the
// reference by total flattened issue counts.
func comparePerformance(reference, candidate *PerformanceBlock) float64 {
	if reference.empty() || candidate.empty() {
		return neutralAdvancedScore
	}

	refIssues := countNested(reference.PerformanceIssues)
	candIssues := countNested(candidate.PerformanceIssues)

	if candIssues < refIssues {
		bonus := math.Min(15, float64(refIssues-candIssues)*3)
		return math.Min(100, candidate.PerformanceScore+bonus)
	}

	penalty := math.Min(25, float64(candIssues-refIssues)*3)
	return math.Max(0, candidate.PerformanceScore-penalty)
}

// compareComments starts from the candidate's own comment quality score and
// shifts it by the marker (TODO/FIXME) count difference.
func compareComments(reference, candidate *CommentBlock) float64 {
	if reference.empty() || candidate.empty() {
		return neutralAdvancedScore
	}

	score := candidate.CommentMetrics.CommentQualityScore

	refMarkers := countNested(reference.Markers)
	candMarkers := countNested(candidate.Markers)

	if candMarkers < refMarkers {
		score += math.Min(10, float64(refMarkers-candMarkers)*2)
	} else {
		score -= math.Min(15, float64(candMarkers-refMarkers)*2)
	}

	return clamp(score, 0, 100)
}

// scoreCategories produces the raw per-category scores for every category
// comparable between the two reports, in canonical order.
func scoreCategories(reference, candidate *MetricReport) map[string]float64 {
	scores := make(map[string]float64, len(categoryNames))

	for _, category := range baseCategoryNames {
		refValues, refOK := reference.Categories[category]
		candValues, candOK := candidate.Categories[category]
		if !refOK || !candOK {
			continue
		}
		if score, ok := scoreBaseCategory(refValues, candValues, category); ok {
			scores[category] = score
		} else {
			scores[category] = 0
		}
	}

	// Advanced categories always score: their comparators fall back to a
	// neutral 50 when a block is absent on either side.
	scores[CategoryPatrones] = comparePatterns(reference.Patterns, candidate.Patterns)
	scores[CategoryRendimiento] = comparePerformance(reference.Performance, candidate.Performance)
	scores[CategoryComentarios] = compareComments(reference.Comments, candidate.Comments)

	return scores
}
