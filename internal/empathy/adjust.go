package empathy

import "math"

// applyAdjustments runs the six adjustment factors over the base score in
// fixed order. The excellence/deficiency deltas are computed in stage four but
// land additively after the balance factor, so the multiplicative factors
// never scale them. The result is clamped to [0,100].
func applyAdjustments(base float64, overlap LanguageOverlap, candidate *MetricReport, referenceFiles, candidateFiles int, scores map[string]float64) float64 {
	adjusted := base

	// 1. Language overlap.
	languageFactor := overlap.Score / 100
	switch {
	case languageFactor < 0.3:
		adjusted *= 0.5 + languageFactor
	case languageFactor < 0.7:
		adjusted *= 0.8 + languageFactor*0.2
	default:
		adjusted *= 0.95 + languageFactor*0.05
	}

	// 2. Project size ratio.
	if referenceFiles > 0 && candidateFiles > 0 {
		sizeRatio := math.Min(
			float64(candidateFiles)/float64(referenceFiles),
			float64(referenceFiles)/float64(candidateFiles),
		)
		adjusted *= sizeMultiplier(sizeRatio, referenceFiles, candidateFiles)
	}

	// 3. Consistency across categories.
	stddev := populationStdDev(scores)
	switch {
	case stddev < 15:
		adjusted += 3
	case stddev < 25:
		adjusted += 1
	default:
		adjusted -= 2
	}

	// 4. Excellence/deficiency in high-impact categories (applied after 6).
	excellence, deficiency := impactDeltas(scores)

	// 5. Anti-pattern and pattern counts from the candidate's raw metrics.
	if candidate.Patterns != nil {
		antiCount := countNested(candidate.Patterns.AntiPatterns)
		patternCount := countNested(candidate.Patterns.DesignPatterns)

		adjusted -= math.Min(15, float64(antiCount)*2)
		if patternCount > 3 {
			adjusted += math.Min(5, float64(patternCount)*0.5)
		}
	}

	// 6. Balance between best and worst categories.
	if spread, ok := scoreSpread(scores); ok {
		switch {
		case spread > 50:
			adjusted *= 0.95
		case spread < 20:
			adjusted *= 1.05
		}
	}

	adjusted = adjusted + excellence - deficiency

	return clamp(adjusted, 0, 100)
}

func sizeMultiplier(ratio float64, referenceFiles, candidateFiles int) float64 {
	switch {
	case ratio < 0.2:
		return 0.85
	case ratio < 0.5:
		return 0.92
	case ratio > 0.8 && referenceFiles > 50 && candidateFiles > 50:
		return 1.05
	case ratio > 0.8:
		return 1.02
	default:
		return 1.0
	}
}

// impactDeltas accumulates weighted excellence and deficiency over the fixed
// high-impact category subset.
func impactDeltas(scores map[string]float64) (excellence, deficiency float64) {
	for _, impact := range criticalImpactWeights {
		score, ok := scores[impact.category]
		if !ok {
			continue
		}
		switch {
		case score >= 85:
			excellence += impact.weight * 1.5
		case score >= 70:
			excellence += impact.weight * 0.5
		case score < 50:
			deficiency += impact.weight * 1.5
		}
	}
	return excellence, deficiency
}

func populationStdDev(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	mean := 0.0
	for _, score := range scores {
		mean += score
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, score := range scores {
		diff := score - mean
		variance += diff * diff
	}
	variance /= float64(len(scores))

	return math.Sqrt(variance)
}

func scoreSpread(scores map[string]float64) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}

	minScore := math.Inf(1)
	maxScore := math.Inf(-1)
	for _, score := range scores {
		minScore = math.Min(minScore, score)
		maxScore = math.Max(maxScore, score)
	}

	return maxScore - minScore, true
}
