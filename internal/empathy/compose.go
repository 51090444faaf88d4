package empathy

import "math"

// composeBaseScore combines the correlation-adjusted category scores through
// the three importance tiers. Weak critical categories pull the result down
// beyond their tier share; uniform excellence across every present category
// earns a small bonus.
func composeBaseScore(scores map[string]float64) float64 {
	criticalAvg := tierAverage(scores, criticalCategories)
	importantAvg := tierAverage(scores, importantCategories)
	standardAvg := tierAverage(scores, standardCategories)

	base := criticalAvg*criticalTierWeight +
		importantAvg*importantTierWeight +
		standardAvg*standardTierWeight

	if criticalAvg < 50 {
		base = math.Max(0, base-(50-criticalAvg)*0.3)
	}

	if len(scores) > 0 && allAbove(scores, 70) {
		base = math.Min(100, base+5)
	}

	return base
}

// tierAverage computes the weighted average of the tier's present categories.
// A tier with no present categories contributes 0.
func tierAverage(scores map[string]float64, tier []string) float64 {
	totalScore := 0.0
	totalWeight := 0.0

	for _, category := range tier {
		score, ok := scores[category]
		if !ok {
			continue
		}
		weight, ok := categoryWeights[category]
		if !ok {
			weight = fallbackWeight
		}
		totalScore += score * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0
	}
	return totalScore / totalWeight
}

func allAbove(scores map[string]float64, threshold float64) bool {
	for _, score := range scores {
		if score <= threshold {
			return false
		}
	}
	return true
}
