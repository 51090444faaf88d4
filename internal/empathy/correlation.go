package empathy

// applyCorrelations nudges each target category by its correlated source's
// distance from the 50-point midline. Adjustments compound in matrix order and
// each result is clamped to [0,100] before the next entry sees it. Returns the
// adjusted scores and the net signed change across the stage.
func applyCorrelations(scores map[string]float64) (map[string]float64, float64) {
	adjusted := make(map[string]float64, len(scores))
	for category, score := range scores {
		adjusted[category] = score
	}

	netChange := 0.0
	for _, entry := range correlationMatrix {
		sourceScore, sourceOK := adjusted[entry.source]
		targetScore, targetOK := adjusted[entry.target]
		if !sourceOK || !targetOK {
			continue
		}

		next := clamp(targetScore+(sourceScore-50)*entry.coefficient*0.1, 0, 100)
		netChange += next - targetScore
		adjusted[entry.target] = next
	}

	return adjusted, netChange
}
