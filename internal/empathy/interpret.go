package empathy

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// interpretScore maps the final score to its hiring-readiness tier.
func interpretScore(score float64) Interpretation {
	for _, tier := range interpretationTiers {
		if score >= tier.threshold {
			return tier.result
		}
	}
	return interpretationTiers[len(interpretationTiers)-1].result
}

// generateDetailedAnalysis collects strengths (>=80), weaknesses (<60), the
// language alignment summary and the overall alignment label.
func generateDetailedAnalysis(scores map[string]float64, overlap LanguageOverlap) DetailedAnalysis {
	strengths := make([]CategoryAssessment, 0)
	weaknesses := make([]CategoryAssessment, 0)

	for _, category := range categoryNames {
		score, ok := scores[category]
		if !ok {
			continue
		}
		switch {
		case score >= 80:
			strengths = append(strengths, CategoryAssessment{
				Category:    category,
				Score:       score,
				Description: fmt.Sprintf("Excelente alineación en %s", category),
			})
		case score < 60:
			weaknesses = append(weaknesses, CategoryAssessment{
				Category:    category,
				Score:       score,
				Description: fmt.Sprintf("Necesita mejorar en %s", category),
			})
		}
	}

	return DetailedAnalysis{
		Strengths:  strengths,
		Weaknesses: weaknesses,
		LanguageAnalysis: LanguageAnalysis{
			Alignment:        overlap.Score,
			MissingLanguages: overlap.Missing,
			Recommendation:   languageRecommendation(overlap),
		},
		OverallAlignment: overallAlignment(scores),
	}
}

func languageRecommendation(overlap LanguageOverlap) string {
	switch {
	case overlap.Score >= 80:
		return "Excelente cobertura de lenguajes"
	case overlap.Score >= 60:
		return "Buena cobertura, considere añadir los lenguajes faltantes"
	default:
		return "Cobertura insuficiente de lenguajes requeridos por la empresa"
	}
}

func overallAlignment(scores map[string]float64) string {
	if len(scores) == 0 {
		return "Sin datos"
	}

	total := 0.0
	for _, score := range scores {
		total += score
	}
	avg := total / float64(len(scores))

	switch {
	case avg >= 85:
		return "Excelente"
	case avg >= 70:
		return "Bueno"
	case avg >= 55:
		return "Aceptable"
	default:
		return "Necesita mejora"
	}
}

// generateRecommendations emits one templated recommendation per category
// scoring below 70, plus a missing-languages recommendation when the candidate
// lacks reference languages. Sorted by priority, stable within a priority.
func generateRecommendations(scores map[string]float64, overlap LanguageOverlap) []Recommendation {
	recommendations := make([]Recommendation, 0)

	for _, category := range categoryNames {
		score, ok := scores[category]
		if !ok || score >= 70 {
			continue
		}

		template, ok := recommendationTemplates[category]
		if !ok {
			continue
		}

		priority := "medium"
		if score < 50 {
			priority = "high"
		}

		recommendations = append(recommendations, Recommendation{
			Priority:     priority,
			Category:     category,
			Title:        template.title,
			Description:  template.description,
			Tips:         template.tips,
			CurrentScore: score,
			Impact:       fmt.Sprintf("Puede mejorar la puntuación en %d%%", int(math.Round(70-score))),
		})
	}

	if len(overlap.Missing) > 0 {
		recommendations = append(recommendations, Recommendation{
			Priority:    "high",
			Category:    "languages",
			Title:       "Lenguajes faltantes",
			Description: fmt.Sprintf("Considere añadir proyectos en: %s", strings.Join(overlap.Missing, ", ")),
			Impact:      "Alto impacto en la puntuación de empatía",
		})
	}

	priorityOrder := map[string]int{"high": 0, "medium": 1, "low": 2}
	sort.SliceStable(recommendations, func(i, j int) bool {
		iOrder, ok := priorityOrder[recommendations[i].Priority]
		if !ok {
			iOrder = 3
		}
		jOrder, ok := priorityOrder[recommendations[j].Priority]
		if !ok {
			jOrder = 3
		}
		return iOrder < jOrder
	})

	return recommendations
}
