package empathy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierAverage(t *testing.T) {
	tests := []struct {
		name     string
		scores   map[string]float64
		tier     []string
		expected float64
	}{
		{
			name: "weighted average over present categories",
			scores: map[string]float64{
				CategoryPatrones:  50, // weight 0.10
				CategorySeguridad: 80, // weight 0.12
				CategoryPruebas:   80, // weight 0.12
			},
			tier:     criticalCategories,
			expected: (50*0.10 + 80*0.12 + 80*0.12) / 0.34,
		},
		{
			name: "absent categories are skipped",
			scores: map[string]float64{
				CategorySeguridad: 90,
			},
			tier:     criticalCategories,
			expected: 90,
		},
		{
			name:     "empty tier contributes zero",
			scores:   map[string]float64{},
			tier:     criticalCategories,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tierAverage(tt.scores, tt.tier), 1e-9)
		})
	}
}

func TestComposeBaseScore(t *testing.T) {
	t.Run("combines the three tiers", func(t *testing.T) {
		scores := map[string]float64{
			// critical, uniform 80
			CategoryPatrones:  80,
			CategorySeguridad: 80,
			CategoryPruebas:   80,
			// important, uniform 90
			CategoryNombres:       90,
			CategoryDocumentacion: 90,
			CategoryModularidad:   90,
			CategoryComplejidad:   90,
			// standard, uniform 75
			CategoryManejoErrores:      75,
			CategoryRendimiento:        75,
			CategoryComentarios:        75,
			CategoryConsistenciaEstilo: 75,
		}

		base := composeBaseScore(scores)

		// 80*0.45 + 90*0.35 + 75*0.20 = 82.5, then +5 since everything > 70
		assert.InDelta(t, 87.5, base, 1e-9)
	})

	t.Run("weak critical tier takes an extra penalty", func(t *testing.T) {
		scores := map[string]float64{
			CategoryPatrones:  30,
			CategorySeguridad: 30,
			CategoryPruebas:   30,
			CategoryNombres:   90,
		}

		base := composeBaseScore(scores)

		// 30*0.45 + 90*0.35 + 0*0.20 = 45, minus (50-30)*0.3 = 6
		assert.InDelta(t, 39.0, base, 1e-9)
	})

	t.Run("penalty floors at zero", func(t *testing.T) {
		scores := map[string]float64{
			CategoryPatrones:  0,
			CategorySeguridad: 0,
			CategoryPruebas:   0,
		}

		assert.Equal(t, 0.0, composeBaseScore(scores))
	})

	t.Run("uniform excellence bonus caps at 100", func(t *testing.T) {
		scores := map[string]float64{}
		for _, category := range categoryNames {
			scores[category] = 100
		}

		assert.Equal(t, 100.0, composeBaseScore(scores))
	})

	t.Run("no categories yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, composeBaseScore(map[string]float64{}))
	})
}
