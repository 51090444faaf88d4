package empathy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCorrelations(t *testing.T) {
	t.Run("documentation lifts comments", func(t *testing.T) {
		scores := map[string]float64{
			CategoryDocumentacion: 80,
			CategoryComentarios:   60,
		}

		adjusted, net := applyCorrelations(scores)

		// (80-50) * 0.6 * 0.1 = +1.8
		assert.InDelta(t, 61.8, adjusted[CategoryComentarios], 1e-9)
		assert.InDelta(t, 80.0, adjusted[CategoryDocumentacion], 1e-9)
		assert.InDelta(t, 1.8, net, 1e-9)
	})

	t.Run("weak source drags its target down", func(t *testing.T) {
		scores := map[string]float64{
			CategoryPruebas:       20,
			CategoryManejoErrores: 55,
		}

		adjusted, net := applyCorrelations(scores)

		// (20-50) * 0.4 * 0.1 = -1.2
		assert.InDelta(t, 53.8, adjusted[CategoryManejoErrores], 1e-9)
		assert.InDelta(t, -1.2, net, 1e-9)
	})

	t.Run("adjustment clamps at 100", func(t *testing.T) {
		scores := map[string]float64{
			CategoryDocumentacion: 100,
			CategoryComentarios:   99.5,
		}

		adjusted, net := applyCorrelations(scores)

		assert.InDelta(t, 100.0, adjusted[CategoryComentarios], 1e-9)
		assert.InDelta(t, 0.5, net, 1e-9)
	})

	t.Run("missing categories pass through untouched", func(t *testing.T) {
		scores := map[string]float64{
			CategoryDocumentacion: 90,
			CategoryNombres:       70,
		}

		adjusted, net := applyCorrelations(scores)

		assert.Equal(t, scores[CategoryDocumentacion], adjusted[CategoryDocumentacion])
		assert.Equal(t, scores[CategoryNombres], adjusted[CategoryNombres])
		assert.NotContains(t, adjusted, CategoryComentarios)
		assert.Zero(t, net)
	})

	t.Run("input map is not mutated", func(t *testing.T) {
		scores := map[string]float64{
			CategoryDocumentacion: 80,
			CategoryComentarios:   60,
		}

		_, _ = applyCorrelations(scores)

		assert.Equal(t, 60.0, scores[CategoryComentarios])
	})

	t.Run("adjustments compound in matrix order", func(t *testing.T) {
		// patrones lifts modularidad before modularidad feeds complejidad?
		// No: modularidad->complejidad precedes patrones->modularidad, so the
		// complejidad nudge sees the pre-lift modularidad value.
		scores := map[string]float64{
			CategoryModularidad: 60,
			CategoryComplejidad: 60,
			CategoryPatrones:    100,
		}

		adjusted, _ := applyCorrelations(scores)

		// complejidad: 60 + (60-50)*0.5*0.1 = 60.5 (uses modularidad=60)
		assert.InDelta(t, 60.5, adjusted[CategoryComplejidad], 1e-9)
		// modularidad then gains from patrones: 60 + 50*0.4*0.1 = 62
		assert.InDelta(t, 62.0, adjusted[CategoryModularidad], 1e-9)
	})
}
