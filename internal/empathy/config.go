package empathy

// AlgorithmVersion identifies the tiered multi-factor scoring pipeline.
const AlgorithmVersion = "3.0.0"

// categoryWeights are the fixed per-category weights. The eleven values sum to
// 1.0 and are never mutated after initialization.
var categoryWeights = map[string]float64{
	CategoryNombres:            0.10,
	CategoryDocumentacion:      0.12,
	CategoryModularidad:        0.10,
	CategoryComplejidad:        0.10,
	CategoryManejoErrores:      0.08,
	CategoryPruebas:            0.12,
	CategorySeguridad:          0.12,
	CategoryConsistenciaEstilo: 0.08,
	CategoryPatrones:           0.10,
	CategoryRendimiento:        0.04,
	CategoryComentarios:        0.04,
}

// fallbackWeight applies if a category ever falls outside the fixed table.
const fallbackWeight = 0.05

// correlation links a source category to a target it influences. Adjustments
// compound in slice order, so the order here is part of the contract.
type correlation struct {
	source      string
	target      string
	coefficient float64
}

var correlationMatrix = []correlation{
	{CategoryDocumentacion, CategoryComentarios, 0.6},
	{CategoryPruebas, CategoryManejoErrores, 0.4},
	{CategoryModularidad, CategoryComplejidad, 0.5},
	{CategoryNombres, CategoryConsistenciaEstilo, 0.5},
	{CategorySeguridad, CategoryManejoErrores, 0.3},
	{CategoryPatrones, CategoryModularidad, 0.4},
	{CategoryRendimiento, CategoryComplejidad, 0.3},
}

// Tier membership for the base score composer.
var (
	criticalCategories  = []string{CategoryPatrones, CategorySeguridad, CategoryPruebas}
	importantCategories = []string{CategoryNombres, CategoryDocumentacion, CategoryModularidad, CategoryComplejidad}
	standardCategories  = []string{CategoryManejoErrores, CategoryRendimiento, CategoryComentarios, CategoryConsistenciaEstilo}
)

const (
	criticalTierWeight  = 0.45
	importantTierWeight = 0.35
	standardTierWeight  = 0.20
)

// criticalImpactWeights drive the excellence/deficiency factor of the
// multi-factor adjuster.
var criticalImpactWeights = []struct {
	category string
	weight   float64
}{
	{CategorySeguridad, 3.0},
	{CategoryPruebas, 2.5},
	{CategoryPatrones, 2.5},
	{CategoryDocumentacion, 2.0},
	{CategoryRendimiento, 1.5},
}

// languageImportance is declared configuration that the scoring path does not
// consume. It is kept for compatibility with the report schema and must stay
// inert: wiring it in would change scores.
var languageImportance = map[string]float64{
	"Python":     1.0,
	"JavaScript": 1.0,
	"TypeScript": 1.1,
	"Java":       1.0,
	"Go":         1.05,
	"C#":         1.0,
	"C++":        1.1,
	"PHP":        0.95,
	"Ruby":       0.95,
	"Swift":      1.05,
	"HTML":       0.8,
	"CSS":        0.8,
}

// recommendationTemplate is the fixed business text emitted for a weak category.
type recommendationTemplate struct {
	title       string
	description string
	tips        []string
}

var recommendationTemplates = map[string]recommendationTemplate{
	CategoryNombres: {
		title:       "Mejorar nomenclatura",
		description: "Use nombres más descriptivos siguiendo las convenciones de la empresa",
		tips: []string{
			"Use camelCase o snake_case consistentemente",
			"Evite abreviaciones",
			"Use nombres que expresen intención",
		},
	},
	CategoryDocumentacion: {
		title:       "Aumentar documentación",
		description: "Añada más comentarios y documentación al código",
		tips: []string{
			"Documente todas las funciones públicas",
			"Añada comentarios en lógica compleja",
			"Use formato de documentación estándar del lenguaje",
		},
	},
	CategoryModularidad: {
		title:       "Mejorar modularidad",
		description: "Divida el código en módulos más pequeños y cohesivos",
		tips: []string{
			"Mantenga funciones cortas y con una sola responsabilidad",
			"Agrupe funcionalidad relacionada en módulos",
			"Reduzca el acoplamiento entre componentes",
		},
	},
	CategoryComplejidad: {
		title:       "Reducir complejidad",
		description: "Simplifique la lógica para acercarse al estilo de la empresa",
		tips: []string{
			"Extraiga condiciones anidadas a funciones auxiliares",
			"Evite funciones con muchas ramas",
			"Prefiera retornos tempranos",
		},
	},
	CategoryManejoErrores: {
		title:       "Mejorar manejo de errores",
		description: "Trate los errores de forma explícita y consistente",
		tips: []string{
			"No ignore errores silenciosamente",
			"Use los mecanismos de error idiomáticos del lenguaje",
			"Añada contexto a los errores propagados",
		},
	},
	CategoryPruebas: {
		title:       "Implementar más pruebas",
		description: "Aumente la cobertura de pruebas unitarias",
		tips: []string{
			"Añada tests para casos edge",
			"Implemente tests de integración",
			"Use TDD para nuevo código",
		},
	},
	CategorySeguridad: {
		title:       "Mejorar prácticas de seguridad",
		description: "Implemente validaciones y prácticas seguras",
		tips: []string{
			"Valide todas las entradas de usuario",
			"Use consultas parametrizadas",
			"Evite exponer información sensible",
		},
	},
	CategoryConsistenciaEstilo: {
		title:       "Unificar estilo",
		description: "Aplique un estilo de formato consistente en todo el código",
		tips: []string{
			"Use un formateador automático",
			"Siga la guía de estilo del lenguaje",
			"Mantenga una convención única de indentación",
		},
	},
	CategoryPatrones: {
		title:       "Aplicar patrones de diseño",
		description: "Incorpore patrones de diseño y elimine anti-patrones",
		tips: []string{
			"Identifique anti-patrones existentes y refactorícelos",
			"Use patrones conocidos para problemas recurrentes",
			"Evite sobre-ingeniería al aplicar patrones",
		},
	},
	CategoryRendimiento: {
		title:       "Optimizar rendimiento",
		description: "Corrija los problemas de rendimiento detectados",
		tips: []string{
			"Evite trabajo innecesario en bucles",
			"Revise el uso de memoria en rutas calientes",
			"Mida antes de optimizar",
		},
	},
	CategoryComentarios: {
		title:       "Mejorar calidad de comentarios",
		description: "Escriba comentarios útiles y resuelva los marcadores pendientes",
		tips: []string{
			"Resuelva los TODO y FIXME pendientes",
			"Comente el porqué, no el qué",
			"Elimine comentarios obsoletos",
		},
	},
}

// interpretationTier maps an inclusive lower bound to its business text.
type interpretationTier struct {
	threshold float64
	result    Interpretation
}

var interpretationTiers = []interpretationTier{
	{90, Interpretation{
		Level:          "Excelente",
		Description:    "El candidato tiene un estilo de código muy alineado con la empresa",
		Recommendation: "Candidato altamente recomendado",
		Color:          "#000000",
	}},
	{75, Interpretation{
		Level:          "Bueno",
		Description:    "Buena alineación con algunas áreas de mejora",
		Recommendation: "Candidato recomendado con capacitación menor",
		Color:          "#333333",
	}},
	{60, Interpretation{
		Level:          "Aceptable",
		Description:    "Alineación moderada, requiere adaptación",
		Recommendation: "Candidato viable con plan de capacitación",
		Color:          "#666666",
	}},
	{45, Interpretation{
		Level:          "Bajo",
		Description:    "Baja alineación con el estilo de la empresa",
		Recommendation: "Requiere capacitación significativa",
		Color:          "#999999",
	}},
	{0, Interpretation{
		Level:          "Muy Bajo",
		Description:    "Estilo de código muy diferente al de la empresa",
		Recommendation: "No recomendado sin capacitación extensiva",
		Color:          "#CCCCCC",
	}},
}
