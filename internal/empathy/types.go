package empathy

// Category names as they appear in metric reports. The order here is the
// canonical iteration order for every stage, so results are reproducible.
const (
	CategoryNombres            = "nombres"
	CategoryDocumentacion      = "documentacion"
	CategoryModularidad        = "modularidad"
	CategoryComplejidad        = "complejidad"
	CategoryManejoErrores      = "manejo_errores"
	CategoryPruebas            = "pruebas"
	CategorySeguridad          = "seguridad"
	CategoryConsistenciaEstilo = "consistencia_estilo"
	CategoryPatrones           = "patrones"
	CategoryRendimiento        = "rendimiento"
	CategoryComentarios        = "comentarios"
)

// Metadata describes the analyzed repository as reported by a metric producer.
type Metadata struct {
	AnalyzedLanguages []string `json:"lenguajes_analizados"`
	AnalyzedFiles     int      `json:"archivos_analizados"`
}

// PatternBlock holds design pattern detection results. Scores are 0-100.
type PatternBlock struct {
	PatternScore   float64             `json:"pattern_score"`
	DesignPatterns map[string][]string `json:"design_patterns"`
	AntiPatterns   map[string][]string `json:"anti_patterns"`
}

// PerformanceBlock holds performance analysis results. Scores are 0-100.
type PerformanceBlock struct {
	PerformanceScore  float64             `json:"performance_score"`
	PerformanceIssues map[string][]string `json:"performance_issues"`
}

// CommentMetrics holds aggregate comment quality figures.
type CommentMetrics struct {
	CommentQualityScore float64 `json:"comment_quality_score"`
}

// CommentBlock holds comment analysis results, including TODO/FIXME markers.
type CommentBlock struct {
	CommentMetrics CommentMetrics      `json:"comment_metrics"`
	Markers        map[string][]string `json:"markers"`
}

// MetricReport is the per-repository input produced by an external metric
// producer. Base category values are normalized to [0,1] where 1.0 is ideal
// (complejidad is already inverted upstream: 1.0 means low complexity).
// Missing categories and missing metrics within a category are tolerated.
type MetricReport struct {
	Metadata    Metadata                      `json:"metadata"`
	Categories  map[string]map[string]float64 `json:"categorias"`
	Patterns    *PatternBlock                 `json:"patrones,omitempty"`
	Performance *PerformanceBlock             `json:"rendimiento,omitempty"`
	Comments    *CommentBlock                 `json:"comentarios,omitempty"`
}

// LanguageOverlap is the coverage comparison between the two repositories'
// language sets. Extra is omitted entirely when the reference set is empty.
type LanguageOverlap struct {
	Score   float64  `json:"score"`
	Overlap []string `json:"overlap"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra,omitempty"`
}

// CategoryAssessment annotates a notably strong or weak category.
type CategoryAssessment struct {
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// LanguageAnalysis summarizes language alignment for the detailed analysis.
type LanguageAnalysis struct {
	Alignment        float64  `json:"alignment"`
	MissingLanguages []string `json:"missing_languages"`
	Recommendation   string   `json:"recommendation"`
}

// DetailedAnalysis groups the qualitative findings of a comparison.
type DetailedAnalysis struct {
	Strengths        []CategoryAssessment `json:"strengths"`
	Weaknesses       []CategoryAssessment `json:"weaknesses"`
	LanguageAnalysis LanguageAnalysis     `json:"language_analysis"`
	OverallAlignment string               `json:"overall_alignment"`
}

// Recommendation is one actionable suggestion for the candidate.
type Recommendation struct {
	Priority     string   `json:"priority"`
	Category     string   `json:"category"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tips         []string `json:"tips,omitempty"`
	CurrentScore float64  `json:"current_score,omitempty"`
	Impact       string   `json:"impact"`
}

// Interpretation maps the final score to a hiring-readiness tier.
type Interpretation struct {
	Level          string `json:"level"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Color          string `json:"color"`
}

// ComplexityFactors exposes the intermediate figures behind the final score so
// reports can explain how it was reached.
type ComplexityFactors struct {
	BaseScore             float64 `json:"base_score"`
	CorrelationAdjustment float64 `json:"correlation_adjustment"`
	MultiFactorAdjustment float64 `json:"multi_factor_adjustment"`
}

// EmpathyResult is the full output of one comparison. It is created fresh per
// invocation and carries no state beyond the call that produced it.
type EmpathyResult struct {
	EmpathyScore      float64            `json:"empathy_score"`
	CategoryScores    map[string]float64 `json:"category_scores"`
	LanguageOverlap   LanguageOverlap    `json:"language_overlap"`
	DetailedAnalysis  DetailedAnalysis   `json:"detailed_analysis"`
	Recommendations   []Recommendation   `json:"recommendations"`
	Interpretation    Interpretation     `json:"interpretation"`
	AlgorithmVersion  string             `json:"algorithm_version"`
	ComplexityFactors ComplexityFactors  `json:"complexity_factors"`
}

// categoryNames is the canonical ordering used by every stage.
var categoryNames = []string{
	CategoryNombres,
	CategoryDocumentacion,
	CategoryModularidad,
	CategoryComplejidad,
	CategoryManejoErrores,
	CategoryPruebas,
	CategorySeguridad,
	CategoryConsistenciaEstilo,
	CategoryPatrones,
	CategoryRendimiento,
	CategoryComentarios,
}

// baseCategoryNames are the eight flat metric categories.
var baseCategoryNames = categoryNames[:8]

func (p *PatternBlock) empty() bool {
	return p == nil || (p.PatternScore == 0 && len(p.DesignPatterns) == 0 && len(p.AntiPatterns) == 0)
}

func (p *PerformanceBlock) empty() bool {
	return p == nil || (p.PerformanceScore == 0 && len(p.PerformanceIssues) == 0)
}

func (c *CommentBlock) empty() bool {
	return c == nil || (c.CommentMetrics.CommentQualityScore == 0 && len(c.Markers) == 0)
}

func countNested(m map[string][]string) int {
	total := 0
	for _, items := range m {
		total += len(items)
	}
	return total
}
