package types

import (
	"time"

	"github.com/rbenitez/repo-code-empathizer/internal/empathy"
)

// CompareRequest is the payload for an empathy comparison. Both sides carry
// pre-computed metric reports produced by an external analyzer.
type CompareRequest struct {
	Empresa   *empathy.MetricReport `json:"empresa" binding:"required"`
	Candidato *empathy.MetricReport `json:"candidato" binding:"required"`
}

// CompareResponse wraps the empathy result with request bookkeeping.
type CompareResponse struct {
	Result      *empathy.EmpathyResult `json:"result"`
	RequestID   string                 `json:"request_id,omitempty"`
	ProcessedAt time.Time              `json:"processed_at"`
	DurationMS  int64                  `json:"duration_ms"`
}

// RepoProfile is a lightweight summary of a hosted repository, enough to
// seed the metadata side of a comparison.
type RepoProfile struct {
	Owner     string           `json:"owner"`
	Name      string           `json:"name"`
	Languages []string         `json:"languages"`
	ByteShare map[string]int64 `json:"byte_share,omitempty"`
	FileCount int              `json:"file_count"`
	Stars     int              `json:"stars"`
	Forks     int              `json:"forks"`
	PushedAt  time.Time        `json:"pushed_at"`
	Topics    []string         `json:"topics,omitempty"`
}

// Metadata returns the profile expressed as report metadata.
func (p *RepoProfile) Metadata() empathy.Metadata {
	return empathy.Metadata{
		AnalyzedLanguages: append([]string(nil), p.Languages...),
		AnalyzedFiles:     p.FileCount,
	}
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
