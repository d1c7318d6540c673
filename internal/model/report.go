package model

import (
	"time"

	"github.com/google/uuid"
)

// VerificationReport aggregates the verification results for one document.
// It is a pure derived aggregate: built once from a finished result set,
// never mutated afterward.
type VerificationReport struct {
	ID          string    `json:"id"`       // Report identifier
	Document    string    `json:"document"` // Source document path or name
	ProcessedAt time.Time `json:"processed_at"`

	TotalCitations int `json:"total_citations"`
	Verified       int `json:"verified"`
	NotFound       int `json:"not_found"`
	PartialMatches int `json:"partial_matches"`
	FormatErrors   int `json:"format_errors"`
	APIErrors      int `json:"api_errors"`

	RiskScore int    `json:"risk_score"` // 0-100 document-level risk
	RiskLevel string `json:"risk_level"` // "low", "medium", "high"

	Results []VerificationResult `json:"results"` // Source-text order

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM note (separate, never affects results)
}

// NewReport builds the aggregate report from a finished set of results.
// Results are assumed to be in source-text order already.
func NewReport(document string, results []VerificationResult) *VerificationReport {
	report := &VerificationReport{
		ID:             uuid.NewString(),
		Document:       document,
		ProcessedAt:    time.Now().UTC(),
		TotalCitations: len(results),
		Results:        results,
	}

	for _, r := range results {
		switch r.Status {
		case StatusVerified:
			report.Verified++
		case StatusNotFound:
			report.NotFound++
		case StatusPartialMatch:
			report.PartialMatches++
		case StatusFormatError:
			report.FormatErrors++
		case StatusAPIError:
			report.APIErrors++
		}
	}

	report.RiskScore = riskScore(report)
	report.RiskLevel = riskLevel(report.RiskScore)

	return report
}

// NeedsReview reports whether any result warrants manual attention
func (r *VerificationReport) NeedsReview() bool {
	return r.NotFound > 0 || r.FormatErrors > 0
}

// riskScore weighs status counts into a 0-100 document-level risk figure.
// Weights: not_found 1.0, format_error 0.8, partial_match 0.5, api_error 0.3.
func riskScore(r *VerificationReport) int {
	if r.TotalCitations == 0 {
		return 0
	}

	weighted := float64(r.NotFound)*1.0 +
		float64(r.FormatErrors)*0.8 +
		float64(r.PartialMatches)*0.5 +
		float64(r.APIErrors)*0.3

	score := int(weighted/float64(r.TotalCitations)*100 + 0.5)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func riskLevel(score int) string {
	switch {
	case score < 20:
		return "low"
	case score < 50:
		return "medium"
	default:
		return "high"
	}
}

// LLMSummary contains an optional LLM-generated review note.
// CRITICAL: this never affects statuses, counts, or confidence scores.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
