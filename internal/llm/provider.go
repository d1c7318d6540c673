package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/citecheck/citecheck/internal/model"
)

// Provider defines the interface for LLM review-note providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a short review note for a finished report.
	// The note is advisory prose only; it never changes any
	// verification status, count, or confidence.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for report summarization
type SummarizeRequest struct {
	// Report is the finished verification report to summarize
	Report *model.VerificationReport

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's output
type SummarizeResponse struct {
	// Summary is the generated note, markdown
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// BuildPrompt constructs the default summarization prompt. The rules
// keep the note descriptive: the model restates what verification
// found and must not assert that any citation is real or fabricated
// beyond what the statuses already say.
func BuildPrompt(report *model.VerificationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are writing a short review note for a legal-citation verification report. The verification statuses below are final; do not second-guess or restate them as your own findings.

RULES:
1. Describe only what the report contains. Do not speculate about citations not listed.
2. Never assert that a citation is real or fabricated. Use the report's own language: "verified", "not found", "partial match".
3. If citations need manual review, say which and why, citing the warnings verbatim where useful.
4. Do not give legal advice.

Report:
- Document: %s
- Total citations: %d
- Verified: %d, not found: %d, partial matches: %d, format errors: %d, API errors: %d
- Risk score: %d/100 (%s)
`,
		report.Document, report.TotalCitations,
		report.Verified, report.NotFound, report.PartialMatches,
		report.FormatErrors, report.APIErrors,
		report.RiskScore, report.RiskLevel)

	flagged := 0
	for _, r := range report.Results {
		if r.Status == model.StatusVerified {
			continue
		}
		if flagged == 0 {
			b.WriteString("\nFlagged citations:\n")
		}
		if flagged >= 10 {
			fmt.Fprintf(&b, "... and more flagged citations omitted\n")
			break
		}
		fmt.Fprintf(&b, "- %q: %s", r.Citation.Raw, r.Status)
		if r.Details != "" {
			fmt.Fprintf(&b, " (%s)", r.Details)
		}
		b.WriteString("\n")
		flagged++
	}

	b.WriteString("\nWrite a 3-4 sentence note summarizing what a reviewer should look at first.")
	return b.String()
}
