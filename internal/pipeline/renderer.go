package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/citecheck/citecheck/internal/model"
)

// RenderReport serializes a report in the requested format: "text",
// "markdown", or "json".
func RenderReport(report *model.VerificationReport, format string) ([]byte, error) {
	switch format {
	case "text", "":
		return []byte(renderText(report)), nil
	case "markdown", "md":
		return []byte(renderMarkdown(report)), nil
	case "json":
		return json.MarshalIndent(report, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %q (supported: text, markdown, json)", format)
	}
}

// RenderCitations serializes an extract-only citation list
func RenderCitations(document string, citations []model.Citation, format string) ([]byte, error) {
	switch format {
	case "text", "":
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %d citations\n", document, len(citations))
		for i, c := range citations {
			fmt.Fprintf(&b, "%3d. %s\n", i+1, c.Raw)
		}
		return []byte(b.String()), nil
	case "markdown", "md":
		var b strings.Builder
		fmt.Fprintf(&b, "# Citations in %s\n\n", document)
		for _, c := range citations {
			fmt.Fprintf(&b, "- `%s`\n", c.Raw)
		}
		return []byte(b.String()), nil
	case "json":
		return json.MarshalIndent(struct {
			Document  string           `json:"document"`
			Citations []model.Citation `json:"citations"`
		}{document, citations}, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %q (supported: text, markdown, json)", format)
	}
}

// Summary returns the short console summary printed after a check
func Summary(report *model.VerificationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d citations, %d verified, %d not found, %d partial, %d format errors, %d API errors\n",
		report.Document, report.TotalCitations, report.Verified, report.NotFound,
		report.PartialMatches, report.FormatErrors, report.APIErrors)
	fmt.Fprintf(&b, "Risk: %d/100 (%s)\n", report.RiskScore, report.RiskLevel)
	if report.NeedsReview() {
		b.WriteString("Review needed: some citations could not be verified\n")
	}
	return b.String()
}

func renderText(report *model.VerificationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Citation Verification Report\n")
	fmt.Fprintf(&b, "Document:  %s\n", report.Document)
	fmt.Fprintf(&b, "Processed: %s\n", report.ProcessedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Risk:      %d/100 (%s)\n\n", report.RiskScore, report.RiskLevel)

	fmt.Fprintf(&b, "Citations: %d total, %d verified, %d not found, %d partial, %d format errors, %d API errors\n\n",
		report.TotalCitations, report.Verified, report.NotFound,
		report.PartialMatches, report.FormatErrors, report.APIErrors)

	for i, r := range report.Results {
		fmt.Fprintf(&b, "%3d. [%s] %s (confidence %d)\n", i+1, statusMark(r.Status), r.Citation.Raw, r.Confidence)
		if r.Details != "" {
			fmt.Fprintf(&b, "     %s\n", r.Details)
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "     warning: %s\n", w)
		}
	}

	if report.LLM != nil && report.LLM.SummaryMD != "" {
		fmt.Fprintf(&b, "\nReview note (%s/%s):\n%s\n", report.LLM.Provider, report.LLM.Model, report.LLM.SummaryMD)
	}

	return b.String()
}

func renderMarkdown(report *model.VerificationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Citation Verification Report\n\n")
	fmt.Fprintf(&b, "- **Document**: %s\n", report.Document)
	fmt.Fprintf(&b, "- **Processed**: %s\n", report.ProcessedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Risk**: %d/100 (%s)\n", report.RiskScore, report.RiskLevel)
	fmt.Fprintf(&b, "- **Citations**: %d total / %d verified / %d not found / %d partial / %d format errors / %d API errors\n\n",
		report.TotalCitations, report.Verified, report.NotFound,
		report.PartialMatches, report.FormatErrors, report.APIErrors)

	b.WriteString("| # | Status | Citation | Confidence | Details |\n")
	b.WriteString("|---|--------|----------|------------|---------|\n")
	for i, r := range report.Results {
		fmt.Fprintf(&b, "| %d | %s | `%s` | %d | %s |\n",
			i+1, r.Status, r.Citation.Raw, r.Confidence, escapeMarkdownCell(r.Details))
	}

	warned := false
	for i, r := range report.Results {
		for _, w := range r.Warnings {
			if !warned {
				b.WriteString("\n## Warnings\n\n")
				warned = true
			}
			fmt.Fprintf(&b, "- citation %d: %s\n", i+1, w)
		}
	}

	if report.LLM != nil && report.LLM.SummaryMD != "" {
		fmt.Fprintf(&b, "\n## Review Note\n\n%s\n", report.LLM.SummaryMD)
	}

	return b.String()
}

func statusMark(status model.VerificationStatus) string {
	switch status {
	case model.StatusVerified:
		return "OK"
	case model.StatusPartialMatch:
		return "??"
	case model.StatusNotFound:
		return "XX"
	case model.StatusFormatError:
		return "FMT"
	case model.StatusAPIError:
		return "API"
	default:
		return string(status)
	}
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
