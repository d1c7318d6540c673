package llm

import (
	"context"
	"fmt"

	"github.com/citecheck/citecheck/internal/model"
)

// NewProvider selects a provider from configuration. An empty provider
// name means the review note is disabled and returns (nil, nil).
func NewProvider(config model.LLMConfig) (Provider, error) {
	switch config.Provider {
	case "":
		return nil, nil
	case "openai", "ollama":
		// Ollama exposes an OpenAI-compatible endpoint; the provider
		// only needs a BaseURL pointing at it.
		cfg := config
		if config.Provider == "ollama" && cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434/v1"
		}
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// Summarize attaches an optional review note to the report. Failures
// are reported inside the note's warnings; the verification results
// themselves are never touched either way.
func Summarize(ctx context.Context, provider Provider, report *model.VerificationReport) {
	if provider == nil {
		return
	}

	summary := &model.LLMSummary{
		Enabled:  true,
		Provider: provider.Name(),
	}
	report.LLM = summary

	resp, err := provider.Summarize(ctx, SummarizeRequest{Report: report})
	if err != nil {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("summary unavailable: %v", err))
		return
	}

	summary.Model = resp.Model
	summary.SummaryMD = resp.Summary
}
