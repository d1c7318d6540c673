package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/citecheck/citecheck/internal/cache"
	"github.com/citecheck/citecheck/internal/convert"
	"github.com/citecheck/citecheck/internal/extract"
	"github.com/citecheck/citecheck/internal/llm"
	"github.com/citecheck/citecheck/internal/lookup"
	"github.com/citecheck/citecheck/internal/model"
	"github.com/citecheck/citecheck/internal/validate"
	"github.com/citecheck/citecheck/internal/verify"
	"github.com/citecheck/citecheck/internal/worker"
)

// Pipeline orchestrates the complete check: read, convert, extract,
// verify, aggregate. One Pipeline owns one rate limiter, so every
// document checked through it shares the same request spacing.
type Pipeline struct {
	extractor *extract.Extractor
	engine    *verify.Engine
	limiter   *worker.Limiter
	provider  llm.Provider
	config    *model.Config
}

// NewPipeline creates a pipeline from configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	limiter := worker.NewLimiter(cfg.API.MinInterval)

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.TTL, cacheDir(cfg), cfg.Cache.TTL)
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM provider disabled: %v\n", err)
		} else {
			provider = p
		}
	}

	client := lookup.NewClient(cfg, limiter, store)

	return &Pipeline{
		extractor: extract.NewDefault(),
		engine:    verify.New(client, validate.NewDefault()),
		limiter:   limiter,
		provider:  provider,
		config:    cfg,
	}
}

// ExtractCitations reads and converts a document, returning the
// citations in source order without verifying any of them.
func (p *Pipeline) ExtractCitations(path string) ([]model.Citation, error) {
	text, err := p.loadText(path)
	if err != nil {
		return nil, err
	}
	return p.extractor.Extract(text), nil
}

// CheckFile runs the full check on one document
func (p *Pipeline) CheckFile(ctx context.Context, path string) (*model.VerificationReport, error) {
	text, err := p.loadText(path)
	if err != nil {
		return nil, err
	}

	citations := p.extractor.Extract(text)
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Found %d citations in %s\n", len(citations), path)
	}

	results := p.engine.VerifyAll(ctx, citations)
	report := model.NewReport(filepath.Base(path), results)

	// Advisory note only; verification output is already final
	llm.Summarize(ctx, p.provider, report)

	return report, nil
}

func (p *Pipeline) loadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	text, err := convert.ExtractText(data, path)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

func cacheDir(cfg *model.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".citecheck-cache"
	}
	return filepath.Join(home, ".citecheck", "cache")
}
