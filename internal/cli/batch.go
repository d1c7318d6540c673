package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/citecheck/citecheck/internal/pipeline"
	"github.com/citecheck/citecheck/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Check multiple documents",
	Long: `Batch checks several documents and writes one report per document.

Documents are read and parsed concurrently, but all lookups share one
rate limiter, so the request spacing toward the case-law service is
the same as checking the documents one by one.

Example:
  citecheck batch brief1.pdf brief2.docx notes.txt
  citecheck batch briefs/*.pdf --output-dir ./reports -f markdown`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent document workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./citecheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch")
	batchCmd.Flags().StringVarP(&format, "format", "f", "text", "report format (text, markdown, json)")
	batchCmd.Flags().StringVar(&apiToken, "api-token", "", "case-law API token (default: COURTLISTENER_API_TOKEN env var)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the lookup response cache")
	batchCmd.Flags().StringVar(&llmProvider, "llm", "", "enable an LLM review note (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One pipeline for the whole batch: every document shares its
	// rate limiter and cache
	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "Checking %d documents with %d workers\n", len(args), cfg.Concurrency.Workers)

	results := processor.Process(ctx, args)

	succeeded := 0
	failed := 0
	needReview := false

	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Err)
			continue
		}

		out, err := pipeline.RenderReport(result.Report, format)
		if err != nil {
			return err
		}
		reportPath := filepath.Join(outputDir, reportFilename(result.Path, format))
		if err := os.WriteFile(reportPath, out, 0644); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: write report: %v\n", result.Path, err)
			continue
		}

		succeeded++
		if result.Report.NeedsReview() {
			needReview = true
		}
		fmt.Fprintf(os.Stderr, "OK   %s: %d citations, risk %d/100 (%s)\n",
			result.Path, result.Report.TotalCitations, result.Report.RiskScore, result.Report.RiskLevel)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d succeeded, %d failed, reports in %s\n",
		succeeded, failed, outputDir)

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	if needReview {
		return fmt.Errorf("batch: %w", ErrReviewNeeded)
	}
	return nil
}

func reportFilename(docPath, format string) string {
	base := filepath.Base(docPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	ext := ".txt"
	switch format {
	case "markdown", "md":
		ext = ".md"
	case "json":
		ext = ".json"
	}
	return base + ".report" + ext
}
