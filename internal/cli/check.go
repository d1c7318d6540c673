package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/citecheck/citecheck/internal/model"
	"github.com/citecheck/citecheck/internal/pipeline"
)

var (
	outputPath  string
	format      string
	extractOnly bool
	timeout     time.Duration
	apiToken    string
	noCache     bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check every citation in a document",
	Long: `Check scans a document for case citations and verifies each one
against the case-law database:
- Extract citations (full "X v. Y, 410 U.S. 113 (1973)" and short forms)
- Validate volume, page, year, and reporter locally
- Look up each citation and score candidate matches
- Classify as verified, partial match, not found, format error, or API error

Supported document formats: .txt, .md, .html, .pdf, .docx

Example:
  citecheck check brief.pdf
  citecheck check brief.txt -f markdown -o report.md
  citecheck check brief.docx --extract-only -f json

Exit codes: 0 all citations verified, 2 some need review, 1 fatal error.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
	checkCmd.Flags().StringVarP(&format, "format", "f", "text", "report format (text, markdown, json)")
	checkCmd.Flags().BoolVar(&extractOnly, "extract-only", false, "list citations without verifying them")
	checkCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&apiToken, "api-token", "", "case-law API token (default: COURTLISTENER_API_TOKEN env var)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the lookup response cache")

	checkCmd.Flags().StringVar(&llmProvider, "llm", "", "enable an LLM review note (openai, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	p := pipeline.NewPipeline(cfg)

	if extractOnly {
		citations, err := p.ExtractCitations(path)
		if err != nil {
			return err
		}
		out, err := pipeline.RenderCitations(filepath.Base(path), citations, format)
		if err != nil {
			return err
		}
		return writeOutput(out)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
	}

	report, err := p.CheckFile(ctx, path)
	if err != nil {
		return err
	}

	out, err := pipeline.RenderReport(report, format)
	if err != nil {
		return err
	}
	if err := writeOutput(out); err != nil {
		return err
	}
	if outputPath != "" {
		fmt.Print(pipeline.Summary(report))
	}

	if report.NeedsReview() {
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrReviewNeeded)
	}
	return nil
}

func writeOutput(data []byte) error {
	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote report: %s\n", outputPath)
	}
	return nil
}

// buildConfig layers flags over environment variables, the config
// file, and the built-in defaults.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if viper.IsSet("api.base_url") {
		cfg.API.BaseURL = viper.GetString("api.base_url")
	}
	if viper.IsSet("api.token") {
		cfg.API.Token = viper.GetString("api.token")
	}
	if viper.IsSet("api.min_interval") {
		cfg.API.MinInterval = viper.GetDuration("api.min_interval")
	}
	if viper.IsSet("http.timeout") {
		cfg.HTTP.Timeout = viper.GetDuration("http.timeout")
	}
	if viper.IsSet("http.user_agent") {
		cfg.HTTP.UserAgent = viper.GetString("http.user_agent")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	}

	if apiToken != "" {
		cfg.API.Token = apiToken
	} else if cfg.API.Token == "" {
		cfg.API.Token = os.Getenv("COURTLISTENER_API_TOKEN")
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.Format = format
	cfg.Output.Verbose = verbose

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		default:
			return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", llmProvider)
		}
	}

	return cfg, nil
}
