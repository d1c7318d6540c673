package model

import "time"

// Config holds the complete citecheck configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	API         APIConfig         `yaml:"api"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
}

// HTTPConfig controls the outbound HTTP client
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy"`
}

// APIConfig controls access to the case-law lookup service
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Token is the optional API credential. Absence degrades to the
	// anonymous rate allowance but does not change the code path.
	Token string `yaml:"token"`
	// MinInterval is the minimum spacing between any two outbound
	// requests. The service expects request spacing; treat this as a
	// hard external contract.
	MinInterval time.Duration `yaml:"min_interval"`
}

// CacheConfig controls lookup-response caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format  string `yaml:"format"` // "text", "markdown", or "json"
	Verbose bool   `yaml:"verbose"`
}

// LLMConfig controls the optional LLM review note
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // From environment only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "CiteCheck/0.1 (+https://github.com/citecheck/citecheck)",
		},
		API: APIConfig{
			BaseURL:     "https://www.courtlistener.com/api/rest/v4",
			MinInterval: 500 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Format: "text",
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
