package model

import "time"

// Config holds the complete veriwiki configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	HTTP      HTTPConfig      `yaml:"http"`
	Wikipedia WikipediaConfig `yaml:"wikipedia"`
	LLM       LLMConfig       `yaml:"llm"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Extract   ExtractConfig   `yaml:"extract"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr"` // Listen address, e.g. ":8080"
}

// HTTPConfig holds settings for outbound HTTP clients
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy"`
}

// WikipediaConfig holds the encyclopedia service endpoints
type WikipediaConfig struct {
	// APIURL is the MediaWiki action API endpoint (search)
	APIURL string `yaml:"api_url"`

	// RESTURL is the REST API base (page summaries)
	RESTURL string `yaml:"rest_url"`

	// ArticleBaseURL is the public article URL prefix used for attribution
	ArticleBaseURL string `yaml:"article_base_url"`

	// RequestsPerSecond throttles outbound calls to Wikipedia
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// CheckRobots gates summary fetches on robots.txt
	CheckRobots bool `yaml:"check_robots"`
}

// LLMConfig holds reasoning service configuration
type LLMConfig struct {
	// Provider name: "gateway", "openai", "anthropic"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for the provider (usually supplied via environment)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string `yaml:"base_url"`

	// Timeout for API requests, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens for rewrite generation
	MaxTokens int `yaml:"max_tokens"`
}

// RateLimitConfig holds the per-client fixed-window limits
type RateLimitConfig struct {
	Window      time.Duration `yaml:"window"`
	MaxRequests int           `yaml:"max_requests"`
}

// ExtractConfig holds claim extraction bounds
type ExtractConfig struct {
	MaxClaims   int `yaml:"max_claims"`
	MinSentence int `yaml:"min_sentence"` // fragments at or below this length are dropped
}

// DefaultConfig returns the built-in configuration defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "veriwiki/0.1 (+https://github.com/ppiankov/veriwiki)",
		},
		Wikipedia: WikipediaConfig{
			APIURL:            "https://en.wikipedia.org/w/api.php",
			RESTURL:           "https://en.wikipedia.org/api/rest_v1",
			ArticleBaseURL:    "https://en.wikipedia.org/wiki/",
			RequestsPerSecond: 5,
			CheckRobots:       true,
		},
		LLM: LLMConfig{
			Provider:  "gateway",
			Model:     "google/gemini-2.5-flash",
			BaseURL:   "https://ai.gateway.lovable.dev/v1",
			Timeout:   60,
			MaxTokens: 2000,
		},
		RateLimit: RateLimitConfig{
			Window:      time.Minute,
			MaxRequests: 10,
		},
		Extract: ExtractConfig{
			MaxClaims:   8,
			MinSentence: 20,
		},
	}
}
