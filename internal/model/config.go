package model

import "time"

// Weights are the scoring knobs of the unified decision engine. They are
// independent sensitivity factors and are not required to sum to 1.
type Weights struct {
	W1 float64 `json:"w1" yaml:"w1" mapstructure:"w1"` // support (distinct contexts)
	W2 float64 `json:"w2" yaml:"w2" mapstructure:"w2"` // cause coverage
	W3 float64 `json:"w3" yaml:"w3" mapstructure:"w3"` // outcome strength
	W4 float64 `json:"w4" yaml:"w4" mapstructure:"w4"` // recency
	W5 float64 `json:"w5" yaml:"w5" mapstructure:"w5"` // constraint fit
	W6 float64 `json:"w6" yaml:"w6" mapstructure:"w6"` // debt penalty (subtracted)
}

// Map renders the weights as the w1..w6 mapping used in result payloads
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		"w1": w.W1,
		"w2": w.W2,
		"w3": w.W3,
		"w4": w.W4,
		"w5": w.W5,
		"w6": w.W6,
	}
}

// DefaultWeights returns the standard scoring weights
func DefaultWeights() Weights {
	return Weights{
		W1: 0.40,
		W2: 0.20,
		W3: 0.20,
		W4: 0.10,
		W5: 0.15,
		W6: 0.25,
	}
}

// Config holds the complete chainsage configuration
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Ingest  IngestConfig  `yaml:"ingest" mapstructure:"ingest"`
	Scoring Weights       `yaml:"scoring" mapstructure:"scoring"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
}

// DataConfig configures the document store
type DataConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // root of the on-disk document store
}

// HTTPConfig configures remote document fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// CacheConfig configures the fetch cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// IngestConfig configures batch ingestion
type IngestConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	RespectRobots     bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional decision-brief summarizer.
// Disabled by default; the brief never affects scoring.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: "data",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Chainsage/0.1 (+https://github.com/avolkov/chainsage)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".chainsage-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Ingest: IngestConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             5,
			RespectRobots:     true,
		},
		Scoring: DefaultWeights(),
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
