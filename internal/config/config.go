package config

import (
	"time"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/logging"
	"github.com/vijay-prabhu/emotion-reflect/internal/validation"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Analyzer   AnalyzerConfig   `toml:"analyzer"`
	Model      ModelConfig      `toml:"model"`
	Validation ValidationConfig `toml:"validation"`
	Logging    LoggingConfig    `toml:"logging"`
	MCP        MCPConfig        `toml:"mcp"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Host                string   `toml:"host"`
	Port                int      `toml:"port"`
	Environment         string   `toml:"environment"`
	Debug               bool     `toml:"debug"`
	AllowedOrigins      []string `toml:"allowed_origins"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"`
}

// ReadTimeout returns the request read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the response write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// AnalyzerConfig contains rule-based classifier settings
type AnalyzerConfig struct {
	MaxSuggestions int              `toml:"max_suggestions"`
	MaxSecondary   int              `toml:"max_secondary"`
	SimulateDelay  bool             `toml:"simulate_delay"`
	DelayMinMS     int              `toml:"delay_min_ms"`
	DelayMaxMS     int              `toml:"delay_max_ms"`
	Seed           int64            `toml:"seed"` // 0 picks a random seed
	Confidence     ConfidenceConfig `toml:"confidence"`
}

// ConfidenceConfig mirrors analyzer.ConfidenceParams
type ConfidenceConfig struct {
	Base         float64 `toml:"base"`
	ScoreWeight  float64 `toml:"score_weight"`
	LengthWeight float64 `toml:"length_weight"`
	LengthNorm   float64 `toml:"length_norm"`
	Jitter       float64 `toml:"jitter"`
	Floor        float64 `toml:"floor"`
	Ceiling      float64 `toml:"ceiling"`
	NeutralMin   float64 `toml:"neutral_min"`
	NeutralMax   float64 `toml:"neutral_max"`
}

// ModelConfig contains external model settings
type ModelConfig struct {
	Enabled        bool         `toml:"enabled"`
	Provider       string       `toml:"provider"`
	URL            string       `toml:"url"`
	TimeoutSeconds int          `toml:"timeout_seconds"`
	OpenAI         OpenAIConfig `toml:"openai"`
	// HTTP bearer token is read from HF_API_TOKEN environment variable
}

// Timeout returns the model request timeout as a duration
func (m ModelConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// OpenAIConfig contains OpenAI-specific settings
type OpenAIConfig struct {
	Model string `toml:"model"`
	// API key is read from OPENAI_API_KEY environment variable
}

// ValidationConfig contains input screening rules
type ValidationConfig struct {
	MaxLength      int      `toml:"max_length"`
	CrisisKeywords []string `toml:"crisis_keywords"`
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	conf := analyzer.DefaultConfidenceParams()

	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			Environment: "development",
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:3001",
				"http://127.0.0.1:3001",
			},
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
		Analyzer: AnalyzerConfig{
			MaxSuggestions: analyzer.DefaultMaxSuggestions,
			MaxSecondary:   2,
			SimulateDelay:  true,
			DelayMinMS:     800,
			DelayMaxMS:     2500,
			Confidence: ConfidenceConfig{
				Base:         conf.Base,
				ScoreWeight:  conf.ScoreWeight,
				LengthWeight: conf.LengthWeight,
				LengthNorm:   conf.LengthNorm,
				Jitter:       conf.Jitter,
				Floor:        conf.Floor,
				Ceiling:      conf.Ceiling,
				NeutralMin:   conf.NeutralMin,
				NeutralMax:   conf.NeutralMax,
			},
		},
		Model: ModelConfig{
			Enabled:        false,
			Provider:       "http",
			URL:            "http://localhost:8080",
			TimeoutSeconds: 30,
			OpenAI: OpenAIConfig{
				Model: "gpt-4o-mini",
			},
		},
		Validation: ValidationConfig{
			MaxLength:      validation.DefaultMaxLength,
			CrisisKeywords: validation.DefaultCrisisKeywords(),
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}

// ConfidenceParams converts the calibration section
func (c ConfidenceConfig) ConfidenceParams() analyzer.ConfidenceParams {
	return analyzer.ConfidenceParams{
		Base:         c.Base,
		ScoreWeight:  c.ScoreWeight,
		LengthWeight: c.LengthWeight,
		LengthNorm:   c.LengthNorm,
		Jitter:       c.Jitter,
		Floor:        c.Floor,
		Ceiling:      c.Ceiling,
		NeutralMin:   c.NeutralMin,
		NeutralMax:   c.NeutralMax,
	}
}

// AnalyzerConfig returns the analyzer tables and limits for this config
func (c *Config) AnalyzerConfig() analyzer.Config {
	cfg := analyzer.DefaultConfig()
	cfg.Confidence = c.Analyzer.Confidence.ConfidenceParams()
	cfg.MaxSuggestions = c.Analyzer.MaxSuggestions
	cfg.MaxSecondary = c.Analyzer.MaxSecondary
	return cfg
}

// Delayer returns the simulated latency for the rule-based path
func (c *Config) Delayer(r analyzer.Rand) analyzer.Delayer {
	if !c.Analyzer.SimulateDelay {
		return analyzer.NoDelay{}
	}
	return analyzer.RandomDelay{
		Min:  time.Duration(c.Analyzer.DelayMinMS) * time.Millisecond,
		Max:  time.Duration(c.Analyzer.DelayMaxMS) * time.Millisecond,
		Rand: r,
	}
}

// ValidationRules returns the input screening rules
func (c *Config) ValidationRules() validation.Rules {
	return validation.Rules{
		MaxLength:      c.Validation.MaxLength,
		CrisisKeywords: c.Validation.CrisisKeywords,
	}
}

// LoggingOptions returns the logger settings
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File:   c.Logging.File,
		Debug:  c.Server.Debug,
	}
}
