package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/vijay-prabhu/emotion-reflect/internal/logging"
)

// DefaultPath is where the CLI looks for the config file
const DefaultPath = "~/.config/emotion/config.toml"

// Load reads and parses the configuration file, then applies environment
// overrides
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'emotion config init' to create): %w", expandedPath, err)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Parse TOML
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return finish(cfg)
}

// LoadOrDefault behaves like Load but falls back to defaults when the file
// does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return finish(Default())
}

func finish(cfg *Config) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env: %w", err)
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup("HOST"); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PORT: %w", err))
		} else {
			c.Server.Port = port
		}
	}
	if v, ok := lookup("DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DEBUG: %w", err))
		} else {
			c.Server.Debug = debug
		}
	}
	if v, ok := lookup("ENVIRONMENT"); ok && v != "" {
		c.Server.Environment = v
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		c.Server.AllowedOrigins = ParseOrigins(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = strings.ToUpper(v)
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v, ok := lookup("MODEL_URL"); ok && v != "" {
		c.Model.URL = v
	}

	return errors.Join(errs...)
}

// ParseOrigins accepts a JSON array or a comma-separated list
func ParseOrigins(v string) []string {
	var list []any
	if err := json.Unmarshal([]byte(v), &list); err == nil {
		origins := make([]string, 0, len(list))
		for _, item := range list {
			origins = append(origins, strings.TrimSpace(fmt.Sprint(item)))
		}
		return origins
	}

	var origins []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Logging.File, err = ExpandPath(c.Logging.File)
	return err
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Host == "" {
		errs = append(errs, errors.New("server.host is required"))
	}
	if port, err := safecast.Conv[uint16](c.Server.Port); err != nil || port == 0 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}

	// Analyzer validation
	if c.Analyzer.MaxSuggestions < 0 {
		errs = append(errs, errors.New("analyzer.max_suggestions must not be negative"))
	}
	if c.Analyzer.MaxSecondary < 0 {
		errs = append(errs, errors.New("analyzer.max_secondary must not be negative"))
	}
	if c.Analyzer.DelayMinMS < 0 || c.Analyzer.DelayMaxMS < c.Analyzer.DelayMinMS {
		errs = append(errs, fmt.Errorf("analyzer delay range [%d, %d] ms is invalid", c.Analyzer.DelayMinMS, c.Analyzer.DelayMaxMS))
	}
	if _, err := safecast.Conv[uint64](c.Analyzer.Seed); err != nil {
		errs = append(errs, fmt.Errorf("analyzer.seed must not be negative, got %d", c.Analyzer.Seed))
	}
	if err := c.Analyzer.Confidence.ConfidenceParams().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("analyzer.confidence: %w", err))
	}

	// Model validation
	validProviders := map[string]bool{"http": true, "openai": true}
	if !validProviders[c.Model.Provider] {
		errs = append(errs, fmt.Errorf("model.provider must be 'http' or 'openai', got '%s'", c.Model.Provider))
	}
	if c.Model.Enabled && c.Model.Provider == "http" && c.Model.URL == "" {
		errs = append(errs, errors.New("model.url is required for the http provider"))
	}
	if c.Model.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("model.timeout_seconds must be at least 1"))
	}

	// Validation rules
	if c.Validation.MaxLength < 1 {
		errs = append(errs, errors.New("validation.max_length must be at least 1"))
	}

	// Logging validation
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level must be one of DEBUG, INFO, WARNING, ERROR, CRITICAL: %w", err))
	}
	if f := c.Logging.Format; f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("logging.format must be 'text' or 'json', got '%s'", f))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Seed returns the analyzer seed; call after Validate
func (c *Config) Seed() uint64 {
	seed, err := safecast.Conv[uint64](c.Analyzer.Seed)
	if err != nil {
		return 0
	}
	return seed
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
