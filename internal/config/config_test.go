package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8000 {
		t.Errorf("expected Port=8000, got %d", cfg.Server.Port)
	}

	if cfg.Analyzer.MaxSuggestions != 4 {
		t.Errorf("expected MaxSuggestions=4, got %d", cfg.Analyzer.MaxSuggestions)
	}

	if cfg.Model.Provider != "http" {
		t.Errorf("expected Provider=http, got %s", cfg.Model.Provider)
	}

	if cfg.Validation.MaxLength != 1000 {
		t.Errorf("expected MaxLength=1000, got %d", cfg.Validation.MaxLength)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "port zero",
			modify: func(c *Config) {
				c.Server.Port = 0
			},
			wantErr: true,
		},
		{
			name: "port too large",
			modify: func(c *Config) {
				c.Server.Port = 70000
			},
			wantErr: true,
		},
		{
			name: "negative seed",
			modify: func(c *Config) {
				c.Analyzer.Seed = -1
			},
			wantErr: true,
		},
		{
			name: "inverted delay range",
			modify: func(c *Config) {
				c.Analyzer.DelayMinMS = 500
				c.Analyzer.DelayMaxMS = 100
			},
			wantErr: true,
		},
		{
			name: "confidence ceiling above one",
			modify: func(c *Config) {
				c.Analyzer.Confidence.Ceiling = 1.5
			},
			wantErr: true,
		},
		{
			name: "invalid model provider",
			modify: func(c *Config) {
				c.Model.Provider = "ollama"
			},
			wantErr: true,
		},
		{
			name: "enabled http model without url",
			modify: func(c *Config) {
				c.Model.Enabled = true
				c.Model.URL = ""
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Logging.Level = "LOUD"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
port = 9000
environment = "production"

[analyzer]
max_suggestions = 2
simulate_delay = false
seed = 42

[analyzer.confidence]
jitter = 0.0

[model]
enabled = true
provider = "openai"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 || cfg.Server.Environment != "production" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default Host to survive, got %q", cfg.Server.Host)
	}
	if cfg.Analyzer.MaxSuggestions != 2 || cfg.Analyzer.SimulateDelay {
		t.Errorf("analyzer = %+v", cfg.Analyzer)
	}
	if cfg.Analyzer.Confidence.Jitter != 0 || cfg.Analyzer.Confidence.Base != 0.4 {
		t.Errorf("confidence = %+v", cfg.Analyzer.Confidence)
	}
	if cfg.Seed() != 42 {
		t.Errorf("Seed() = %d, want 42", cfg.Seed())
	}
	if !cfg.Model.Enabled || cfg.Model.Provider != "openai" {
		t.Errorf("model = %+v", cfg.Model)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[server\nport = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(invalid, []byte("[server]\nport = 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PORT") })

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Port = %d, want 9100 from .env", cfg.Server.Port)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"HOST":            "127.0.0.1",
		"PORT":            "8123",
		"DEBUG":           "true",
		"ENVIRONMENT":     "staging",
		"ALLOWED_ORIGINS": "https://a.example, https://b.example",
		"LOG_LEVEL":       "warning",
		"LOG_FILE":        "/tmp/emotion.log",
		"MODEL_URL":       "http://model:9000",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8123 || !cfg.Server.Debug {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.Environment != "staging" {
		t.Errorf("Environment = %q", cfg.Server.Environment)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.Server.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
	if cfg.Logging.Level != "WARNING" || cfg.Logging.File != "/tmp/emotion.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Model.URL != "http://model:9000" {
		t.Errorf("Model.URL = %q", cfg.Model.URL)
	}
}

func TestApplyEnv_BadValues(t *testing.T) {
	env := map[string]string{"PORT": "eighty", "DEBUG": "maybe"}
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Port changed to %d on bad input", cfg.Server.Port)
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`["http://a", " http://b "]`, []string{"http://a", "http://b"}},
		{"http://a,http://b", []string{"http://a", "http://b"}},
		{" http://a , ,", []string{"http://a"}},
	}

	for _, tt := range tests {
		if got := ParseOrigins(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseOrigins(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := ExpandPath(tt.input)
		if err != nil {
			t.Errorf("ExpandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestAnalyzerConfig(t *testing.T) {
	cfg := Default()
	cfg.Analyzer.MaxSecondary = 1
	cfg.Analyzer.Confidence.Floor = 0.2

	ac := cfg.AnalyzerConfig()
	if ac.MaxSecondary != 1 || ac.MaxSuggestions != 4 {
		t.Errorf("limits = %d/%d", ac.MaxSecondary, ac.MaxSuggestions)
	}
	if ac.Confidence.Floor != 0.2 || ac.Confidence.Ceiling != 0.95 {
		t.Errorf("Confidence = %+v", ac.Confidence)
	}
	if len(ac.Lexicon) == 0 {
		t.Error("lexicon missing")
	}
}

func TestDelayer(t *testing.T) {
	cfg := Default()

	d, ok := cfg.Delayer(nil).(analyzer.RandomDelay)
	if !ok {
		t.Fatalf("Delayer() = %T, want RandomDelay", cfg.Delayer(nil))
	}
	if d.Min != 800*time.Millisecond || d.Max != 2500*time.Millisecond {
		t.Errorf("delay = [%v, %v]", d.Min, d.Max)
	}

	cfg.Analyzer.SimulateDelay = false
	if _, ok := cfg.Delayer(nil).(analyzer.NoDelay); !ok {
		t.Errorf("Delayer() = %T, want NoDelay", cfg.Delayer(nil))
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	expected := "0.0.0.0:8000"

	if got := cfg.Addr(); got != expected {
		t.Errorf("Addr() = %q, want %q", got, expected)
	}
}
