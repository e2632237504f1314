package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/emotion-reflect/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	configFile, err := config.ExpandPath(configPath)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(out, "Config file already exists at %s\n", configFile)
		fmt.Fprintln(out, "Use 'emotion config show' to view current configuration")
		return nil
	}

	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'emotion analyze \"I feel great today\"' to try the classifier")
	fmt.Fprintln(out, "  2. Run 'emotion serve' to start the HTTP API")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To delegate to an external model, set [model] enabled = true and either:")
	fmt.Fprintln(out, "  provider = \"http\"    (token read from HF_API_TOKEN)")
	fmt.Fprintln(out, "  provider = \"openai\"  (key read from OPENAI_API_KEY)")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path, err := config.ExpandPath(configPath)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "No config file found. Run 'emotion config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Fprintf(out, "# Config file: %s\n\n", path)
	fmt.Fprintln(out, string(data))
	return nil
}

const defaultConfig = `# Emotion Reflect Configuration
# Environment variables (HOST, PORT, DEBUG, ENVIRONMENT, ALLOWED_ORIGINS,
# LOG_LEVEL, LOG_FILE, MODEL_URL) and a .env file override these values.

[server]
host = "0.0.0.0"
port = 8000
environment = "development"
debug = false
allowed_origins = [
    "http://localhost:3000",
    "http://127.0.0.1:3000",
    "http://localhost:3001",
    "http://127.0.0.1:3001"
]
read_timeout_seconds = 15
write_timeout_seconds = 30

[analyzer]
max_suggestions = 4
max_secondary = 2
simulate_delay = true   # Pause 0.8-2.5s on the keyword path
delay_min_ms = 800
delay_max_ms = 2500
seed = 0                # 0 picks a random seed

[analyzer.confidence]
base = 0.4
score_weight = 0.15
length_weight = 0.1
length_norm = 100.0
jitter = 0.05
floor = 0.3
ceiling = 0.95
neutral_min = 0.3
neutral_max = 0.5

[model]
enabled = false
provider = "http"       # http or openai
url = "http://localhost:8080"
timeout_seconds = 30
# HTTP bearer token read from HF_API_TOKEN env var

[model.openai]
model = "gpt-4o-mini"
# API key read from OPENAI_API_KEY env var

[validation]
max_length = 1000
crisis_keywords = ["suicide", "kill myself", "end it all", "hurt myself"]

[logging]
level = "INFO"          # DEBUG, INFO, WARNING, ERROR, CRITICAL
format = "text"         # text or json
file = ""               # Also write logs here unless debug is on

[mcp]
enabled = true
transport = "stdio"
`
