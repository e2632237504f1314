package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/emotion-reflect/internal/config"
	"github.com/vijay-prabhu/emotion-reflect/internal/output"
	"github.com/vijay-prabhu/emotion-reflect/internal/server"
	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics of a running API server",
	Long: `Fetch the running statistics from an emotion API server.

Statistics live in the server process, so this queries the server started
with 'emotion serve'.

Examples:
  emotion stats
  emotion stats --server http://10.0.0.5:8000
  emotion stats -o json`,
	RunE: runStats,
}

var statsServer string

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsServer, "server", "", "API base URL (default: http://localhost:<server.port>)")
}

func runStats(cmd *cobra.Command, args []string) error {
	base := statsServer
	if base == "" {
		cfg, err := config.LoadOrDefault(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		base = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	snap, err := fetchStats(ctx, http.DefaultClient, base)
	if err != nil {
		return err
	}
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, snap)
}

func fetchStats(ctx context.Context, client *http.Client, base string) (stats.Snapshot, error) {
	var snap stats.Snapshot

	url := strings.TrimRight(base, "/") + server.APIPrefix + "/stats"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return snap, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return snap, fmt.Errorf("failed to reach server at %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr server.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return snap, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return snap, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return snap, fmt.Errorf("failed to decode stats: %w", err)
	}
	return snap, nil
}
