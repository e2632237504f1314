package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/emotion-reflect/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This allows AI assistants like Claude Desktop to analyze texts and read the
running statistics.

Add to Claude Desktop config (~/Library/Application Support/Claude/claude_desktop_config.json):

{
  "mcpServers": {
    "emotion": {
      "command": "/path/to/emotion",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

var mcpNoDelay bool

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVar(&mcpNoDelay, "no-delay", false, "Skip the simulated processing delay")
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp(appOptions{noDelay: mcpNoDelay})
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	server := mcp.New(a.analyzer, a.stats, mcp.Options{
		Version: version,
		Rules:   a.cfg.ValidationRules(),
		Logger:  a.logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx)
}
