package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/output"
)

var emotionsCmd = &cobra.Command{
	Use:   "emotions",
	Short: "List the supported emotion labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.OutputTo(cmd.OutOrStdout(), outputFmt, analyzer.CategoryNames())
	},
}

func init() {
	rootCmd.AddCommand(emotionsCmd)
}
