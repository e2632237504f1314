package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/output"
	"github.com/vijay-prabhu/emotion-reflect/internal/validation"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Classify the emotion in a text",
	Long: `Classify the dominant emotion in a short reflective text.

The text is read from the arguments, or from stdin when none are given.

Examples:
  emotion analyze "I am extremely happy and grateful today"
  echo "so tired of all this" | emotion analyze
  emotion analyze --no-suggestions -o json "I feel calm"
  emotion analyze --real-model "I can't stop worrying"`,
	RunE: runAnalyze,
}

var (
	analyzeNoSuggestions bool
	analyzeRealModel     bool
	analyzeNoDelay       bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeNoSuggestions, "no-suggestions", false, "Omit coping suggestions")
	analyzeCmd.Flags().BoolVar(&analyzeRealModel, "real-model", false, "Use the configured external model")
	analyzeCmd.Flags().BoolVar(&analyzeNoDelay, "no-delay", false, "Skip the simulated processing delay")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	raw := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = string(data)
	}

	a, err := newApp(appOptions{quiet: true, noDelay: analyzeNoDelay})
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := validation.Text(raw, a.cfg.ValidationRules())
	if err != nil {
		return err
	}

	result, err := a.analyzer.Analyze(cmd.Context(), text, analyzer.Options{
		IncludeSuggestions: !analyzeNoSuggestions,
		UseRealModel:       analyzeRealModel,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, result)
}
