package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/output"
	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
	"github.com/vijay-prabhu/emotion-reflect/internal/validation"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Classify every line of a file",
	Long: `Classify each non-blank line of FILE as a separate text, then print
the per-line results followed by the aggregate statistics.

Use "-" to read from stdin.

Examples:
  emotion batch journal.txt
  emotion batch --concurrency 10 --no-delay journal.txt
  cat journal.txt | emotion batch -o json -`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchConcurrency   int
	batchNoSuggestions bool
	batchRealModel     bool
	batchNoDelay       bool
	batchRecent        int
)

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", analyzer.DefaultBatchConcurrency, "Number of texts analyzed in parallel")
	batchCmd.Flags().BoolVar(&batchNoSuggestions, "no-suggestions", false, "Omit coping suggestions")
	batchCmd.Flags().BoolVar(&batchRealModel, "real-model", false, "Use the configured external model")
	batchCmd.Flags().BoolVar(&batchNoDelay, "no-delay", false, "Skip the simulated processing delay")
	batchCmd.Flags().IntVar(&batchRecent, "recent", 10, "Number of recent analyses in the summary")
}

// batchReport is the JSON shape of a batch run
type batchReport struct {
	Items []analyzer.BatchItem `json:"items"`
	Stats stats.Detailed       `json:"stats"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	lines, err := readLines(cmd, args[0])
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("no texts found in %s", args[0])
	}

	a, err := newApp(appOptions{quiet: true, noDelay: batchNoDelay})
	if err != nil {
		return err
	}
	defer a.Close()

	items, valid, texts := screenLines(lines, a.cfg.ValidationRules())

	var progress analyzer.ProgressCallback
	if outputFmt != "json" && len(texts) > 0 {
		progress = NewTerminal(os.Stderr).Progress
	}

	results := a.analyzer.AnalyzeBatch(cmd.Context(), texts, analyzer.Options{
		IncludeSuggestions: !batchNoSuggestions,
		UseRealModel:       batchRealModel,
	}, batchConcurrency, progress)

	for i, r := range results {
		idx := valid[i]
		r.Index = idx
		r.Text = items[idx].Text
		items[idx] = r
	}

	out := cmd.OutOrStdout()
	detailed := a.stats.Detailed(batchRecent)
	if outputFmt == "json" {
		return output.JSONTo(out, batchReport{Items: items, Stats: detailed})
	}

	if err := output.TableTo(out, items); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return output.TableTo(out, detailed)
}

// readLines returns the non-blank lines of path, or of stdin for "-"
func readLines(cmd *cobra.Command, path string) ([]string, error) {
	var scanner *bufio.Scanner
	if path == "-" {
		scanner = bufio.NewScanner(cmd.InOrStdin())
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		scanner = bufio.NewScanner(f)
	}

	var lines []string
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// screenLines validates every line. Rejected lines become failed items;
// valid maps each accepted text back to its position in items.
func screenLines(lines []string, rules validation.Rules) (items []analyzer.BatchItem, valid []int, texts []string) {
	items = make([]analyzer.BatchItem, len(lines))
	for i, line := range lines {
		items[i] = analyzer.BatchItem{Index: i, Text: line}
		text, err := validation.Text(line, rules)
		if err != nil {
			items[i].Err = err
			items[i].Error = err.Error()
			continue
		}
		valid = append(valid, i)
		texts = append(texts, text)
	}
	return items, valid, texts
}
