package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
)

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgGreen)
	labelColor  = color.New(color.FgCyan, color.Bold)
)

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *analyzer.Result:
		return resultDetail(w, v)
	case []analyzer.BatchItem:
		return batchTable(w, v)
	case stats.Snapshot:
		return statsTable(w, v)
	case stats.Detailed:
		return detailedStats(w, v)
	case []string:
		return listTable(w, "EMOTION", v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func resultDetail(w io.Writer, r *analyzer.Result) error {
	fmt.Fprintf(w, "Emotion:     %s\n", labelColor.Sprint(r.Emotion))
	fmt.Fprintf(w, "Confidence:  %.1f%%\n", r.Confidence*100)
	fmt.Fprintf(w, "Intensity:   %s\n", FormatIntensity(r.Intensity))

	if len(r.SecondaryEmotions) > 0 {
		fmt.Fprintf(w, "Also:        %s\n", strings.Join(r.SecondaryEmotions, ", "))
	}

	fmt.Fprintf(w, "Time:        %.3fs\n", r.ProcessingTime)
	fmt.Fprintf(w, "ID:          %s\n", r.AnalysisID)

	if len(r.Suggestions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Suggestions:")
		for _, s := range r.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}

	return nil
}

func batchTable(w io.Writer, items []analyzer.BatchItem) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No texts analyzed.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		if item.Err != nil || item.Result == nil {
			rows = append(rows, []string{
				strconv.Itoa(item.Index + 1),
				truncate(item.Text, 40),
				"error",
				"",
				"",
				truncate(item.Error, 40),
			})
			continue
		}
		r := item.Result
		rows = append(rows, []string{
			strconv.Itoa(item.Index + 1),
			truncate(item.Text, 40),
			r.Emotion,
			fmt.Sprintf("%.3f", r.Confidence),
			string(r.Intensity),
			strings.Join(r.SecondaryEmotions, ", "),
		})
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Text", "Emotion", "Confidence", "Intensity", "Secondary")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func statsTable(w io.Writer, s stats.Snapshot) error {
	fmt.Fprintln(w, "Emotion Analysis Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total analyses:         %d\n", s.TotalAnalyses)
	fmt.Fprintf(w, "Most common emotion:    %s\n", s.MostCommonEmotion)

	if s.TotalAnalyses > 0 {
		fmt.Fprintf(w, "Average confidence:     %.3f\n", s.AverageConfidence)
		fmt.Fprintf(w, "Avg processing time:    %.3fs\n", s.ProcessingTimeAvg)
	}

	return nil
}

func detailedStats(w io.Writer, d stats.Detailed) error {
	if err := statsTable(w, d.Snapshot); err != nil {
		return err
	}
	if len(d.Distribution) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	rows := make([][]string, 0, len(d.Distribution))
	for _, lc := range d.Distribution {
		share := float64(lc.Count) / float64(d.Snapshot.TotalAnalyses) * 100
		rows = append(rows, []string{lc.Label, strconv.Itoa(lc.Count), fmt.Sprintf("%.1f%%", share)})
	}

	table := tablewriter.NewWriter(w)
	table.Header("Emotion", "Count", "Share")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func listTable(w io.Writer, header string, values []string) error {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{v})
	}

	table := tablewriter.NewWriter(w)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// FormatIntensity colours an intensity level for terminal output
func FormatIntensity(i analyzer.Intensity) string {
	switch i {
	case analyzer.IntensityHigh:
		return highColor.Sprint(string(i))
	case analyzer.IntensityLow:
		return lowColor.Sprint(string(i))
	default:
		return mediumColor.Sprint(string(i))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
