package analyzer

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency is the number of analyses run in parallel by
// AnalyzeBatch when no limit is given
const DefaultBatchConcurrency = 5

// ProgressCallback is called with progress updates during batch analysis
type ProgressCallback func(current, total int)

// BatchItem holds the outcome for a single text in a batch
type BatchItem struct {
	Index  int     `json:"index"`
	Text   string  `json:"text"`
	Result *Result `json:"result,omitempty"`
	Err    error   `json:"-"`
	Error  string  `json:"error,omitempty"`
}

// AnalyzeBatch analyzes texts in parallel. A failed item does not stop the
// others; results keep the input order. Only a cancelled context ends the
// batch early, in which case the remaining items carry ctx.Err().
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string, opts Options, limit int, progress ProgressCallback) []BatchItem {
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	items := make([]BatchItem, len(texts))
	total := len(texts)
	var done int64

	if progress != nil {
		progress(0, total)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, text := range texts {
		items[i] = BatchItem{Index: i, Text: text}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i].Err = err
				items[i].Error = err.Error()
				return nil
			}

			result, err := a.Analyze(gctx, text, opts)
			items[i].Result = result
			if err != nil {
				items[i].Err = err
				items[i].Error = err.Error()
			}

			if progress != nil {
				progress(int(atomic.AddInt64(&done, 1)), total)
			}
			return nil
		})
	}

	_ = g.Wait()
	return items
}
