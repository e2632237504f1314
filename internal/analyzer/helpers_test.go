package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
)

// fixedRand always returns the same float and the identity permutation
type fixedRand struct {
	f float64
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// panicRand blows up when suggestions are sampled
type panicRand struct{ fixedRand }

func (panicRand) Perm(int) []int { panic("perm exploded") }

// fakeClassifier returns a canned prediction or error
type fakeClassifier struct {
	mu    sync.Mutex
	pred  Prediction
	err   error
	calls int
	texts []string
}

func (f *fakeClassifier) Classify(_ context.Context, text string) (Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.texts = append(f.texts, text)
	return f.pred, f.err
}

func newTestAnalyzer(r Rand, c Classifier) (*Analyzer, *stats.Aggregator) {
	agg := stats.New()
	a := New(DefaultConfig(), Deps{
		Stats:      agg,
		Classifier: c,
		Rand:       r,
		Clock:      func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	return a, agg
}
