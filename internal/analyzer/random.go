package analyzer

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the randomness the analyzer needs. Tests substitute a scripted
// or seeded implementation.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// Perm returns a random permutation of [0, n)
	Perm(n int) []int
}

// lockedRand makes a *rand.Rand safe to share between concurrent requests
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a goroutine-safe Rand. A zero seed picks a random one.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Perm(n int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Perm(n)
}

// uniform returns a value in [lo, hi)
func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Delayer simulates model latency on the rule-based path
type Delayer interface {
	// Wait blocks for the simulated latency or until ctx is done
	Wait(ctx context.Context)
}

// NoDelay skips the simulated latency
type NoDelay struct{}

// Wait returns immediately
func (NoDelay) Wait(context.Context) {}

// RandomDelay waits a uniformly random duration in [Min, Max)
type RandomDelay struct {
	Min  time.Duration
	Max  time.Duration
	Rand Rand
}

// Wait sleeps without holding the goroutine past cancellation
func (d RandomDelay) Wait(ctx context.Context) {
	if d.Max <= 0 {
		return
	}
	wait := d.Min
	if d.Max > d.Min && d.Rand != nil {
		wait = time.Duration(uniform(d.Rand, float64(d.Min), float64(d.Max)))
	}
	if wait <= 0 {
		return
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
