// Package stats keeps the running statistics of completed analyses.
package stats

import (
	"math"
	"sort"
	"sync"
)

// NoEmotion is reported as the most common emotion before any analysis
const NoEmotion = "None"

// Entry is one completed analysis in the history log
type Entry struct {
	Label      string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// Snapshot is a consistent read of the aggregate statistics
type Snapshot struct {
	TotalAnalyses     int     `json:"total_analyses"`
	MostCommonEmotion string  `json:"most_common_emotion"`
	AverageConfidence float64 `json:"average_confidence"`
	ProcessingTimeAvg float64 `json:"processing_time_avg"`
}

// LabelCount is how often a label has been recorded
type LabelCount struct {
	Label string `json:"emotion"`
	Count int    `json:"count"`
}

// Detailed extends a Snapshot with the label distribution and the most
// recent entries
type Detailed struct {
	Snapshot     Snapshot     `json:"summary"`
	Distribution []LabelCount `json:"distribution"`
	Recent       []Entry      `json:"recent"`
}

// Aggregator accumulates analysis outcomes for the lifetime of the process.
// One Aggregator is created at startup and shared by every request handler.
type Aggregator struct {
	mu        sync.RWMutex
	history   []Entry
	count     int
	totalTime float64 // seconds
}

// New creates an empty Aggregator
func New() *Aggregator {
	return &Aggregator{}
}

// Record appends an outcome and updates the counters atomically
func (a *Aggregator) Record(label string, confidence, elapsed float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history, Entry{Label: label, Confidence: confidence})
	a.count++
	a.totalTime += elapsed
}

// Snapshot computes the current statistics
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.snapshotLocked()
}

func (a *Aggregator) snapshotLocked() Snapshot {
	if len(a.history) == 0 {
		return Snapshot{MostCommonEmotion: NoEmotion}
	}

	var totalConfidence float64
	for _, e := range a.history {
		totalConfidence += e.Confidence
	}

	mostCommon := NoEmotion
	if dist := a.distributionLocked(); len(dist) > 0 {
		mostCommon = dist[0].Label
	}

	avgTime := 0.0
	if a.count > 0 {
		avgTime = a.totalTime / float64(a.count)
	}

	return Snapshot{
		TotalAnalyses:     a.count,
		MostCommonEmotion: mostCommon,
		AverageConfidence: round3(totalConfidence / float64(len(a.history))),
		ProcessingTimeAvg: round3(avgTime),
	}
}

// Distribution returns label counts, most frequent first. Labels with equal
// counts keep the order in which they were first recorded.
func (a *Aggregator) Distribution() []LabelCount {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.distributionLocked()
}

func (a *Aggregator) distributionLocked() []LabelCount {
	index := make(map[string]int)
	var counts []LabelCount
	for _, e := range a.history {
		i, ok := index[e.Label]
		if !ok {
			i = len(counts)
			index[e.Label] = i
			counts = append(counts, LabelCount{Label: e.Label})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Recent returns up to n of the latest entries, oldest first
func (a *Aggregator) Recent(n int) []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.recentLocked(n)
}

func (a *Aggregator) recentLocked(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	start := max(0, len(a.history)-n)
	out := make([]Entry, len(a.history)-start)
	copy(out, a.history[start:])
	return out
}

// Detailed returns the snapshot, distribution and last n entries from a
// single consistent view
func (a *Aggregator) Detailed(recent int) Detailed {
	a.mu.RLock()
	defer a.mu.RUnlock()

	dist := a.distributionLocked()
	if dist == nil {
		dist = []LabelCount{}
	}

	return Detailed{
		Snapshot:     a.snapshotLocked(),
		Distribution: dist,
		Recent:       a.recentLocked(recent),
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
