// Package analyzer implements the rule-based emotion classifier and the
// orchestration around it: keyword scoring, category selection, confidence,
// intensity, suggestions, delegation to an external model and recording
// every outcome in the shared statistics.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
)

// GenericModelSuggestion is the only suggestion attached to model results
const GenericModelSuggestion = "This is a real ML prediction. Suggestions are generic for now."

// Prediction is what an external model returns for a piece of text
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier is an external text classification model
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// StatsRecorder receives every completed analysis
type StatsRecorder interface {
	Record(label string, confidence, elapsed float64)
	Snapshot() stats.Snapshot
}

// Options controls a single analysis
type Options struct {
	IncludeSuggestions bool
	UseRealModel       bool
}

// DefaultOptions returns suggestions on, rule-based path
func DefaultOptions() Options {
	return Options{IncludeSuggestions: true}
}

// Result is the outcome of one analysis
type Result struct {
	Emotion           string    `json:"emotion"`
	Confidence        float64   `json:"confidence"`
	SecondaryEmotions []string  `json:"secondary_emotions"`
	Suggestions       []string  `json:"suggestions"`
	Intensity         Intensity `json:"emotion_intensity"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTime    float64   `json:"processing_time"` // seconds
	AnalysisID        string    `json:"analysis_id"`
}

// Config holds the tunable parts of the rule-based path
type Config struct {
	Lexicon        Lexicon
	Weights        TierWeights
	Confidence     ConfidenceParams
	Suggestions    map[Category][]string
	MaxSuggestions int
	MaxSecondary   int
}

// DefaultConfig returns the built-in tables and calibration
func DefaultConfig() Config {
	return Config{
		Lexicon:        DefaultLexicon(),
		Weights:        DefaultTierWeights(),
		Confidence:     DefaultConfidenceParams(),
		Suggestions:    DefaultSuggestions(),
		MaxSuggestions: DefaultMaxSuggestions,
		MaxSecondary:   2,
	}
}

// Deps are the collaborators of an Analyzer. Only Stats is required.
type Deps struct {
	Stats      StatsRecorder
	Classifier Classifier // nil disables the model path
	Rand       Rand       // nil uses a randomly seeded source
	Delay      Delayer    // nil means no simulated latency
	Logger     *slog.Logger
	Clock      func() time.Time
}

// Analyzer orchestrates one analysis call end to end. It is safe for
// concurrent use.
type Analyzer struct {
	scorer       *Scorer
	confidence   *ConfidenceEstimator
	suggestions  *SuggestionSelector
	maxSecondary int

	stats      StatsRecorder
	classifier Classifier
	delay      Delayer
	logger     *slog.Logger
	clock      func() time.Time
}

// New creates an Analyzer
func New(cfg Config, deps Deps) *Analyzer {
	r := deps.Rand
	if r == nil {
		r = NewRand(0)
	}
	delay := deps.Delay
	if delay == nil {
		delay = NoDelay{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Analyzer{
		scorer:       NewScorer(cfg.Lexicon, cfg.Weights),
		confidence:   NewConfidenceEstimator(cfg.Confidence, r),
		suggestions:  NewSuggestionSelector(cfg.Suggestions, cfg.MaxSuggestions, r),
		maxSecondary: cfg.MaxSecondary,
		stats:        deps.Stats,
		classifier:   deps.Classifier,
		delay:        delay,
		logger:       logger.With("component", "analyzer"),
		clock:        clock,
	}
}

// HasModel reports whether the model path is available
func (a *Analyzer) HasModel() bool {
	return a.classifier != nil
}

// Analyze classifies text. The text must already be validated (non-empty,
// trimmed, screened). On success the outcome is recorded in the statistics
// exactly once; failures are never recorded.
func (a *Analyzer) Analyze(ctx context.Context, text string, opts Options) (*Result, error) {
	start := time.Now()
	id := uuid.NewString()

	a.logger.Info("starting emotion analysis",
		"analysis_id", id,
		"text", preview(text, 100),
		"real_model", opts.UseRealModel,
	)

	var (
		result *Result
		err    error
	)
	if opts.UseRealModel {
		result, err = a.analyzeWithModel(ctx, text, opts)
	} else {
		result, err = a.analyzeWithRules(ctx, text, opts)
	}
	if err != nil {
		a.logger.Error("emotion analysis failed", "analysis_id", id, "error", err)
		return nil, err
	}

	result.AnalysisID = id
	result.Timestamp = a.clock()
	result.ProcessingTime = round3(time.Since(start).Seconds())

	a.stats.Record(result.Emotion, result.Confidence, result.ProcessingTime)

	a.logger.Info("emotion analysis completed",
		"analysis_id", id,
		"emotion", result.Emotion,
		"confidence", result.Confidence,
		"processing_time", result.ProcessingTime,
	)
	return result, nil
}

// analyzeWithModel delegates to the external classifier. There is no retry
// and no fallback to the rules.
func (a *Analyzer) analyzeWithModel(ctx context.Context, text string, opts Options) (*Result, error) {
	if a.classifier == nil {
		return nil, &InferenceError{Err: ErrNoClassifier}
	}

	pred, err := a.classifier.Classify(ctx, text)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	if pred.Label == "" {
		return nil, &InferenceError{Err: fmt.Errorf("model returned an empty label")}
	}
	if math.IsNaN(pred.Score) || pred.Score < 0 || pred.Score > 1 {
		return nil, &InferenceError{Err: fmt.Errorf("model returned score %v outside [0, 1]", pred.Score)}
	}

	suggestions := []string{}
	if opts.IncludeSuggestions {
		suggestions = []string{GenericModelSuggestion}
	}

	return &Result{
		Emotion:           pred.Label,
		Confidence:        round3(pred.Score),
		SecondaryEmotions: []string{},
		Suggestions:       suggestions,
		Intensity:         IntensityMedium,
	}, nil
}

// analyzeWithRules runs scoring, selection, confidence, intensity and
// suggestions in sequence
func (a *Analyzer) analyzeWithRules(ctx context.Context, text string, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	a.delay.Wait(ctx)

	normalized := Normalize(text)
	scores := a.scorer.Score(normalized)
	sel := Select(scores, a.maxSecondary)

	var confidence float64
	if sel.Primary == Neutral {
		confidence = a.confidence.Neutral()
	} else {
		confidence = a.confidence.Estimate(sel.MaxScore, utf8.RuneCountInString(text))
	}

	secondary := make([]string, len(sel.Secondary))
	for i, c := range sel.Secondary {
		secondary[i] = string(c)
	}

	return &Result{
		Emotion:           string(sel.Primary),
		Confidence:        round3(confidence),
		SecondaryEmotions: secondary,
		Suggestions:       a.suggestions.Select(sel.Primary, opts.IncludeSuggestions),
		Intensity:         ClassifyIntensity(normalized),
	}, nil
}

// Stats returns the current aggregate statistics
func (a *Analyzer) Stats() stats.Snapshot {
	return a.stats.Snapshot()
}

// SupportedCategories returns every category label in declaration order
func (a *Analyzer) SupportedCategories() []string {
	return CategoryNames()
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
