package cli

import (
	"fmt"
	"log/slog"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/classifier"
	"github.com/vijay-prabhu/emotion-reflect/internal/config"
	"github.com/vijay-prabhu/emotion-reflect/internal/logging"
	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
)

// app holds the wiring shared by every command that runs analyses
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	analyzer *analyzer.Analyzer
	model    analyzer.Classifier // nil when the model is disabled
	stats    *stats.Aggregator
	closeLog func() error
}

type appOptions struct {
	quiet   bool // one-shot commands only log warnings unless debug is on
	noDelay bool
}

func newApp(opts appOptions) (*app, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logOpts := cfg.LoggingOptions()
	if opts.quiet && !logOpts.Debug {
		logOpts.Level = "WARNING"
	}
	logger, closeLog, err := logging.Setup(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	model, err := classifier.New(cfg.Model)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to create model classifier: %w", err)
	}

	r := analyzer.NewRand(cfg.Seed())
	delay := cfg.Delayer(r)
	if opts.noDelay {
		delay = analyzer.NoDelay{}
	}

	agg := stats.New()
	a := analyzer.New(cfg.AnalyzerConfig(), analyzer.Deps{
		Stats:      agg,
		Classifier: model,
		Rand:       r,
		Delay:      delay,
		Logger:     logger,
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		analyzer: a,
		model:    model,
		stats:    agg,
		closeLog: closeLog,
	}, nil
}

func (a *app) Close() {
	if err := a.closeLog(); err != nil {
		a.logger.Warn("failed to close log file", "error", err)
	}
}
