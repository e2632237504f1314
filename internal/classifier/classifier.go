// Package classifier provides the external model adapters used when an
// analysis asks for the real model.
package classifier

import (
	"fmt"
	"os"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/config"
)

// New builds the adapter selected by model.provider. It returns nil when the
// model is disabled.
func New(cfg config.ModelConfig) (analyzer.Classifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Provider {
	case "http":
		return NewClient(cfg.URL, os.Getenv("HF_API_TOKEN"), cfg.Timeout()), nil
	case "openai":
		o, err := NewOpenAI(os.Getenv("OPENAI_API_KEY"), cfg.OpenAI.Model, cfg.Timeout())
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
