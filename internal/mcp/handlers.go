package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/validation"
)

// defaultRecent is how many recent analyses detailed stats include
const defaultRecent = 10

func (s *Server) registerHandlers() {
	s.handlers["analyze_emotion"] = s.handleAnalyzeEmotion
	s.handlers["get_stats"] = s.handleGetStats
	s.handlers["list_emotions"] = s.handleListEmotions
}

type analyzeEmotionParams struct {
	Text               string `json:"text"`
	IncludeSuggestions *bool  `json:"include_suggestions"`
	UseRealModel       bool   `json:"use_real_model"`
}

func (s *Server) handleAnalyzeEmotion(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p analyzeEmotionParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	text, err := validation.Text(p.Text, s.opts.Rules)
	if err != nil {
		return nil, err
	}

	opts := analyzer.Options{IncludeSuggestions: true, UseRealModel: p.UseRealModel}
	if p.IncludeSuggestions != nil {
		opts.IncludeSuggestions = *p.IncludeSuggestions
	}

	result, err := s.analyzer.Analyze(ctx, text, opts)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return result, nil
}

type getStatsParams struct {
	Detailed bool `json:"detailed"`
	Recent   int  `json:"recent"`
}

func (s *Server) handleGetStats(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getStatsParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	if !p.Detailed {
		return s.stats.Snapshot(), nil
	}

	recent := p.Recent
	if recent <= 0 {
		recent = defaultRecent
	}
	return s.stats.Detailed(recent), nil
}

type listEmotionsResult struct {
	Emotions []string `json:"emotions"`
	Total    int      `json:"total"`
}

func (s *Server) handleListEmotions(ctx context.Context, params json.RawMessage) (interface{}, error) {
	emotions := s.analyzer.SupportedCategories()
	return listEmotionsResult{Emotions: emotions, Total: len(emotions)}, nil
}
