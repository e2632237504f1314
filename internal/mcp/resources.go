package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	CategoriesURI = "emotion://categories"
	StatsURI      = "emotion://stats"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         CategoriesURI,
		Name:        "Emotion Categories",
		Description: "Every emotion label the classifier can return, one per line",
		MimeType:    "text/plain",
	},
	{
		URI:         StatsURI,
		Name:        "Analysis Statistics",
		Description: "Summary, distribution and the 10 most recent analyses",
		MimeType:    "application/json",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

func (s *Server) readResource(uri string) (resourceContent, error) {
	switch uri {
	case CategoriesURI:
		return resourceContent{
			URI:      uri,
			MimeType: "text/plain",
			Text:     strings.Join(s.analyzer.SupportedCategories(), "\n"),
		}, nil
	case StatsURI:
		data, err := json.MarshalIndent(s.stats.Detailed(defaultRecent), "", "  ")
		if err != nil {
			return resourceContent{}, fmt.Errorf("failed to encode stats: %w", err)
		}
		return resourceContent{URI: uri, MimeType: "application/json", Text: string(data)}, nil
	default:
		return resourceContent{}, fmt.Errorf("unknown resource: %s", uri)
	}
}
