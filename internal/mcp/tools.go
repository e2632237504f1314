package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "analyze_emotion",
		Description: "Classify the dominant emotion in a short reflective text. Returns the emotion, confidence, intensity, secondary emotions and coping suggestions.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to analyze (1-1000 characters)",
				},
				"include_suggestions": map[string]interface{}{
					"type":        "boolean",
					"description": "Include coping suggestions (default: true)",
				},
				"use_real_model": map[string]interface{}{
					"type":        "boolean",
					"description": "Use the configured external model instead of the keyword classifier (default: false)",
				},
			},
			"required": []string{"text"},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get running statistics for analyses performed since the server started.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"detailed": map[string]interface{}{
					"type":        "boolean",
					"description": "Include the emotion distribution and recent analyses (default: false)",
				},
				"recent": map[string]interface{}{
					"type":        "integer",
					"description": "Number of recent analyses to include when detailed (default: 10)",
				},
			},
		},
	},
	{
		Name:        "list_emotions",
		Description: "List every emotion label the keyword classifier can return.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
