// Package mcp serves the analyzer to AI assistants over the Model Context
// Protocol (JSON-RPC 2.0 on stdio).
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
	"github.com/vijay-prabhu/emotion-reflect/internal/validation"
)

// ProtocolVersion is the MCP revision this server speaks
const ProtocolVersion = "2024-11-05"

// Analyzer is the part of the analyzer the tools call
type Analyzer interface {
	Analyze(ctx context.Context, text string, opts analyzer.Options) (*analyzer.Result, error)
	SupportedCategories() []string
}

// StatsSource provides summary and detailed statistics
type StatsSource interface {
	Snapshot() stats.Snapshot
	Detailed(recent int) stats.Detailed
}

// Options configures a Server
type Options struct {
	Version string
	Rules   validation.Rules
	Logger  *slog.Logger
}

// Server implements an MCP server over stdio
type Server struct {
	analyzer Analyzer
	stats    StatsSource
	opts     Options
	logger   *slog.Logger
	handlers map[string]ToolHandler
}

// ToolHandler is a function that handles a tool call
type ToolHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// JSON-RPC 2.0 types
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *rpcError   `json:"error,omitempty"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type initializeResult struct {
	ProtocolVersion string `json:"protocolVersion"`
	Capabilities    struct {
		Tools     struct{} `json:"tools"`
		Resources struct{} `json:"resources"`
	} `json:"capabilities"`
	ServerInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"serverInfo"`
}

type toolsListResult struct {
	Tools []Tool `json:"tools"`
}

type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type callToolResult struct {
	Content []contentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// New creates a new MCP server
func New(a Analyzer, st StatsSource, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Rules.MaxLength == 0 && opts.Rules.CrisisKeywords == nil {
		opts.Rules = validation.DefaultRules()
	}

	s := &Server{
		analyzer: a,
		stats:    st,
		opts:     opts,
		logger:   logger.With("component", "mcp"),
		handlers: make(map[string]ToolHandler),
	}
	s.registerHandlers()
	return s
}

// Start runs the MCP server on stdio
func (s *Server) Start(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC message per line from r and writes responses to w
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if response := s.handleMessage(ctx, line); response != nil {
				output, merr := json.Marshal(response)
				if merr != nil {
					s.logger.Error("failed to marshal response", "error", merr)
				} else if _, werr := fmt.Fprintln(w, string(output)); werr != nil {
					return fmt.Errorf("write error: %w", werr)
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg string) *jsonRPCResponse {
	var req jsonRPCRequest
	if err := json.Unmarshal([]byte(msg), &req); err != nil {
		return errorResponse(nil, codeParseError, "Parse error")
	}

	switch req.Method {
	case "initialize":
		return reply(req.ID, s.initializeResult())
	case "initialized", "notifications/initialized":
		return nil
	case "ping":
		return reply(req.ID, struct{}{})
	case "tools/list":
		return reply(req.ID, toolsListResult{Tools: ToolDefinitions})
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "resources/list":
		return reply(req.ID, resourcesListResult{Resources: ResourceDefinitions})
	case "resources/read":
		return s.handleResourcesRead(req)
	default:
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}
}

func reply(id interface{}, result interface{}) *jsonRPCResponse {
	return &jsonRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id interface{}, code int, msg string) *jsonRPCResponse {
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: msg},
	}
}

func (s *Server) initializeResult() initializeResult {
	var result initializeResult
	result.ProtocolVersion = ProtocolVersion
	result.ServerInfo.Name = "emotion-reflect"
	result.ServerInfo.Version = s.opts.Version
	return result
}

// handleToolsCall runs a tool. Tool failures are reported in the result
// with isError set, not as JSON-RPC errors.
func (s *Server) handleToolsCall(ctx context.Context, req jsonRPCRequest) *jsonRPCResponse {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}

	handler, ok := s.handlers[params.Name]
	if !ok {
		return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	result, err := handler(ctx, params.Arguments)
	if err != nil {
		s.logger.Warn("tool call failed", "tool", params.Name, "error", err)
		return reply(req.ID, textResult(err.Error(), true))
	}

	text, ok := result.(string)
	if !ok {
		data, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			return reply(req.ID, textResult(fmt.Sprintf("failed to encode result: %v", merr), true))
		}
		text = string(data)
	}
	return reply(req.ID, textResult(text, false))
}

func textResult(text string, isError bool) callToolResult {
	return callToolResult{
		Content: []contentItem{{Type: "text", Text: text}},
		IsError: isError,
	}
}

func (s *Server) handleResourcesRead(req jsonRPCRequest) *jsonRPCResponse {
	var params readResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}

	content, err := s.readResource(params.URI)
	if err != nil {
		return errorResponse(req.ID, codeInvalidParams, err.Error())
	}
	return reply(req.ID, readResourceResult{Contents: []resourceContent{content}})
}
