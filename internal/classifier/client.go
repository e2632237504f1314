package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
)

// Client is an HTTP client for a text-classification inference endpoint
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClassifyRequest is the request body for classification
type ClassifyRequest struct {
	Inputs string `json:"inputs"`
}

// HealthResponse is the response from health check
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
}

// errorResponse is what inference servers return on failure
type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a new classifier client. An empty token sends no
// Authorization header.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Health checks if the inference service is running
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("health check failed: %s", string(body))
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &health, nil
}

// IsRunning checks if the service is reachable
func (c *Client) IsRunning(ctx context.Context) bool {
	health, err := c.Health(ctx)
	return err == nil && health.Status == "ok"
}

// EnsureRunning checks if the service is running and returns a helpful error if not
func (c *Client) EnsureRunning(ctx context.Context) error {
	if c.IsRunning(ctx) {
		return nil
	}

	return fmt.Errorf(
		"model service not running at %s\n\n"+
			"Point model.url (or MODEL_URL) at a text-classification endpoint\n"+
			"that accepts {\"inputs\": \"...\"} and returns [{\"label\", \"score\"}]",
		c.baseURL,
	)
}

// Classify sends text to the model and returns the highest scoring label
func (c *Client) Classify(ctx context.Context, text string) (analyzer.Prediction, error) {
	body, err := json.Marshal(ClassifyRequest{Inputs: text})
	if err != nil {
		return analyzer.Prediction{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return analyzer.Prediction{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return analyzer.Prediction{}, fmt.Errorf("classification request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return analyzer.Prediction{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(respBody, &e) == nil && e.Error != "" {
			return analyzer.Prediction{}, fmt.Errorf("classification failed (status %d): %s", resp.StatusCode, e.Error)
		}
		return analyzer.Prediction{}, fmt.Errorf("classification failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	preds, err := decodePredictions(respBody)
	if err != nil {
		return analyzer.Prediction{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return top(preds)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// decodePredictions accepts both [{label, score}] and [[{label, score}]]
func decodePredictions(data []byte) ([]analyzer.Prediction, error) {
	var nested [][]analyzer.Prediction
	if err := json.Unmarshal(data, &nested); err == nil {
		var flat []analyzer.Prediction
		for _, inner := range nested {
			flat = append(flat, inner...)
		}
		return flat, nil
	}

	var flat []analyzer.Prediction
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

// top returns the prediction with the highest score; the first one wins ties
func top(preds []analyzer.Prediction) (analyzer.Prediction, error) {
	if len(preds) == 0 {
		return analyzer.Prediction{}, errors.New("model returned no predictions")
	}
	best := preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best, nil
}
