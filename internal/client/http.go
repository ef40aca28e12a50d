package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alfredjeanlab/intake/internal/intake"
	"github.com/alfredjeanlab/intake/internal/model"
)

// HTTPClient implements IntakeClient using the intake HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) LogConsumption(ctx context.Context, events []*model.RawEvent) (*intake.LogConsumptionResponse, error) {
	var resp intake.LogConsumptionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/consumption", intake.LogConsumptionRequest{Events: events}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListConsumption(ctx context.Context, req *intake.QueryRequest) (*intake.ListConsumptionResponse, error) {
	var resp intake.ListConsumptionResponse
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/v1/consumption", req), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SummarizeIntake(ctx context.Context, req *intake.QueryRequest) (*intake.SummarizeIntakeResponse, error) {
	var resp intake.SummarizeIntakeResponse
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/v1/consumption/summary", req), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListTools(ctx context.Context) ([]intake.Tool, error) {
	var resp struct {
		Tools []intake.Tool `json:"tools"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/tools", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tools, nil
}

// CallTool posts args to the named tool and returns the raw result object.
func (c *HTTPClient) CallTool(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	var body any
	if len(args) > 0 {
		body = args
	}
	var resp json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/v1/tools/"+url.PathEscape(name), body, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// withQuery appends the non-empty query fields to path.
func withQuery(path string, req *intake.QueryRequest) string {
	if req == nil {
		return path
	}
	q := url.Values{}
	if req.UserID != "" {
		q.Set("user_id", req.UserID)
	}
	if req.From != "" {
		q.Set("from", req.From)
	}
	if req.To != "" {
		q.Set("to", req.To)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return path
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
