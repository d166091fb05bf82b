package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/replan/internal/adjust"
	"github.com/claude/replan/internal/models"
	"github.com/claude/replan/internal/storage"
)

// HTTPClient implements PlanSource by calling the Replan REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// plans live on the remote server.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies PlanSource.
var _ PlanSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is sent on mutating requests.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path, userID string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if c.apiKey != "" && method != http.MethodGet {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	return data, nil
}

func (c *HTTPClient) GetPlan(ctx context.Context, planID uuid.UUID, userID string) (*models.Plan, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/v1/plans/"+planID.String(), userID, nil)
	if err != nil {
		return nil, err
	}
	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("httpclient: decode plan: %w", err)
	}
	return &plan, nil
}

func (c *HTTPClient) ListPlans(ctx context.Context, userID string) ([]storage.PlanSummary, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/v1/plans", userID, nil)
	if err != nil {
		return nil, err
	}
	var summaries []storage.PlanSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("httpclient: decode plan list: %w", err)
	}
	return summaries, nil
}

func (c *HTTPClient) AdjustPlan(ctx context.Context, planID uuid.UUID, userID, feedback string) (*adjust.Result, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/v1/plans/"+planID.String()+"/adjust", userID,
		map[string]string{"feedback": feedback})
	if err != nil {
		return nil, err
	}
	var result adjust.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("httpclient: decode adjust result: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) InterpretFeedback(ctx context.Context, feedback string) (models.ParsedFeedback, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/v1/feedback/interpret", "",
		map[string]string{"feedback": feedback})
	if err != nil {
		return models.ParsedFeedback{}, err
	}
	var fb models.ParsedFeedback
	if err := json.Unmarshal(data, &fb); err != nil {
		return models.ParsedFeedback{}, fmt.Errorf("httpclient: decode feedback: %w", err)
	}
	return fb, nil
}

func (c *HTTPClient) ValidatePlan(ctx context.Context, planID uuid.UUID, userID string) (models.ValidationResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/v1/plans/"+planID.String()+"/validate", userID, nil)
	if err != nil {
		return models.ValidationResult{}, err
	}
	var vr models.ValidationResult
	if err := json.Unmarshal(data, &vr); err != nil {
		return models.ValidationResult{}, fmt.Errorf("httpclient: decode validation: %w", err)
	}
	return vr, nil
}
