package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"lp-grapher/internal/lp"
)

// DefaultURL is where a locally started solverd listens.
const DefaultURL = "http://localhost:5000"

// Client talks to solverd over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Solve implements Service.
func (c *Client) Solve(ctx context.Context, prob *lp.Problem) (*lp.Solution, error) {
	body, err := c.post(ctx, "/api/solve-graphic", prob)
	if err != nil {
		return nil, err
	}
	var sol lp.Solution
	if err := json.Unmarshal(body, &sol); err != nil {
		return nil, fmt.Errorf("decode solution: %w", err)
	}
	return &sol, nil
}

// HealthCheck implements Service.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOffline, err)
	}
	defer resp.Body.Close()

	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil || status.Status != "online" {
		return ErrOffline
	}
	return nil
}

// ExportReport implements Service.
func (c *Client) ExportReport(ctx context.Context, prob *lp.Problem) ([]byte, string, error) {
	payload, err := json.Marshal(prob)
	if err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/export-report", bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("export report: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("export report: %s", upstreamError(data, resp.StatusCode))
	}

	filename := "report.csv"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			filename = name
		}
	}
	return data, filename, nil
}

// post sends a JSON body and returns the raw response body, turning
// non-200 responses into errors.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOffline, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solve: %s", upstreamError(data, resp.StatusCode))
	}
	return data, nil
}

// upstreamError extracts the service's {"error": ...} message, falling
// back to the HTTP status code.
func upstreamError(body []byte, code int) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return fmt.Sprintf("status %d", code)
}
