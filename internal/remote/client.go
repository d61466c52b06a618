// Package remote delegates parse and search operations to an external
// interpretation service, classifying failures so the orchestrator can fall
// back to the local pipeline.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/antojo/antojo/pkg/types"
)

// ErrServerError marks a 5xx response from the remote service.
var ErrServerError = errors.New("remote server error")

// ErrBadStatus marks a non-5xx, non-2xx response. It does not trip the
// breaker: the service answered, it just disliked the request.
var ErrBadStatus = errors.New("remote rejected request")

const defaultTimeout = 3 * time.Second

// Client calls the remote parse/search service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the service at baseURL. A zero timeout
// uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

type searchRequest struct {
	Query types.Query `json:"query"`
}

// Parse asks the remote service to interpret text.
func (c *Client) Parse(ctx context.Context, text string) (*types.ParseResult, error) {
	var out types.ParseResult
	if err := c.post(ctx, "/parse", parseRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search asks the remote service to evaluate a query.
func (c *Client) Search(ctx context.Context, q types.Query) (*types.SearchResponse, error) {
	var out types.SearchResponse
	if err := c.post(ctx, "/search", searchRequest{Query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// timeouts and network failures land here
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("call %s: status %d: %w", path, resp.StatusCode, ErrServerError)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: status %d: %w", path, resp.StatusCode, ErrBadStatus)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Trips reports whether an error from Parse or Search should mark the
// remote unavailable: timeouts, network failures and server errors do,
// request rejections do not.
func Trips(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrBadStatus)
}
