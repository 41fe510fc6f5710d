// Package bitbucket is the HTTP client for the Bitbucket Data Center REST
// API. It attaches bearer-token authentication and maps error responses into
// APIError values. It performs no retries: a failed call is a failed call.
package bitbucket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/povarna/bitbucket-dc-mcp/internal/config"
	"github.com/rs/zerolog"
)

// APIError carries the status and message of a failed Bitbucket API call.
// It is surfaced to the tool caller verbatim, never reinterpreted.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bitbucket api error (%d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *zerolog.Logger
}

func NewClient(cfg config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.APIToken,
		httpc: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
			},
		},
		logger: logger,
	}
}

// RepoPath builds the REST API path prefix for a repository.
func RepoPath(projectKey, repositorySlug string) string {
	return fmt.Sprintf("/rest/api/latest/projects/%s/repos/%s", projectKey, repositorySlug)
}

// Get makes a GET request and decodes the JSON object response.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	var out map[string]any
	if err := c.request(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAny makes a GET request for endpoints that may return a top-level JSON
// array (the repository conditions endpoint does).
func (c *Client) GetAny(ctx context.Context, path string, params url.Values) (any, error) {
	var out any
	if err := c.request(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPaged makes a GET request with Bitbucket's start/limit pagination
// parameters added.
func (c *Client) GetPaged(ctx context.Context, path string, params url.Values, start, limit int) (map[string]any, error) {
	p := url.Values{}
	for k, vs := range params {
		p[k] = vs
	}
	p.Set("start", strconv.Itoa(start))
	p.Set("limit", strconv.Itoa(limit))
	return c.Get(ctx, path, p)
}

// GetRaw makes a GET request and returns the body as text, for file content
// and diff endpoints.
func (c *Client) GetRaw(ctx context.Context, path string, params url.Values) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(body), nil
}

// Post makes a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, params url.Values) (map[string]any, error) {
	var out map[string]any
	if err := c.request(ctx, http.MethodPost, path, params, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Put makes a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (map[string]any, error) {
	var out map[string]any
	if err := c.request(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) request(ctx context.Context, method, path string, params url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, params, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, params url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("method", method).Str("path", path).Msg("bitbucket request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bitbucket request failed: %w", err)
	}
	return resp, nil
}

// checkStatus turns non-2xx responses into APIError values, pulling the
// message out of Bitbucket's {"errors": [{"message": ...}]} body shape when
// present.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(resp.Body)
	message := errorMessage(data)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		message = "Authentication failed: check your Personal Access Token"
	case http.StatusForbidden:
		message = "Permission denied: " + message
	case http.StatusNotFound:
		message = "Not found: " + message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

func errorMessage(body []byte) string {
	var decoded struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil {
		if len(decoded.Errors) > 0 {
			messages := make([]string, 0, len(decoded.Errors))
			for _, e := range decoded.Errors {
				messages = append(messages, e.Message)
			}
			return strings.Join(messages, "; ")
		}
		if decoded.Message != "" {
			return decoded.Message
		}
	}
	text := string(body)
	if len(text) > 500 {
		text = text[:500]
	}
	return text
}
