// Package platform is the typed HTTP client for the execution platform
// backend. The backend owns persistence, call placement, telemetry and file
// parsing; everything the console knows about an aggregate it learned from a
// response on this client.
//
// Error contract:
//   - 404 wraps ErrNotFound so callers can present "not found" distinctly.
//   - Any other non-2xx becomes *APIError carrying the backend status and
//     message. Nothing is retried here; retry policy applies to call
//     execution, not to console CRUD.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"voiceops-console/internal/config"
)

var ErrNotFound = errors.New("platform: not found")

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform: backend returned %d: %s", e.Status, e.Message)
}

const basePath = "/api"

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func New(cfg config.PlatformConfig) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("platform: base url must be absolute, got %q", cfg.BaseURL)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// PageQuery is caller-supplied offset pagination.
type PageQuery struct {
	Skip  int
	Limit int
}

func (p PageQuery) apply(q url.Values) {
	if p.Skip > 0 {
		q.Set("skip", fmt.Sprintf("%d", p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", p.Limit))
	}
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("platform: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("platform: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, path); err != nil {
		return err
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("platform: decode %s %s: %w", method, path, err)
	}
	return nil
}

// upload sends one file as multipart form data plus optional extra fields.
func (c *Client) upload(ctx context.Context, path, field, filename string, file io.Reader, extra map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("platform: read upload: %w", err)
	}
	for k, v := range extra {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("platform: upload %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, path); err != nil {
		return err
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// download streams a blob response. The caller owns the returned body.
func (c *Client) download(ctx context.Context, path string, query url.Values) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return nil, "", err
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("platform: download %s: %w", path, err)
	}
	if err := checkStatus(resp, path); err != nil {
		resp.Body.Close()
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// downloadPost is download for endpoints that take a JSON body.
func (c *Client) downloadPost(ctx context.Context, path string, in any) (io.ReadCloser, string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("platform: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), bytes.NewReader(raw))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("platform: %s: %w", path, err)
	}
	if err := checkStatus(resp, path); err != nil {
		resp.Body.Close()
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	msg := resp.Status
	var parsed struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &parsed) == nil {
		if parsed.Error != "" {
			msg = parsed.Error
		} else if parsed.Detail != "" {
			msg = parsed.Detail
		}
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
