// Package upstream is the HTTP client for the remote housing service. It
// attaches the current credential token to every entity call and keeps all
// transport concerns out of the rest of the console.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// TokenSource supplies the current credential token. An empty token means no
// live session; protected calls are refused locally instead of being sent.
type TokenSource interface {
	Token() string
}

// ErrNoCredential is returned when a protected call is attempted without a
// live session token.
var ErrNoCredential = fmt.Errorf("no credential token available")

// maxBody caps how much of a response the client will read.
const maxBody = 8 << 20

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
	}
}

// Login calls the authentication endpoint. It carries no token: the caller is
// establishing one. The raw body is returned for the normalizer to resolve.
func (c *Client) Login(ctx context.Context, username, password string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/auth/login", body, false)
}

// List fetches the raw list payload for a collection.
func (c *Client) List(ctx context.Context, collection string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/"+collection, nil, true)
}

func (c *Client) Create(ctx context.Context, collection string, payload []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/"+collection, payload, true)
}

func (c *Client) Update(ctx context.Context, collection string, id int64, payload []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/%d", collection, id), payload, true)
}

func (c *Client) Delete(ctx context.Context, collection string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%d", collection, id), nil, true)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, authed bool) ([]byte, error) {
	token := ""
	if authed {
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return nil, ErrNoCredential
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode >= 400 {
		return nil, parseError(respBody, resp.StatusCode)
	}
	return respBody, nil
}

// parseError lifts a service error body into a ProtocolError, trying the
// message fields the service is known to use.
func parseError(body []byte, statusCode int) error {
	doc := gjson.ParseBytes(body)
	message := ""
	for _, path := range []string{"message", "error", "error_description", "title"} {
		if value := doc.Get(path); value.Exists() && value.String() != "" {
			message = value.String()
			break
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &ProtocolError{StatusCode: statusCode, Message: message}
}
