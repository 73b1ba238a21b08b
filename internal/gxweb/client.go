package gxweb

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mveldsman/gxproxy/internal/logger"
)

// defaultUserAgent mimics the reference client's signature. GXWeb's access
// policy rejects requests whose header signature it does not recognise.
const defaultUserAgent = "PostmanRuntime/7.45.0"

// APIError is a non-2xx answer from GXWeb, carrying the upstream status
// and raw body for the error envelope.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gxweb returned status %d: %s", e.StatusCode, e.Body)
}

// Options configures the GXWeb client. InsecureSkipVerify and UserAgent
// are deliberate, documented operational settings: the upstream is reached
// over a self-signed link and is sensitive to the client signature. They
// are never silent defaults of the wider service.
type Options struct {
	BaseURL            string
	Timeout            time.Duration
	InsecureSkipVerify bool
	UserAgent          string
}

// Client handles all communication with the GXWeb API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	session   *Session
}

func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	transport := &http.Transport{}
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
	}
}

// SetHTTPClient allows overriding the HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client *http.Client) {
	c.http = client
}

// newRequest builds a request with the reference client's header signature
// and, once a session exists, the stored credential cookie.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Connection", "keep-alive")

	if c.session != nil {
		if cookie := c.session.CredentialHeader(); cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
	}
	return req, nil
}

// do executes the request and translates the outcome: transport failures
// are wrapped, non-2xx answers become an *APIError built from the current
// response only.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gxweb unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// readBody drains the response, reversing any Content-Encoding the backend
// applied. Setting Accept-Encoding by hand disables the transport's
// transparent gzip handling, so the decoding has to happen here before the
// body is forwarded or parsed.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode gzip response: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fr := flate.NewReader(resp.Body)
		defer fr.Close()
		reader = fr
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read gxweb response: %w", err)
	}
	return body, nil
}

// Get fetches a resource with the query's fields/filter serialized as the
// backend's JSON query parameters.
func (c *Client) Get(ctx context.Context, path string, q Query) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	params := req.URL.Query()
	fieldsJSON, err := json.Marshal(q.Fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fields: %w", err)
	}
	params.Set("fields", string(fieldsJSON))
	if q.Filter != nil {
		filterJSON, err := json.Marshal(q.Filter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal filter: %w", err)
		}
		params.Set("filter", string(filterJSON))
	}
	req.URL.RawQuery = params.Encode()

	logger.Log.Debug("gxweb GET", "path", path, "query", req.URL.RawQuery)
	return c.do(req)
}

// Post sends a JSON body to a resource.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Log.Debug("gxweb POST", "path", path)
	return c.do(req)
}

// postForResponse is Post without the error translation; the session login
// needs the raw response to reach the Set-Cookie header.
func (c *Client) postForResponse(ctx context.Context, path string, body any) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gxweb unreachable: %w", err)
	}
	return resp, nil
}
