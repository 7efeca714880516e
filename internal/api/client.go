// Package api is the single HTTP client for the tenant backend. It owns the
// base URL, the X-Tenant header (omitted for the public tenant) and the
// normalization of every failure into apierror.APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sripos/internal/apierror"
	"sripos/internal/config"
)

const tenantPublico = "public"

type Client struct {
	baseURL    string
	tenant     string
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	timeout := cfg.HTTPTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		tenant:     cfg.Tenant,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do runs one JSON round-trip. A nil body sends no payload; a nil out
// discards the response body after the status check.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal payload: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req)

	return c.send(req, out)
}

// upload sends one multipart request (bulk inventory import).
func (c *Client) upload(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("api: write field %s: %w", name, err)
		}
	}
	part, err := writer.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("api: create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("api: copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("api: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setHeaders(req)

	return c.send(req, out)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.tenant != "" && c.tenant != tenantPublico {
		req.Header.Set("X-Tenant", c.tenant)
	}
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierror.New("no se pudo contactar al servidor: " + err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.New("no se pudo leer la respuesta del servidor")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierror.FromResponse(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apierror.FromResponse(resp.StatusCode, raw)
	}
	return nil
}
