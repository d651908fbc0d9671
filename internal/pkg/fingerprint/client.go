package fingerprint

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// AuthMode selects how requests to the personnel API are authorized.
type AuthMode string

const (
	AuthBasic AuthMode = "basic"
	AuthJWT   AuthMode = "jwt"
)

// Transaction is one attendance punch reported by the fingerprint terminal.
type Transaction struct {
	DeviceUserID string    `json:"emp_code"`
	Timestamp    time.Time `json:"punch_time"`
	LogKey       string    `json:"id"`
}

// TestResult is the outcome of a one-shot connectivity probe.
type TestResult struct {
	OK      bool   `json:"ok"`
	Status  int    `json:"status"`
	Preview string `json:"preview"`
}

// Client talks to the on-premises personnel API that fronts the
// biometric terminal (employees, departments, attendance transactions).
type Client struct {
	baseURL  string
	authMode AuthMode
	username string
	password string
	jwtToken string
	http     *http.Client
}

func NewClient(baseURL string, authMode AuthMode, username, password, jwtToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		authMode: authMode,
		username: username,
		password: password,
		jwtToken: jwtToken,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) authorize(req *http.Request) {
	switch c.authMode {
	case AuthBasic:
		if c.username != "" && c.password != "" {
			basic := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
			req.Header.Set("Authorization", "Basic "+basic)
		}
	case AuthJWT:
		if c.jwtToken != "" {
			req.Header.Set("Authorization", "JWT "+c.jwtToken)
		}
	}
}

// Get fetches a relative path from the personnel API and returns the raw JSON body.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid personnel API base URL: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid personnel API path: %w", err)
	}
	target := base.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("personnel API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read personnel API response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("personnel API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) Employees(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "employees/")
}

func (c *Client) Departments(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "departments/")
}

func (c *Client) Areas(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "areas/")
}

func (c *Client) Positions(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "positions/")
}

// Transactions fetches attendance punches recorded after since.
func (c *Client) Transactions(ctx context.Context, since time.Time) ([]Transaction, error) {
	path := "transactions/"
	if !since.IsZero() {
		path = fmt.Sprintf("transactions/?start_time=%s", url.QueryEscape(since.UTC().Format(time.RFC3339)))
	}
	body, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	// The API wraps collections in a "data" envelope on some firmware
	// versions and returns a bare array on others.
	var envelope struct {
		Data []Transaction `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var transactions []Transaction
	if err := json.Unmarshal(body, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return transactions, nil
}

// TestConnection probes an arbitrary endpoint with one-shot credentials.
// Nothing from the request is retained.
func TestConnection(ctx context.Context, target string, mode AuthMode, username, password, jwtToken string) TestResult {
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return TestResult{OK: false, Preview: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	probe := &Client{authMode: mode, username: username, password: password, jwtToken: jwtToken}
	probe.authorize(req)

	resp, err := client.Do(req)
	if err != nil {
		return TestResult{OK: false, Preview: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	return TestResult{
		OK:      resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:  resp.StatusCode,
		Preview: string(body),
	}
}
