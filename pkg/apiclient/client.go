// Package apiclient is a typed HTTP client for the client tracker REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"client_tracker_backend/internal/models"
	"client_tracker_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:3001/api"

// APIError is returned when the API answers with a non-2xx status.
// Transport failures are returned unwrapped and are never an *APIError.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsAPIError reports whether err came from an API response rather than the transport.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Client talks to one API base URL such as http://localhost:3001/api.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// ListParams are the optional list query parameters; zero values are not sent.
type ListParams struct {
	Status string
	Search string
	Page   int
	Limit  int
}

func (p ListParams) query() string {
	v := url.Values{}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// CreateClientInput is the body of a create request.
type CreateClientInput struct {
	Name    string          `json:"name"`
	Contact string          `json:"contact"`
	Email   string          `json:"email,omitempty"`
	Address string          `json:"address,omitempty"`
	DueDate string          `json:"dueDate"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status,omitempty"`
}

// UpdateClientInput is the body of a partial update; nil fields are not sent.
type UpdateClientInput struct {
	Name    *string              `json:"name,omitempty"`
	Contact *string              `json:"contact,omitempty"`
	Email   *string              `json:"email,omitempty"`
	Address *string              `json:"address,omitempty"`
	DueDate *string              `json:"dueDate,omitempty"`
	Amount  *decimal.Decimal     `json:"amount,omitempty"`
	Status  *models.ClientStatus `json:"status,omitempty"`
}

// HealthCheck calls the root health endpoint, outside the API prefix.
func (c *Client) HealthCheck(ctx context.Context) (*models.HealthStatus, error) {
	var out models.HealthStatus
	root := strings.TrimSuffix(c.baseURL, "/api")
	if err := c.doURL(ctx, http.MethodGet, root+"/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDashboardStats fetches the per-status counts and sums.
func (c *Client) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/clients/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetClients fetches one page of clients.
func (c *Client) GetClients(ctx context.Context, params ListParams) (*models.ClientList, error) {
	var out models.ClientList
	if err := c.do(ctx, http.MethodGet, "/clients"+params.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetClient fetches a single client.
func (c *Client) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodGet, "/clients/"+utils.Int64ToStr(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateClient creates a client and returns the stored record.
func (c *Client) CreateClient(ctx context.Context, in CreateClientInput) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodPost, "/clients", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateClient applies a partial update and returns the stored record.
func (c *Client) UpdateClient(ctx context.Context, id int64, in UpdateClientInput) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodPut, "/clients/"+utils.Int64ToStr(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteClient deletes a client.
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/clients/"+utils.Int64ToStr(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	return c.doURL(ctx, method, c.baseURL+path, in, out)
}

func (c *Client) doURL(ctx context.Context, method, target string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads the error envelope. An unreadable body becomes
// "Network error"; an envelope without a message becomes "HTTP <code>".
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		apiErr.Message = "Network error"
		return apiErr
	}
	apiErr.Message = envelope.Error
	if apiErr.Message == "" {
		apiErr.Message = "HTTP " + strconv.Itoa(resp.StatusCode)
	}
	return apiErr
}
