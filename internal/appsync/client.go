package appsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

// Client talks to the storefront's AppSync GraphQL backend. Reads carry only
// the API key; mutations additionally carry the server-only admin secret.
// The secret is never present in anything a browser sent.
type Client struct {
	url         string
	apiKey      string
	adminSecret string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new AppSync client
func NewClient(cfg config.AppSyncConfig, logger *zap.Logger) *Client {
	return &Client{
		url:         cfg.URL,
		apiKey:      cfg.APIKey,
		adminSecret: cfg.AdminSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Configured reports whether the storefront backend is reachable at all.
// Routes that proxy to AppSync return 503 when it is not.
func (c *Client) Configured() bool {
	return c.url != "" && c.apiKey != ""
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// Query runs a read-only operation.
func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	return c.execute(ctx, query, variables, false)
}

// Mutate runs a mutation with the admin secret attached.
func (c *Client) Mutate(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	return c.execute(ctx, query, variables, true)
}

func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}, admin bool) (json.RawMessage, error) {
	reqBody := graphQLRequest{Query: query, Variables: variables}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	if admin {
		req.Header.Set("x-admin-secret", c.adminSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ErrProvider{Provider: "appsync", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrProvider{Provider: "appsync", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.ErrProvider{Provider: "appsync", Status: resp.StatusCode, Body: string(body)}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, len(gqlResp.Errors))
		for i, gqlErr := range gqlResp.Errors {
			messages[i] = gqlErr.Message
		}
		return nil, &errors.ErrGraphQL{Provider: "appsync", Messages: messages}
	}

	return gqlResp.Data, nil
}
