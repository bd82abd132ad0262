package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

type Client struct {
	storeDomain string
	adminToken  string
	apiVersion  string
	baseURL     string // test override; empty in production
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Shopify Admin GraphQL client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	// Normalize store domain - remove https://, http://, and trailing slashes
	storeDomain := cfg.StoreURL
	storeDomain = strings.TrimPrefix(storeDomain, "https://")
	storeDomain = strings.TrimPrefix(storeDomain, "http://")
	storeDomain = strings.TrimSuffix(storeDomain, "/")

	return &Client{
		storeDomain: storeDomain,
		adminToken:  cfg.AdminToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string, cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	c := NewClient(cfg, logger)
	c.baseURL = baseURL
	return c
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Execute runs a GraphQL query/mutation. Transport failures come back as
// *errors.ErrProvider (route handlers map these to 5xx); a 200 response
// carrying a GraphQL errors array comes back as *errors.ErrGraphQL (mapped
// to 400 with the first message).
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.storeDomain, c.apiVersion)
	if c.baseURL != "" {
		url = fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL, c.apiVersion)
	}

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.adminToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ErrProvider{Provider: "shopify", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrProvider{Provider: "shopify", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.ErrProvider{Provider: "shopify", Status: resp.StatusCode, Body: string(body)}
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if len(graphQLResp.Errors) > 0 {
		messages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			messages[i] = gqlErr.Message
		}
		return nil, &errors.ErrGraphQL{Provider: "shopify", Messages: messages}
	}

	return &graphQLResp, nil
}

// ExtractIDFromGID parses the trailing numeric id out of a Shopify global id
// (e.g. "gid://shopify/InventoryItem/123456").
func ExtractIDFromGID(gid string) (int64, error) {
	parts := strings.Split(gid, "/")
	if len(parts) < 4 {
		return 0, fmt.Errorf("invalid GID format: %s", gid)
	}

	id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ID from GID: %w", err)
	}

	return id, nil
}
