package voyage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://api.voyageai.com/v1"
	DefaultModel   = "voyage-3"
	defaultTimeout = 30 * time.Second
)

var ErrMissingAPIKey = errors.New("voyage API key is required")

// APIError is a non-2xx answer from the embeddings API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("voyage API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("voyage API error (%d): %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying the call may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Client is the Voyage AI embedding API client.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	inputType  string
	httpClient *http.Client
}

// New creates a new Voyage AI client.
func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		inputType:  InputTypeDocument,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// WithModel sets a custom model (e.g., "voyage-3", "voyage-large-2").
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithBaseURL overrides the default Voyage API base URL.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// Embed generates embeddings for the given texts.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	bodyBytes, err := json.Marshal(EmbedRequest{
		Input:     texts,
		Model:     c.model,
		InputType: c.inputType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call Voyage API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.message()}
	}

	var embedResp EmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(embedResp.Data) != len(texts) {
		return nil, fmt.Errorf("voyage returned %d embeddings for %d texts", len(embedResp.Data), len(texts))
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range embedResp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			return nil, fmt.Errorf("voyage returned out-of-range index %d", data.Index)
		}
		embeddings[data.Index] = data.Embedding
	}

	return embeddings, nil
}
