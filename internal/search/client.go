package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/polarbear333/rag-llm-based-recommender/internal/product"
)

// Client talks to the external recommendation engine over its single
// GET /search endpoint. The engine's schema is not owned here; results are
// decoded defensively into product.Recommendation.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	log *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

type searchResponse struct {
	Results []product.Recommendation `json:"results"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) Search(ctx context.Context, query string) ([]product.Recommendation, error) {
	u := fmt.Sprintf("%s/search?query=%s", c.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The backend's detail string is logged for operators, never
		// surfaced to the caller.
		var eb errorBody
		if derr := json.NewDecoder(resp.Body).Decode(&eb); derr == nil && eb.Detail != "" {
			c.log.Warn("search engine error",
				zap.Int("status", resp.StatusCode),
				zap.String("detail", eb.Detail),
			)
		}
		return nil, fmt.Errorf("search: status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded.Results, nil
}
