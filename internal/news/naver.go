package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jungh5/shcard-ceo-bot/internal/logger"
)

// naverDateLayout is the fixed pubDate format of the Naver news API.
const naverDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

const defaultNaverEndpoint = "https://openapi.naver.com/v1/search/news.json"

// NaverProvider implements Provider using the Naver Open API news search.
type NaverProvider struct {
	clientID     string
	clientSecret string
	endpoint     string
	client       *http.Client
}

// NaverOption configures a NaverProvider.
type NaverOption func(*NaverProvider)

// WithEndpoint overrides the API endpoint, mainly for tests.
func WithEndpoint(endpoint string) NaverOption {
	return func(p *NaverProvider) { p.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) NaverOption {
	return func(p *NaverProvider) { p.client = client }
}

// NewNaverProvider creates a new Naver news search provider.
func NewNaverProvider(clientID, clientSecret string, opts ...NaverOption) *NaverProvider {
	p := &NaverProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		endpoint:     defaultNaverEndpoint,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetName returns the name of this provider.
func (p *NaverProvider) GetName() string {
	return "Naver"
}

// Search performs a news search using the Naver Open API.
func (p *NaverProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	params := url.Values{}
	params.Set("query", query)
	if config.Display > 0 {
		params.Set("display", strconv.Itoa(config.Display))
	}
	sort := config.Sort
	if sort == "" {
		sort = "date"
	}
	params.Set("sort", sort)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Naver request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", p.clientID)
	req.Header.Set("X-Naver-Client-Secret", p.clientSecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Naver request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver request failed with status %d", resp.StatusCode)
	}

	var apiResponse struct {
		Items []struct {
			Title        string `json:"title"`
			OriginalLink string `json:"originallink"`
			Link         string `json:"link"`
			Description  string `json:"description"`
			PubDate      string `json:"pubDate"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Naver response: %w", err)
	}

	results := make([]Result, 0, len(apiResponse.Items))
	for _, item := range apiResponse.Items {
		publishedAt, err := time.Parse(naverDateLayout, item.PubDate)
		if err != nil {
			logger.Warn("skipping item with unparseable pubDate", "pub_date", item.PubDate)
			continue
		}
		results = append(results, Result{
			Title:        item.Title,
			OriginalLink: item.OriginalLink,
			Link:         item.Link,
			Description:  item.Description,
			PublishedAt:  publishedAt,
		})
	}

	logger.Debug("naver search completed", "query", query, "results_found", len(results))
	return results, nil
}
