// Package news provides the news search provider abstraction and the
// progressive keyword search built on top of it.
package news

import (
	"context"
	"time"
)

// Provider defines the unified interface for news search providers.
type Provider interface {
	// Search performs a news search for a space-joined keyword query.
	Search(ctx context.Context, query string, config Config) ([]Result, error)

	// GetName returns the name of the search provider.
	GetName() string
}

// Config holds configuration for search requests.
type Config struct {
	Display int    // Maximum number of results to return
	Sort    string // Sort order ("date" for most recent first)
}

// Result represents one raw search result as returned by the provider.
// Title may still contain provider markup; it is stripped during filtering.
type Result struct {
	Title        string    `json:"title"`         // Result title, possibly with markup
	OriginalLink string    `json:"original_link"` // Publisher's own URL
	Link         string    `json:"link"`          // URL preferred for content fetching
	Description  string    `json:"description"`   // Snippet text
	PublishedAt  time.Time `json:"published_at"`  // Publication timestamp
}

// ProviderType represents the type of news search provider.
type ProviderType string

const (
	ProviderTypeNaver ProviderType = "naver"
	ProviderTypeMock  ProviderType = "mock"
)

// NewProvider creates a news provider of the specified type.
func NewProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeNaver:
		clientID, ok := config["client_id"]
		if !ok || clientID == "" {
			return nil, ErrMissingClientID
		}
		clientSecret, ok := config["client_secret"]
		if !ok || clientSecret == "" {
			return nil, ErrMissingClientSecret
		}
		return NewNaverProvider(clientID, clientSecret), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
