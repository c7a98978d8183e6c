package news

import (
	"context"
	"sync"
)

// MockProvider implements Provider for testing purposes. Results can be
// scripted per query, and every received query is recorded in order.
type MockProvider struct {
	mu      sync.Mutex
	name    string
	results map[string][]Result
	errs    map[string]error
	queries []string
}

// NewMockProvider creates a new mock news provider with no scripted results.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name:    "Mock",
		results: make(map[string][]Result),
		errs:    make(map[string]error),
	}
}

// GetName returns the name of this provider.
func (m *MockProvider) GetName() string {
	return m.name
}

// Search returns the scripted results or error for the query, or an empty
// result set when nothing was scripted.
func (m *MockProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queries = append(m.queries, query)
	if err, ok := m.errs[query]; ok {
		return nil, err
	}
	results := m.results[query]
	if config.Display > 0 && len(results) > config.Display {
		results = results[:config.Display]
	}
	return results, nil
}

// SetResults scripts the results returned for an exact query string.
func (m *MockProvider) SetResults(query string, results []Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[query] = results
}

// SetError scripts an error returned for an exact query string.
func (m *MockProvider) SetError(query string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[query] = err
}

// Queries returns every query received so far, in order.
func (m *MockProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}
