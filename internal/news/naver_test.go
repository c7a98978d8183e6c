package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNaverSearchParsesItems(t *testing.T) {
	var gotQuery, gotDisplay, gotSort, gotID, gotSecret string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotDisplay = r.URL.Query().Get("display")
		gotSort = r.URL.Query().Get("sort")
		gotID = r.Header.Get("X-Naver-Client-Id")
		gotSecret = r.Header.Get("X-Naver-Client-Secret")

		_, _ = w.Write([]byte(`{
			"items": [
				{
					"title": "<b>신한카드</b> 실적 발표",
					"originallink": "https://publisher.example/1",
					"link": "https://news.naver.com/a/1",
					"description": "요약",
					"pubDate": "Tue, 05 Mar 2024 09:30:00 +0900"
				},
				{
					"title": "broken date",
					"originallink": "",
					"link": "",
					"description": "",
					"pubDate": "not a date"
				}
			]
		}`))
	}))
	defer server.Close()

	provider := NewNaverProvider("my-id", "my-secret", WithEndpoint(server.URL))
	results, err := provider.Search(context.Background(), "문동권 실적", Config{Display: 5, Sort: "date"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotQuery != "문동권 실적" {
		t.Errorf("Expected query passed through, got %q", gotQuery)
	}
	if gotDisplay != "5" || gotSort != "date" {
		t.Errorf("Expected display=5 sort=date, got display=%s sort=%s", gotDisplay, gotSort)
	}
	if gotID != "my-id" || gotSecret != "my-secret" {
		t.Errorf("Expected credential headers, got id=%q secret=%q", gotID, gotSecret)
	}

	// The item with an unparseable pubDate is skipped.
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Title != "<b>신한카드</b> 실적 발표" {
		t.Errorf("Expected raw title with markup, got %q", results[0].Title)
	}
	if results[0].PublishedAt.Year() != 2024 {
		t.Errorf("Expected pubDate year 2024, got %d", results[0].PublishedAt.Year())
	}
}

func TestNaverSearchRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewNaverProvider("id", "secret", WithEndpoint(server.URL))
	_, err := provider.Search(context.Background(), "q", Config{})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited, got %v", err)
	}
}

func TestNaverSearchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewNaverProvider("id", "secret", WithEndpoint(server.URL))
	_, err := provider.Search(context.Background(), "q", Config{})
	if err == nil {
		t.Fatal("Expected error on unauthorized status")
	}
}

func TestNewProviderValidation(t *testing.T) {
	if _, err := NewProvider(ProviderTypeNaver, map[string]string{"client_id": "x"}); !errors.Is(err, ErrMissingClientSecret) {
		t.Errorf("Expected ErrMissingClientSecret, got %v", err)
	}
	if _, err := NewProvider(ProviderTypeNaver, map[string]string{"client_secret": "y"}); !errors.Is(err, ErrMissingClientID) {
		t.Errorf("Expected ErrMissingClientID, got %v", err)
	}
	if _, err := NewProvider("unknown", nil); !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("Expected ErrUnsupportedProvider, got %v", err)
	}
	provider, err := NewProvider(ProviderTypeMock, nil)
	if err != nil || provider.GetName() != "Mock" {
		t.Errorf("Expected mock provider, got %v (%v)", provider, err)
	}
}
