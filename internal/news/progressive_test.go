package news

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
)

// stubFetcher returns canned content for every URL.
type stubFetcher struct {
	content string
	urls    []string
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) string {
	s.urls = append(s.urls, url)
	return s.content
}

func relevantResult(title string) Result {
	return Result{
		Title:       title,
		Link:        "https://news.naver.com/a/1",
		PublishedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSearchTriesLargestCombinationFirst(t *testing.T) {
	provider := NewMockProvider()
	provider.SetResults("문동권 payments market-entry", []Result{relevantResult("신한카드 페이먼트 진출")})

	searcher := NewProgressiveSearcher(provider, &stubFetcher{content: "본문"}, 5)
	items := searcher.Search(context.Background(), core.NewKeywordSet([]string{"payments", "market-entry"}))

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	queries := provider.Queries()
	if len(queries) != 1 {
		t.Errorf("Expected short-circuit after the first query, got %v", queries)
	}
	if queries[0] != "문동권 payments market-entry" {
		t.Errorf("Expected full combination first, got %q", queries[0])
	}
}

func TestSearchProgressiveFallbackOrder(t *testing.T) {
	// Scenario: full set empty, both pairs empty... sizes must strictly
	// decrease and enumeration within a size must be lexicographic.
	provider := NewMockProvider()
	provider.SetResults("문동권", []Result{relevantResult("문동권 인터뷰")})

	searcher := NewProgressiveSearcher(provider, &stubFetcher{content: "본문"}, 5)
	items := searcher.Search(context.Background(), core.NewKeywordSet([]string{"payments", "market-entry"}))

	if len(items) != 1 {
		t.Fatalf("Expected fallback to anchor-only query to succeed, got %d items", len(items))
	}

	want := []string{
		"문동권 payments market-entry",
		"문동권 payments",
		"문동권 market-entry",
		"문동권",
	}
	got := provider.Queries()
	if len(got) != len(want) {
		t.Fatalf("Expected %d queries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Query %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSearchAnchorOnlyIssuesExactlyOneCall(t *testing.T) {
	provider := NewMockProvider()
	searcher := NewProgressiveSearcher(provider, &stubFetcher{}, 5)

	items := searcher.Search(context.Background(), core.NewKeywordSet(nil))
	if len(items) != 0 {
		t.Errorf("Expected no items, got %d", len(items))
	}
	if queries := provider.Queries(); len(queries) != 1 || queries[0] != core.AnchorKeyword {
		t.Errorf("Expected exactly one anchor-only query, got %v", queries)
	}
}

func TestSearchSwallowsPerCombinationErrors(t *testing.T) {
	provider := NewMockProvider()
	provider.SetError("문동권 payments market-entry", errors.New("429 too many requests"))
	provider.SetResults("문동권 payments", []Result{relevantResult("신한카드 페이먼트")})

	searcher := NewProgressiveSearcher(provider, &stubFetcher{content: "본문"}, 5)
	items := searcher.Search(context.Background(), core.NewKeywordSet([]string{"payments", "market-entry"}))

	if len(items) != 1 {
		t.Fatalf("Expected search to continue past the failing combination, got %d items", len(items))
	}
}

func TestSearchFiltersIrrelevantTitlesAndOldArticles(t *testing.T) {
	provider := NewMockProvider()
	provider.SetResults("문동권", []Result{
		{Title: "무관한 기사", Link: "https://x/1", PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "신한카드 2022년 회고", Link: "https://x/2", PublishedAt: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
	})

	searcher := NewProgressiveSearcher(provider, &stubFetcher{content: "본문"}, 5)
	items := searcher.Search(context.Background(), core.NewKeywordSet(nil))

	if len(items) != 0 {
		t.Errorf("Expected all results filtered out, got %d", len(items))
	}
}

func TestSearchEnrichesSurvivorsWithContent(t *testing.T) {
	provider := NewMockProvider()
	provider.SetResults("문동권", []Result{relevantResult("<b>신한카드</b> 발표")})

	fetcher := &stubFetcher{content: "기사 본문"}
	searcher := NewProgressiveSearcher(provider, fetcher, 5)
	items := searcher.Search(context.Background(), core.NewKeywordSet(nil))

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Title != "신한카드 발표" {
		t.Errorf("Expected markup stripped from title, got %q", items[0].Title)
	}
	if items[0].FullContent != "기사 본문" {
		t.Errorf("Expected full content attached, got %q", items[0].FullContent)
	}
	if len(fetcher.urls) != 1 || fetcher.urls[0] != "https://news.naver.com/a/1" {
		t.Errorf("Expected fetch of the result link, got %v", fetcher.urls)
	}
}

func TestEnumerateCombinationsThreeModifiers(t *testing.T) {
	combos := enumerateCombinations([]string{"a", "b", "c"})

	want := []string{"a b c", "a b", "a c", "b c", "a", "b", "c", ""}
	if len(combos) != len(want) {
		t.Fatalf("Expected %d combinations, got %d", len(want), len(combos))
	}
	for i, combo := range combos {
		if got := strings.Join(combo, " "); got != want[i] {
			t.Errorf("Combination %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestStripMarkup(t *testing.T) {
	if got := StripMarkup("<b>신한카드</b> &quot;발표&quot;"); got != "신한카드 &quot;발표&quot;" {
		t.Errorf("Expected tags stripped and entities untouched, got %q", got)
	}
}
