package news

import (
	"context"
	"regexp"
	"strings"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/logger"
)

// markupRegex strips search-API markup (e.g. <b> highlights) from titles.
var markupRegex = regexp.MustCompile(`<[^<]+?>`)

// ContentFetcher attaches full article text to surviving results. Fetch never
// fails; it returns a sentinel string when the body cannot be retrieved.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) string
}

// ProgressiveSearcher queries the news provider over shrinking keyword
// subsets, always anchored, until a non-empty filtered result set is found.
type ProgressiveSearcher struct {
	provider Provider
	fetcher  ContentFetcher
	display  int
}

// NewProgressiveSearcher creates a searcher with the given provider, content
// fetcher and per-query display limit.
func NewProgressiveSearcher(provider Provider, fetcher ContentFetcher, display int) *ProgressiveSearcher {
	if display <= 0 {
		display = 5
	}
	return &ProgressiveSearcher{provider: provider, fetcher: fetcher, display: display}
}

// Search runs the anchored search-space reduction over the keyword set.
//
// Combination sizes are evaluated in strictly decreasing order from the full
// modifier count down to 1, followed by a final anchor-only attempt; within
// a size, combinations follow the lexicographic order of the original
// modifier positions. The first
// combination whose filtered, enriched result list is non-empty wins and is
// returned immediately. A failing search call counts as an empty result for
// that combination only. When every combination is exhausted, the returned
// slice is empty: the caller treats that as "no relevant news found".
func (s *ProgressiveSearcher) Search(ctx context.Context, keywords core.KeywordSet) []core.NewsItem {
	anchor := keywords.Anchor()
	modifiers := keywords.Modifiers()

	for _, combo := range enumerateCombinations(modifiers) {
		query := strings.Join(append([]string{anchor}, combo...), " ")

		results, err := s.provider.Search(ctx, query, Config{Display: s.display, Sort: "date"})
		if err != nil {
			logger.Debug("search call failed, continuing", "query", query, "reason", err.Error())
			continue
		}

		items := s.filterAndEnrich(ctx, results)
		if len(items) > 0 {
			logger.Info("news search succeeded", "query", query, "items", len(items))
			return items
		}
	}

	logger.Info("news search exhausted with no results", "keywords", strings.Join(keywords, ", "))
	return nil
}

// filterAndEnrich keeps only relevant, recent results and attaches full
// article content to each survivor.
func (s *ProgressiveSearcher) filterAndEnrich(ctx context.Context, results []Result) []core.NewsItem {
	var items []core.NewsItem
	for _, result := range results {
		title := StripMarkup(result.Title)
		if !titleIsRelevant(title) {
			continue
		}
		if result.PublishedAt.Year() < core.MinPublicationYear {
			continue
		}

		item := core.NewNewsItem(title, result.OriginalLink, result.Link, result.Description, result.PublishedAt)
		item.FullContent = s.fetcher.Fetch(ctx, result.Link)
		items = append(items, item)
	}
	return items
}

// enumerateCombinations yields every keyword combination to try, largest
// size first, always ending with the empty combination: the anchor-only
// query is the last resort once every modifier combination has come up
// empty. An empty modifier list therefore yields exactly that one attempt.
func enumerateCombinations(modifiers []string) [][]string {
	var combos [][]string
	for size := len(modifiers); size >= 1; size-- {
		combos = append(combos, combinationsOfSize(modifiers, size)...)
	}
	return append(combos, nil)
}

// combinationsOfSize enumerates size-k combinations in lexicographic order
// over the original element positions.
func combinationsOfSize(elements []string, k int) [][]string {
	var combos [][]string

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for {
		combo := make([]string, k)
		for i, idx := range indices {
			combo[i] = elements[idx]
		}
		combos = append(combos, combo)

		// Advance to the next combination, rightmost index first.
		i := k - 1
		for i >= 0 && indices[i] == len(elements)-k+i {
			i--
		}
		if i < 0 {
			return combos
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}

// StripMarkup removes markup tags from a search-result title.
func StripMarkup(title string) string {
	return markupRegex.ReplaceAllString(title, "")
}

// titleIsRelevant reports whether a stripped title contains at least one of
// the required domain keywords.
func titleIsRelevant(title string) bool {
	for _, kw := range core.TitleKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
