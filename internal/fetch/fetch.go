// Package fetch retrieves and cleans full article text from the known
// news-site layouts.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jungh5/shcard-ceo-bot/internal/logger"
)

// ContentUnavailable is the sentinel returned whenever an article body cannot
// be retrieved. Fetch failures never abort the surrounding search.
const ContentUnavailable = "기사 본문을 가져올 수 없습니다."

// DefaultUserAgent is the browser-like user agent sent with article requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

var (
	// whitespaceRegex collapses runs of whitespace into a single space.
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// disallowedRegex strips characters outside the allow-list. \p{L}\p{N}
	// rather than \w because RE2's \w is ASCII-only and would drop Hangul.
	disallowedRegex = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?"'-]`)
)

// siteSelectors maps a host suffix to the content selectors tried in order.
var siteSelectors = map[string][]string{
	"news.naver.com":    {"#articleBody", "#articleBodyContents", "#newsEndContents"},
	"ceoscoredaily.com": {".view_cont"},
}

// Fetcher performs article HTTP GETs and extracts the main body text.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithUserAgent overrides the request user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher creates a Fetcher with a 20s timeout and the default user agent.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: 20 * time.Second},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the cleaned article text for a URL, or ContentUnavailable on
// any failure: unknown host, transport error, bad status or no matching
// content node.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) string {
	text, err := f.fetch(ctx, rawURL)
	if err != nil {
		logger.Debug("article fetch failed", "url", rawURL, "reason", err.Error())
		return ContentUnavailable
	}
	return text
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	selectors, err := selectorsForURL(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse article HTML: %w", err)
	}

	for _, selector := range selectors {
		content := doc.Find(selector).First()
		if content.Length() == 0 {
			continue
		}
		content.Find("script, style, header, footer").Remove()
		if text := CleanText(content.Text()); text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("no content node matched")
}

// selectorsForURL dispatches on the URL host to one of the known layouts.
func selectorsForURL(rawURL string) ([]string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid article URL: %w", err)
	}
	host := parsed.Hostname()
	for suffix, selectors := range siteSelectors {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return selectors, nil
		}
	}
	return nil, fmt.Errorf("unrecognized article host %q", host)
}

// CleanText collapses whitespace runs to single spaces and strips characters
// outside the allow-list (letters, digits, whitespace, basic punctuation).
func CleanText(text string) string {
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = disallowedRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
