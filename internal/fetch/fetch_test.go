package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// rewriteTransport sends every request to the test server regardless of the
// requested host, so host-dispatch logic can be exercised against httptest.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("Failed to parse test server URL: %v", err)
	}
	return NewFetcher(WithHTTPClient(&http.Client{Transport: rewriteTransport{target: target}}))
}

func TestFetchNaverLayout(t *testing.T) {
	html := `<html><body>
		<div id="articleBody">
			<script>tracking();</script>
			<header>헤더</header>
			신한카드가  새로운   결제 서비스를 <b>출시</b>했다.
			<footer>푸터</footer>
		</div>
	</body></html>`
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(html))
	})

	text := fetcher.Fetch(context.Background(), "https://news.naver.com/main/read?oid=1")
	if strings.Contains(text, "tracking") || strings.Contains(text, "헤더") || strings.Contains(text, "푸터") {
		t.Errorf("Expected script/header/footer stripped, got %q", text)
	}
	if !strings.Contains(text, "신한카드가 새로운 결제 서비스를 출시했다.") {
		t.Errorf("Expected cleaned article text, got %q", text)
	}
}

func TestFetchNaverSelectorFallback(t *testing.T) {
	html := `<html><body><div id="newsEndContents">본문 내용입니다.</div></body></html>`
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(html))
	})

	text := fetcher.Fetch(context.Background(), "https://news.naver.com/read?oid=2")
	if text != "본문 내용입니다." {
		t.Errorf("Expected fallback selector content, got %q", text)
	}
}

func TestFetchCeoScoreDailyLayout(t *testing.T) {
	html := `<html><body><div class="view_cont">문동권 사장이 실적을 발표했다.</div></body></html>`
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(html))
	})

	text := fetcher.Fetch(context.Background(), "https://www.ceoscoredaily.com/page/view/123")
	if text != "문동권 사장이 실적을 발표했다." {
		t.Errorf("Expected view_cont content, got %q", text)
	}
}

func TestFetchUnknownHostReturnsSentinel(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>anything</body></html>"))
	})

	text := fetcher.Fetch(context.Background(), "https://unknown.example.com/article")
	if text != ContentUnavailable {
		t.Errorf("Expected sentinel for unknown host, got %q", text)
	}
}

func TestFetchBadStatusReturnsSentinel(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	text := fetcher.Fetch(context.Background(), "https://news.naver.com/read?oid=3")
	if text != ContentUnavailable {
		t.Errorf("Expected sentinel on server error, got %q", text)
	}
}

func TestFetchMissingContentNodeReturnsSentinel(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><div class='unrelated'>x</div></body></html>"))
	})

	text := fetcher.Fetch(context.Background(), "https://news.naver.com/read?oid=4")
	if text != ContentUnavailable {
		t.Errorf("Expected sentinel when no selector matches, got %q", text)
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<div id="articleBody">본문</div>`))
	})

	fetcher.Fetch(context.Background(), "https://news.naver.com/read?oid=5")
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Errorf("Expected browser-like user agent, got %q", gotUA)
	}
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "a\t\tb\n\nc", "a b c"},
		{"keeps allowed punctuation", `그는 "좋다"고 말했다!`, `그는 "좋다"고 말했다!`},
		{"strips disallowed symbols", "수익 30%↑ (전년비)", "수익 30 전년비"},
		{"keeps hangul and digits", "신한카드 2024년 실적", "신한카드 2024년 실적"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.input); got != tc.want {
				t.Errorf("CleanText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
