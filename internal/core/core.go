package core

import (
	"time"

	"github.com/google/uuid"
)

// AnchorKeyword is the organizational identifier that every news search is
// pinned to. It always occupies position 0 of a KeywordSet.
const AnchorKeyword = "문동권"

// TitleKeywords is the set of domain terms a result title must contain to be
// considered relevant.
var TitleKeywords = []string{"신한카드", "문동권"}

// MinPublicationYear is the cutoff: articles published before this year are
// discarded regardless of title relevance.
const MinPublicationYear = 2023

// KeywordSet is an ordered list of search keywords with the anchor keyword at
// index 0. Use NewKeywordSet to build one; it never produces an empty set.
type KeywordSet []string

// NewKeywordSet builds a KeywordSet from raw keyword tokens. The anchor
// keyword is always placed at index 0; a token-supplied occurrence elsewhere
// in the list is kept as-is, not deduplicated.
func NewKeywordSet(tokens []string) KeywordSet {
	return append(KeywordSet{AnchorKeyword}, tokens...)
}

// Anchor returns the anchor keyword of the set.
func (k KeywordSet) Anchor() string {
	return AnchorKeyword
}

// Modifiers returns every keyword except the anchor, preserving order.
func (k KeywordSet) Modifiers() []string {
	var mods []string
	for _, kw := range k {
		if kw != AnchorKeyword {
			mods = append(mods, kw)
		}
	}
	return mods
}

// NewsItem represents one search-result article. FullContent is empty until
// the article text has been fetched.
type NewsItem struct {
	ID           string    `json:"id"`            // Unique identifier for the item
	Title        string    `json:"title"`         // Title with search-API markup stripped
	OriginalLink string    `json:"original_link"` // Publisher's own URL
	Link         string    `json:"link"`          // URL used for content fetching
	Description  string    `json:"description"`   // Search-API snippet
	PublishedAt  time.Time `json:"published_at"`  // Publication timestamp
	FullContent  string    `json:"full_content"`  // Cleaned article body, set by the fetcher
}

// NewNewsItem creates a NewsItem with a fresh ID.
func NewNewsItem(title, originalLink, link, description string, publishedAt time.Time) NewsItem {
	return NewsItem{
		ID:           uuid.NewString(),
		Title:        title,
		OriginalLink: originalLink,
		Link:         link,
		Description:  description,
		PublishedAt:  publishedAt,
	}
}

// TurnRecord is one completed question/answer exchange kept in session
// history.
type TurnRecord struct {
	Timestamp time.Time `json:"timestamp"` // When the turn completed
	Query     string    `json:"query"`     // The user's question
	Result    string    `json:"result"`    // The rendered answer text
}

// Session is the explicit per-session context passed to each turn handler.
// It replaces ambient framework state: every field a turn reads or writes
// lives here.
type Session struct {
	ID         string       `json:"id"`          // Unique session identifier
	StartedAt  time.Time    `json:"started_at"`  // Session creation time
	History    []TurnRecord `json:"history"`     // Completed turns, oldest first
	TTSEnabled bool         `json:"tts_enabled"` // Whether answers are narrated
	TTSSpeed   float64      `json:"tts_speed"`   // Narration speed multiplier
}

// NewSession creates an initialized Session with narration enabled.
func NewSession() *Session {
	return &Session{
		ID:         uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		TTSEnabled: true,
		TTSSpeed:   1.3,
	}
}

// Record appends a completed turn to the session history.
func (s *Session) Record(query, result string) {
	s.History = append(s.History, TurnRecord{
		Timestamp: time.Now().UTC(),
		Query:     query,
		Result:    result,
	})
}

// SurveyQuestion is one employee-submitted question read from an uploaded
// spreadsheet.
type SurveyQuestion struct {
	Row      int    `json:"row"`      // 1-based row number in the source file
	Employee string `json:"employee"` // Optional submitter column
	Text     string `json:"text"`     // The question text
}

// SurveyCategory is one bucket of the categorized survey summary.
type SurveyCategory struct {
	Name      string   `json:"name"`      // Category label chosen by the model
	Count     int      `json:"count"`     // Number of questions assigned
	Questions []string `json:"questions"` // Representative question texts
}
