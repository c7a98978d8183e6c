// Package keywords turns a free-text question into the keyword set used to
// drive the progressive news search.
package keywords

import (
	"context"
	"fmt"
	"strings"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/llm"
	"github.com/jungh5/shcard-ceo-bot/internal/logger"
)

const extractSystemPrompt = "입력된 질문에서 핵심 검색 키워드만 추출해주세요. 쉼표로 구분된 형태로 반환해주세요."

// ExtractionError reports a failed keyword extraction. The caller must not
// proceed to search when it receives one.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("keyword extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor asks the language model for comma-separated topic keywords and
// guarantees the anchor keyword is present at index 0.
type Extractor struct {
	completer llm.Completer
}

// NewExtractor creates an Extractor backed by the given completer.
func NewExtractor(completer llm.Completer) *Extractor {
	return &Extractor{completer: completer}
}

// Extract derives a KeywordSet from the user's question. A model-supplied
// anchor duplicate later in the list is intentionally left in place; the only
// guarantee is that the anchor appears, at index 0 when it was absent.
func (e *Extractor) Extract(ctx context.Context, query string) (core.KeywordSet, error) {
	raw, err := e.completer.GenerateText(ctx, query, llm.Options{
		System: extractSystemPrompt,
	})
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	var tokens []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	ks := core.NewKeywordSet(tokens)
	logger.Debug("extracted keywords", "query", query, "keywords", strings.Join(ks, ", "))
	return ks, nil
}
