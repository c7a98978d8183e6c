// Package analyze produces the structured three-section answer from the
// retrieved news articles, and the generic-persona fallback answer when no
// articles were found.
package analyze

import (
	"context"
	"fmt"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/llm"
)

// analysisTemperature keeps the structured response close to the source
// material.
const analysisTemperature = 0.2

// AnalysisError reports a failed analysis call. The caller presents it to the
// user and aborts the turn; the generic fallback is not taken on this path.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("news analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Analyzer turns enriched news items plus the original question into the
// structured response text. It does not parse sections; that is the sections
// package's job.
type Analyzer struct {
	completer llm.Completer
}

// NewAnalyzer creates an Analyzer backed by the given completer.
func NewAnalyzer(completer llm.Completer) *Analyzer {
	return &Analyzer{completer: completer}
}

// Analyze sends a single structured-response request and returns the raw
// completion text.
func (a *Analyzer) Analyze(ctx context.Context, items []core.NewsItem, originalQuery string) (string, error) {
	prompt := buildAnalysisPrompt(items, originalQuery)

	text, err := a.completer.GenerateText(ctx, prompt, llm.Options{
		System:      analysisSystemPrompt,
		Temperature: analysisTemperature,
	})
	if err != nil {
		return "", &AnalysisError{Err: err}
	}
	return text, nil
}

// GenericAnswer issues the permissive no-news fallback completion directly
// against the original query. The response carries no section markers.
func (a *Analyzer) GenericAnswer(ctx context.Context, originalQuery string) (string, error) {
	text, err := a.completer.GenerateText(ctx, originalQuery, llm.Options{
		System: genericSystemPrompt,
	})
	if err != nil {
		return "", &AnalysisError{Err: err}
	}
	return text, nil
}
