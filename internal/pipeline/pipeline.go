// Package pipeline orchestrates one question/answer turn: keyword
// extraction, progressive news search, analysis, section parsing and
// optional speech synthesis.
package pipeline

import (
	"context"
	"strings"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/logger"
	"github.com/jungh5/shcard-ceo-bot/internal/sections"
)

// KeywordExtractor derives the anchored keyword set from a question.
type KeywordExtractor interface {
	Extract(ctx context.Context, query string) (core.KeywordSet, error)
}

// NewsSearcher runs the progressive search. An empty result is the designed
// no-results condition, not an error.
type NewsSearcher interface {
	Search(ctx context.Context, keywords core.KeywordSet) []core.NewsItem
}

// Analyzer produces the structured answer, or the generic fallback answer
// when no news was found.
type Analyzer interface {
	Analyze(ctx context.Context, items []core.NewsItem, originalQuery string) (string, error)
	GenericAnswer(ctx context.Context, originalQuery string) (string, error)
}

// SpeechSynthesizer narrates the spoken-quote section.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// TurnResult is everything one completed turn produced.
type TurnResult struct {
	Query     string          // The original question
	Raw       string          // Raw model response (or fallback text)
	Sections  sections.Result // Parsed sections; all nil on the fallback path
	Items     []core.NewsItem // Articles the answer is grounded in
	Grounded  bool            // False when the generic fallback was used
	Audio     []byte          // Synthesized narration, nil when skipped
	AudioPath string          // Cached artifact location, when the synthesizer exposes one
	AudioErr  error           // Non-fatal synthesis failure, surfaced as a warning
}

// Pipeline wires the per-turn components together.
type Pipeline struct {
	extractor   KeywordExtractor
	searcher    NewsSearcher
	analyzer    Analyzer
	synthesizer SpeechSynthesizer
}

// New creates a Pipeline. The synthesizer may be nil to disable narration
// entirely.
func New(extractor KeywordExtractor, searcher NewsSearcher, analyzer Analyzer, synthesizer SpeechSynthesizer) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		searcher:    searcher,
		analyzer:    analyzer,
		synthesizer: synthesizer,
	}
}

// Run executes one turn against the session. On success the turn is recorded
// in the session history; on error the session is left untouched so the next
// turn starts clean.
func (p *Pipeline) Run(ctx context.Context, session *core.Session, query string) (*TurnResult, error) {
	keywords, err := p.extractor.Extract(ctx, query)
	if err != nil {
		return nil, err
	}

	items := p.searcher.Search(ctx, keywords)

	result := &TurnResult{Query: query, Items: items}
	if len(items) == 0 {
		// No relevant news: the generic persona answer, no section markers.
		text, err := p.analyzer.GenericAnswer(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Raw = text
	} else {
		text, err := p.analyzer.Analyze(ctx, items, query)
		if err != nil {
			return nil, err
		}
		result.Raw = text
		result.Grounded = true
		result.Sections = sections.Split(text)
	}

	p.narrate(ctx, session, result)

	session.Record(query, result.Render())
	return result, nil
}

// narrate synthesizes the spoken-quote section when narration applies.
// Synthesis failures are recorded on the result, never returned.
func (p *Pipeline) narrate(ctx context.Context, session *core.Session, result *TurnResult) {
	if p.synthesizer == nil || !session.TTSEnabled {
		return
	}
	spoken, ok := sections.SpokenText(result.Raw)
	if !ok || spoken == "" {
		return
	}

	audio, err := p.synthesizer.Synthesize(ctx, spoken)
	if err != nil {
		logger.Warn("narration skipped", "reason", err.Error())
		result.AudioErr = err
		return
	}
	result.Audio = audio
	if pather, ok := p.synthesizer.(interface{ CachePath(string) string }); ok {
		result.AudioPath = pather.CachePath(spoken)
	}
}

// Render produces the history-facing text of the turn: the parsed sections
// under their headings, or the raw fallback text.
func (r *TurnResult) Render() string {
	if !r.Grounded {
		return r.Raw
	}

	var b strings.Builder
	b.WriteString("### 분석 결과\n")
	if r.Sections.References != nil {
		b.WriteString("\n#### 참고 기사\n")
		b.WriteString(*r.Sections.References)
		b.WriteString("\n")
	}
	if r.Sections.Guide != nil {
		b.WriteString("\n#### 신입사원 가이드\n")
		b.WriteString(*r.Sections.Guide)
		b.WriteString("\n")
	}
	if r.Sections.Speech != nil {
		b.WriteString("\n#### 문동권 사장님 말씀\n")
		b.WriteString(*r.Sections.Speech)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
