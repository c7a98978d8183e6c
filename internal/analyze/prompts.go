package analyze

import (
	"fmt"
	"strings"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/sections"
)

// analysisSystemPrompt establishes the persona and behavioral rules: quote
// the CEO's actual remarks when the articles contain them, otherwise speak in
// first person consistent with the retrieved content.
const analysisSystemPrompt = "신한카드 문동권 사장님의 발언과 관련 기사를 분석하여, 발언이 있으면 직접 인용하고 없으면 기사 내용을 바탕으로 관련 맥락을 파악하여 답변을 구성하는 assistant입니다."

// genericSystemPrompt is the more permissive persona used when no relevant
// news was found: answer from general knowledge of the company's publicly
// stated direction, without article grounding.
const genericSystemPrompt = "당신은 신한카드 문동권 사장님의 페르소나로 신입사원의 질문에 답하는 assistant입니다. 관련 기사가 없으므로 신한카드의 공개된 경영 방향성과 일반적인 맥락을 바탕으로, 자연스러운 1인칭 어투로 간결하게 답변해주세요."

// combineNewsTexts assembles the per-article context blocks.
func combineNewsTexts(items []core.NewsItem) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, fmt.Sprintf(
			"제목: %s\n날짜: %s\n전체 내용: %s\n출처: %s",
			item.Title,
			item.PublishedAt.Format("2006-01-02 15:04"),
			item.FullContent,
			item.Link,
		))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// buildAnalysisPrompt creates the structured-response prompt: article context
// followed by the three-section template, with the section markers verbatim.
func buildAnalysisPrompt(items []core.NewsItem, originalQuery string) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("다음은 '%s'에 관한 신한카드 관련 뉴스 기사들입니다:\n\n", originalQuery))
	prompt.WriteString(combineNewsTexts(items))
	prompt.WriteString("\n\n")

	prompt.WriteString(sections.MarkerSpeech + "\n")
	prompt.WriteString("(기사 내용을 바탕으로 30초 분량의 직접 발화 답변 작성\n")
	prompt.WriteString("- 실제 발언이 있다면 그대로 인용\n")
	prompt.WriteString("- 실제 발언이 없다면 기사 내용을 바탕으로 1인칭 시점에서 직접 설명\n")
	prompt.WriteString("- 신한카드의 주요 정책이나 방향성이 드러나도록 구성\n\n")

	prompt.WriteString(sections.MarkerReferences + "\n")
	prompt.WriteString("- 제목: (기사 제목)\n")
	prompt.WriteString("- 날짜: (기사 날짜)\n")
	prompt.WriteString("- URL: (기사 링크)\n")
	prompt.WriteString("- 관련 내용: (핵심 내용)\n\n")

	prompt.WriteString(sections.MarkerGuide + "\n")
	prompt.WriteString("문동권 사장님의 경영 철학과 신한카드의 방향성을 고려한 분석입니다.\n")
	prompt.WriteString("(앞선 내용을 바탕으로 신입사원들이 참고할 수 있는 가이드라인 제시)\n\n")

	prompt.WriteString("주의사항:\n")
	prompt.WriteString("1. 각 섹션은 명확히 구분되어야 합니다.\n")
	prompt.WriteString("2. 실제 발언처럼 자연스러운 어투를 사용합니다.\n")
	prompt.WriteString("3. 각 섹션의 형식을 정확히 지켜주세요.\n")
	prompt.WriteString("4. 섹션들이 서로 섞이지 않도록 해주세요.")

	return prompt.String()
}
