// Package survey implements the spreadsheet mode: a CSV of
// employee-submitted questions is categorized by the language model into a
// summarized report.
package survey

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/llm"
	"github.com/jungh5/shcard-ceo-bot/internal/logger"
)

const categorizeSystemPrompt = "신입사원들이 제출한 질문 목록을 주제별로 분류하는 assistant입니다. 요청된 출력 형식을 정확히 지켜주세요."

// fallbackCategory collects questions the model failed to assign.
const fallbackCategory = "기타"

// ReadQuestionsCSV reads employee questions from a CSV export. The first row
// is treated as a header when it contains a recognizable question column;
// otherwise every row's last column is taken as the question text.
func ReadQuestionsCSV(path string) ([]core.SurveyQuestion, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open survey file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse survey file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("survey file %s is empty", path)
	}

	questionCol, employeeCol, hasHeader := detectColumns(records[0])
	start := 0
	if hasHeader {
		start = 1
	}

	var questions []core.SurveyQuestion
	for i := start; i < len(records); i++ {
		row := records[i]
		if len(row) == 0 {
			continue
		}
		col := questionCol
		if col >= len(row) {
			col = len(row) - 1
		}
		text := strings.TrimSpace(row[col])
		if text == "" {
			continue
		}
		q := core.SurveyQuestion{Row: i + 1, Text: text}
		if employeeCol >= 0 && employeeCol < len(row) {
			q.Employee = strings.TrimSpace(row[employeeCol])
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("survey file %s contains no questions", path)
	}
	return questions, nil
}

// detectColumns finds the question and submitter columns from a header row.
func detectColumns(header []string) (questionCol, employeeCol int, hasHeader bool) {
	questionCol = len(header) - 1
	employeeCol = -1
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "question", "질문", "문의", "내용":
			questionCol = i
			hasHeader = true
		case "employee", "name", "이름", "사번", "작성자":
			employeeCol = i
			hasHeader = true
		}
	}
	if !hasHeader {
		employeeCol = -1
	}
	return questionCol, employeeCol, hasHeader
}

// Categorizer buckets survey questions by topic via the language model.
type Categorizer struct {
	completer     llm.Completer
	maxCategories int
	samples       int
}

// NewCategorizer creates a Categorizer. maxCategories bounds the number of
// buckets the model may invent; samples caps representative questions kept
// per bucket.
func NewCategorizer(completer llm.Completer, maxCategories, samples int) *Categorizer {
	if maxCategories <= 0 {
		maxCategories = 6
	}
	if samples <= 0 {
		samples = 3
	}
	return &Categorizer{completer: completer, maxCategories: maxCategories, samples: samples}
}

// Categorize asks the model to bucket the questions and returns the buckets
// ordered by descending size. Questions the model left out land in the
// fallback bucket.
func (c *Categorizer) Categorize(ctx context.Context, questions []core.SurveyQuestion) ([]core.SurveyCategory, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions to categorize")
	}

	response, err := c.completer.GenerateText(ctx, c.buildPrompt(questions), llm.Options{
		System:      categorizeSystemPrompt,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to categorize questions: %w", err)
	}

	return c.parseResponse(response, questions), nil
}

// buildPrompt numbers every question and pins the exact output format.
func (c *Categorizer) buildPrompt(questions []core.SurveyQuestion) string {
	var prompt strings.Builder

	prompt.WriteString("다음은 신입사원들이 제출한 질문 목록입니다:\n\n")
	for i, q := range questions {
		prompt.WriteString(fmt.Sprintf("%d. %s\n", i+1, q.Text))
	}

	prompt.WriteString(fmt.Sprintf("\n위 질문들을 최대 %d개의 주제로 분류해주세요.\n", c.maxCategories))
	prompt.WriteString("다음 형식을 정확히 지켜서 답변해주세요:\n\n")
	prompt.WriteString("CATEGORY: [주제 이름]\n")
	prompt.WriteString("QUESTIONS: [해당 질문 번호를 쉼표로 구분]\n\n")
	prompt.WriteString("모든 질문 번호가 정확히 하나의 주제에 속해야 합니다.")

	return prompt.String()
}

// parseResponse reads the line-prefixed category blocks. Malformed lines are
// skipped; unassigned questions are collected into the fallback bucket.
func (c *Categorizer) parseResponse(response string, questions []core.SurveyQuestion) []core.SurveyCategory {
	assigned := make(map[int]bool, len(questions))
	var categories []core.SurveyCategory
	var current *core.SurveyCategory

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "CATEGORY:") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "CATEGORY:"))
			if name == "" {
				current = nil
				continue
			}
			categories = append(categories, core.SurveyCategory{Name: name})
			current = &categories[len(categories)-1]
			continue
		}

		if strings.HasPrefix(line, "QUESTIONS:") && current != nil {
			for _, numStr := range strings.Split(strings.TrimPrefix(line, "QUESTIONS:"), ",") {
				num, err := strconv.Atoi(strings.TrimSpace(numStr))
				if err != nil || num < 1 || num > len(questions) || assigned[num] {
					continue
				}
				assigned[num] = true
				current.Count++
				if len(current.Questions) < c.samples {
					current.Questions = append(current.Questions, questions[num-1].Text)
				}
			}
		}
	}

	var leftovers core.SurveyCategory
	leftovers.Name = fallbackCategory
	for i, q := range questions {
		if !assigned[i+1] {
			leftovers.Count++
			if len(leftovers.Questions) < c.samples {
				leftovers.Questions = append(leftovers.Questions, q.Text)
			}
		}
	}
	if leftovers.Count > 0 {
		logger.Debug("questions left unassigned by the model", "count", leftovers.Count)
		categories = append(categories, leftovers)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Count > categories[j].Count
	})

	// Drop buckets the model named but never filled.
	filtered := categories[:0]
	for _, cat := range categories {
		if cat.Count > 0 {
			filtered = append(filtered, cat)
		}
	}
	return filtered
}

// RenderReport formats the categorized summary for terminal output.
func RenderReport(categories []core.SurveyCategory, total int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("총 %d개 질문, %d개 주제\n", total, len(categories)))
	for _, cat := range categories {
		b.WriteString(fmt.Sprintf("\n%s (%d건)\n", cat.Name, cat.Count))
		for _, q := range cat.Questions {
			b.WriteString(fmt.Sprintf("  - %s\n", q))
		}
	}
	return b.String()
}
