// Package tui is the terminal chat host: it owns the session, renders
// completed turns and feeds questions to the pipeline one at a time.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/pipeline"
)

var (
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	aiStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	inputStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)
)

// turnMsg carries one finished pipeline turn back into the update loop.
type turnMsg struct {
	query  string
	result *pipeline.TurnResult
	err    error
}

type model struct {
	pipe    *pipeline.Pipeline
	session *core.Session

	input    string
	lines    []string
	busy     bool
	width    int
	height   int
	quitting bool
}

// initialModel returns the starting state of the chat.
func initialModel(pipe *pipeline.Pipeline, session *core.Session) model {
	return model{
		pipe:    pipe,
		session: session,
		lines: []string{
			statusStyle.Render("신한카드 CEO 뉴스 검색 시스템 — 질문을 입력하고 Enter를 누르세요. (ctrl+c 종료, ctrl+t 음성 토글)"),
		},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case turnMsg:
		m.busy = false
		m.lines = append(m.lines, m.renderTurn(msg)...)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlT:
			m.session.TTSEnabled = !m.session.TTSEnabled
			state := "꺼짐"
			if m.session.TTSEnabled {
				state = "켜짐"
			}
			m.lines = append(m.lines, statusStyle.Render("음성 출력: "+state))
		case tea.KeyEnter:
			query := strings.TrimSpace(m.input)
			if query == "" || m.busy {
				break
			}
			m.input = ""
			m.busy = true
			m.lines = append(m.lines, userStyle.Render("나: ")+query)
			return m, m.runTurn(query)
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				runes := []rune(m.input)
				m.input = string(runes[:len(runes)-1])
			}
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}
	}

	return m, nil
}

// runTurn executes the pipeline off the update loop; the host serializes one
// turn at a time via the busy flag.
func (m model) runTurn(query string) tea.Cmd {
	pipe, session := m.pipe, m.session
	return func() tea.Msg {
		result, err := pipe.Run(context.Background(), session, query)
		return turnMsg{query: query, result: result, err: err}
	}
}

// renderTurn formats one finished turn for the history pane. Turn errors are
// shown and leave the session ready for the next question.
func (m model) renderTurn(msg turnMsg) []string {
	if msg.err != nil {
		return []string{errorStyle.Render("검색 중 오류가 발생했습니다: " + msg.err.Error())}
	}

	lines := []string{aiStyle.Render(msg.result.Render())}
	if !msg.result.Grounded {
		lines = append([]string{warnStyle.Render("관련된 최신 기사를 찾을 수 없어 일반 답변을 드립니다.")}, lines...)
	}
	if msg.result.AudioErr != nil {
		lines = append(lines, warnStyle.Render("음성 파일을 생성하지 못했습니다."))
	} else if msg.result.AudioPath != "" {
		lines = append(lines, statusStyle.Render("음성 저장됨: "+msg.result.AudioPath))
	}
	return lines
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	history := strings.Join(m.lines, "\n")
	status := ""
	if m.busy {
		status = statusStyle.Render("\n뉴스 검색 중... 잠시만 기다려주세요.")
	}

	prompt := inputStyle.Width(width - 2).Render(fmt.Sprintf("> %s█", m.input))
	return fmt.Sprintf("%s%s\n%s\n", history, status, prompt)
}

// StartChat runs the interactive chat until the user quits.
func StartChat(pipe *pipeline.Pipeline, session *core.Session) error {
	p := tea.NewProgram(initialModel(pipe, session))
	_, err := p.Run()
	return err
}
