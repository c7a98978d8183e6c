package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jungh5/shcard-ceo-bot/internal/config"
	"github.com/jungh5/shcard-ceo-bot/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long:  `Start a terminal chat session that answers questions about the CEO from recent news articles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			pipe, err := buildPipeline(cfg)
			if err != nil {
				return err
			}

			fmt.Println("신한카드 CEO 뉴스 검색 시스템을 시작합니다.")
			return tui.StartChat(pipe, newSession(cfg))
		},
	}
}
