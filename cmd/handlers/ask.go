package handlers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jungh5/shcard-ceo-bot/internal/config"
)

// NewAskCmd creates the one-shot question command
func NewAskCmd() *cobra.Command {
	var noTTS bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question and exit",
		Long:  `Answer one question about the CEO from recent news articles and print the result to stdout.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			pipe, err := buildPipeline(cfg)
			if err != nil {
				return err
			}

			session := newSession(cfg)
			if noTTS {
				session.TTSEnabled = false
			}

			query := strings.Join(args, " ")
			result, err := pipe.Run(cmd.Context(), session, query)
			if err != nil {
				return err
			}

			fmt.Println(result.Render())
			if result.AudioErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "음성 파일을 생성하지 못했습니다.")
			} else if result.AudioPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "음성 저장됨: %s\n", result.AudioPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTTS, "no-tts", false, "disable speech synthesis for this question")
	return cmd
}
