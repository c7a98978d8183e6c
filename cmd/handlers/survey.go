package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jungh5/shcard-ceo-bot/internal/config"
	"github.com/jungh5/shcard-ceo-bot/internal/llm"
	"github.com/jungh5/shcard-ceo-bot/internal/survey"
)

// NewSurveyCmd creates the survey categorization command
func NewSurveyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "survey [csv-file]",
		Short: "Categorize survey questions from a CSV file",
		Long: `Read new-employee survey questions from a CSV file, group them into
categories with an LLM and print a report sorted by category size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			questions, err := survey.ReadQuestionsCSV(args[0])
			if err != nil {
				return fmt.Errorf("failed to read survey file: %w", err)
			}
			if len(questions) == 0 {
				return fmt.Errorf("no questions found in %s", args[0])
			}

			completer, err := llm.NewClient(cfg.AI.Gemini.Model)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}

			categorizer := survey.NewCategorizer(completer, cfg.Survey.MaxCategories, cfg.Survey.SamplesPerSection)
			categories, err := categorizer.Categorize(cmd.Context(), questions)
			if err != nil {
				return fmt.Errorf("failed to categorize questions: %w", err)
			}

			fmt.Println(survey.RenderReport(categories, len(questions)))
			return nil
		},
	}
}
