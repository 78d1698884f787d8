// ABOUTME: CLI command running the full recommendation pipeline.
// ABOUTME: Supports a dry run that prints the prompt without calling the generator.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediulus/train-together/internal/recommend"
	"github.com/mediulus/train-together/internal/summary"
	"github.com/mediulus/train-together/internal/week"
)

var (
	recommendWeek       string
	recommendShowPrompt bool
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"rec"},
	Short:   "Generate and publish a weekly recommendation",
	Long: `Build the week's summary, ask the generator for a coaching note,
validate it, and publish the accepted note onto every logged day of the week.

Requires a Gemini API key (GEMINI_API_KEY or the config file) unless
--show-prompt is given, which prints the prompt and exits without
calling the generator.

Examples:
  trainweek recommend -a ath1
  trainweek recommend -a ath1 --week 2025-06-04
  trainweek recommend -a ath1 --show-prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAthlete(); err != nil {
			return err
		}

		asOf := time.Now().UTC()
		if recommendWeek != "" {
			var err error
			asOf, err = time.ParseInLocation("2006-01-02", recommendWeek, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid --week date: %s", recommendWeek)
			}
		}

		builder := summary.NewBuilder(repo, repo, logger)

		if recommendShowPrompt {
			return showPrompt(cmd, builder, asOf)
		}

		apiKey := cfg.GetGeminiAPIKey()
		if apiKey == "" {
			return fmt.Errorf("no Gemini API key configured (set GEMINI_API_KEY or gemini_api_key in the config file)")
		}
		generator, err := recommend.NewGeminiGenerator(cmd.Context(), apiKey, cfg.GeminiModel)
		if err != nil {
			return err
		}

		engine := recommend.NewEngine(builder, repo, repo, generator, logger)
		result, err := engine.Recommend(cmd.Context(), athlete, asOf)
		if errors.Is(err, summary.ErrNoData) {
			return fmt.Errorf("no measurements for %s in the week containing %s", athlete, asOf.Format("2006-01-02"))
		}
		if errors.Is(err, recommend.ErrValidation) {
			return fmt.Errorf("generated note was rejected: %w", err)
		}
		if err != nil {
			return err
		}

		color.New(color.Bold).Printf("Week of %s — %s\n\n", result.Summary.WeekStart.Format("2006-01-02"), athlete)
		fmt.Println(result.Note)
		fmt.Println()
		color.Green("✓ Published to %d day(s)", result.DaysUpdated)
		return nil
	},
}

// showPrompt builds the summary and prints the exact generator prompt
// without contacting the generator or publishing anything.
func showPrompt(cmd *cobra.Command, builder *summary.Builder, asOf time.Time) error {
	s, err := builder.Build(cmd.Context(), athlete, asOf)
	if errors.Is(err, summary.ErrNoData) {
		return fmt.Errorf("no measurements for %s in the week containing %s", athlete, asOf.Format("2006-01-02"))
	}
	if err != nil {
		return err
	}

	window, err := week.WindowOf(asOf)
	if err != nil {
		return err
	}
	miss, err := summary.DetectMissing(cmd.Context(), repo, repo, athlete, window)
	if err != nil {
		return err
	}

	fmt.Print(recommend.BuildPrompt(s, miss))
	return nil
}

func init() {
	recommendCmd.Flags().StringVar(&recommendWeek, "week", "", "any date in the target week (YYYY-MM-DD, default today)")
	recommendCmd.Flags().BoolVar(&recommendShowPrompt, "show-prompt", false, "print the generator prompt and exit without generating")
	rootCmd.AddCommand(recommendCmd)
}
