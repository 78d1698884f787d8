// ABOUTME: CLI command for building and printing the weekly summary.
// ABOUTME: Shows totals, per-metric averages, and trend arrows.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediulus/train-together/internal/models"
	"github.com/mediulus/train-together/internal/summary"
)

var summaryWeek string

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"sum", "s"},
	Short:   "Build this week's training summary",
	Long: `Build (or rebuild) the weekly summary for the week containing a date,
store it, and print it. Rebuilding a week replaces the stored summary.

Examples:
  trainweek summary -a ath1                 # Week containing today
  trainweek summary -a ath1 --week 2025-06-04`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAthlete(); err != nil {
			return err
		}

		asOf := time.Now().UTC()
		if summaryWeek != "" {
			var err error
			asOf, err = time.ParseInLocation("2006-01-02", summaryWeek, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid --week date: %s", summaryWeek)
			}
		}

		builder := summary.NewBuilder(repo, repo, logger)
		s, err := builder.Build(cmd.Context(), athlete, asOf)
		if errors.Is(err, summary.ErrNoData) {
			return fmt.Errorf("no measurements for %s in the week containing %s", athlete, asOf.Format("2006-01-02"))
		}
		if err != nil {
			return err
		}

		printSummary(s)
		return nil
	},
}

func printSummary(s *models.WeeklySummary) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("Week of %s — %s\n", s.WeekStart.Format("2006-01-02"), s.AthleteID)
	fmt.Printf("  total distance: %.2f km over %d logged day(s)\n", s.TotalDistance, len(s.Days))
	fmt.Println()

	for _, metric := range models.AllMetrics {
		trend := s.Trends[metric]
		value := faint.Sprint("n/a")
		if trend.Value != nil {
			value = fmt.Sprintf("%.2f %s", *trend.Value, models.MetricUnits[metric])
		}
		fmt.Printf("  %-20s %-14s %s\n", metric, value, trendArrow(trend.Direction))
	}
}

func trendArrow(d models.TrendDirection) string {
	switch d {
	case models.TrendIncreasing:
		return color.GreenString("↑ increasing")
	case models.TrendDecreasing:
		return color.RedString("↓ decreasing")
	default:
		return color.New(color.Faint).Sprint("→ unchanged")
	}
}

func init() {
	summaryCmd.Flags().StringVar(&summaryWeek, "week", "", "any date in the target week (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(summaryCmd)
}
