// ABOUTME: CLI command for reporting missing athlete logs and coach plans.
// ABOUTME: Scans the seven days of a week against both stores.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediulus/train-together/internal/summary"
	"github.com/mediulus/train-together/internal/week"
)

var missingWeek string

var missingCmd = &cobra.Command{
	Use:   "missing",
	Short: "Show days without athlete logs or coach plans",
	Long: `List the days of a week that have no athlete measurement record
and the days that have no coach plan.

Examples:
  trainweek missing -a ath1
  trainweek missing -a ath1 --week 2025-06-04`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAthlete(); err != nil {
			return err
		}

		asOf := time.Now().UTC()
		if missingWeek != "" {
			var err error
			asOf, err = time.ParseInLocation("2006-01-02", missingWeek, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid --week date: %s", missingWeek)
			}
		}

		window, err := week.WindowOf(asOf)
		if err != nil {
			return err
		}

		miss, err := summary.DetectMissing(cmd.Context(), repo, repo, athlete, window)
		if err != nil {
			return err
		}

		color.New(color.Bold).Printf("Week of %s — %s\n", window.Start.Format("2006-01-02"), athlete)
		printDayList("Days with no athlete log", miss.AthleteDays)
		printDayList("Days with no coach plan", miss.CoachDays)
		return nil
	},
}

func printDayList(label string, days []time.Time) {
	fmt.Printf("  %s:\n", label)
	if len(days) == 0 {
		color.Green("    none")
		return
	}
	for _, d := range days {
		fmt.Printf("    %s (%s)\n", d.Format("2006-01-02"), d.Weekday())
	}
}

func init() {
	missingCmd.Flags().StringVar(&missingWeek, "week", "", "any date in the target week (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(missingCmd)
}
