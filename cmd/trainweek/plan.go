// ABOUTME: CLI commands for recording and checking coach plan presence.
// ABOUTME: Plans are tracked by (athlete, day); content lives outside this tool.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Track coach plan presence by day",
	Long: `Record which days have a coach plan. The missing-data report and the
recommendation prompt use this to call out days without a plan.

Examples:
  trainweek plan add -a ath1                # Mark a plan for today
  trainweek plan add -a ath1 --on 2025-06-04
  trainweek plan check -a ath1 --on 2025-06-04`,
}

var planOn string

var planAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Mark a day as having a coach plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAthlete(); err != nil {
			return err
		}

		day, err := parsePlanDay()
		if err != nil {
			return err
		}
		if err := repo.SetPlan(cmd.Context(), athlete, day); err != nil {
			return err
		}
		color.Green("✓ Plan recorded for %s on %s", athlete, day.Format("2006-01-02"))
		return nil
	},
}

var planCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a day has a coach plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAthlete(); err != nil {
			return err
		}

		day, err := parsePlanDay()
		if err != nil {
			return err
		}
		has, err := repo.HasPlan(cmd.Context(), athlete, day)
		if err != nil {
			return err
		}
		if has {
			color.Green("Plan exists for %s on %s", athlete, day.Format("2006-01-02"))
		} else {
			color.Yellow("No plan for %s on %s", athlete, day.Format("2006-01-02"))
		}
		return nil
	},
}

func parsePlanDay() (time.Time, error) {
	if planOn == "" {
		return time.Now().UTC(), nil
	}
	day, err := time.ParseInLocation("2006-01-02", planOn, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --on date: %s", planOn)
	}
	return day, nil
}

func init() {
	planCmd.PersistentFlags().StringVar(&planOn, "on", "", "day of the plan (YYYY-MM-DD, default today)")
	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planCheckCmd)
	rootCmd.AddCommand(planCmd)
}
