// ABOUTME: CLI command for logging daily training measurements.
// ABOUTME: Merges values into the athlete's record for the day.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediulus/train-together/internal/models"
)

var (
	addOn    string
	addNotes string
)

var addCmd = &cobra.Command{
	Use:     "add <metric> <value>",
	Aliases: []string{"a", "log"},
	Short:   "Log a training measurement",
	Long: `Log a training measurement for an athlete. Values for the same day
merge into one daily record: logging stress after distance keeps both.

Examples:
  trainweek add distance 8.5 -a ath1
  trainweek add stress 4 -a ath1 --on 2025-06-02
  trainweek add sleep_hours 7.5 -a ath1 --notes "travel day"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAthlete(); err != nil {
			return err
		}

		metric := args[0]
		if !models.IsValidMetric(metric) {
			return fmt.Errorf("unknown metric: %s\nValid metrics: distance, stress, sleep_hours, resting_heart_rate, exercise_heart_rate, perceived_exertion", metric)
		}

		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		day := time.Now().UTC()
		if addOn != "" {
			day, err = time.ParseInLocation("2006-01-02", addOn, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", addOn)
			}
		}

		m := models.NewMeasurement(athlete, day)
		m.SetValue(models.Metric(metric), value)
		if addNotes != "" {
			m.WithNote(addNotes)
		}

		stored, err := repo.UpsertMeasurement(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("store measurement: %w", err)
		}

		color.Green("✓ Logged %s for %s", metric, athlete)
		fmt.Printf("  %s %s %.2f %s\n",
			color.New(color.Faint).Sprint(stored.Day.Format("2006-01-02")),
			metric, value, models.MetricUnits[models.Metric(metric)])

		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addOn, "on", "", "date of the measurement (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-text note for the day")
	rootCmd.AddCommand(addCmd)
}
