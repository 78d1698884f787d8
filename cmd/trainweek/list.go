// ABOUTME: CLI command for listing daily measurements.
// ABOUTME: Prints one line per day with explicit markers for absent readings.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediulus/train-together/internal/models"
)

var (
	listFrom string
	listTo   string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List daily measurements",
	Long: `List an athlete's daily measurements, one line per day.

Each line shows every tracked metric; days without a reading show "-".

Examples:
  trainweek list -a ath1                          # Last 14 days
  trainweek list -a ath1 --from 2025-06-01 --to 2025-07-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAthlete(); err != nil {
			return err
		}

		to := time.Now().UTC().AddDate(0, 0, 1)
		from := to.AddDate(0, 0, -15)
		var err error
		if listFrom != "" {
			from, err = time.ParseInLocation("2006-01-02", listFrom, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid --from date: %s", listFrom)
			}
		}
		if listTo != "" {
			to, err = time.ParseInLocation("2006-01-02", listTo, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid --to date: %s", listTo)
			}
		}

		ms, err := repo.ListMeasurements(cmd.Context(), athlete, from, to)
		if err != nil {
			return fmt.Errorf("list measurements: %w", err)
		}

		if len(ms) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range ms {
			fmt.Printf("%s", m.Day.Format("2006-01-02"))
			for _, metric := range models.AllMetrics {
				if v := m.Value(metric); v != nil {
					fmt.Printf("  %s=%.2f", metric, *v)
				} else {
					fmt.Printf("  %s", faint.Sprintf("%s=-", metric))
				}
			}
			if m.Note != nil && *m.Note != "" {
				fmt.Printf("  %s", faint.Sprintf("(%s)", *m.Note))
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "start date inclusive (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "end date exclusive (YYYY-MM-DD)")
	rootCmd.AddCommand(listCmd)
}
