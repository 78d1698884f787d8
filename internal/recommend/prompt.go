// ABOUTME: Deterministic prompt rendering for the recommendation generator.
// ABOUTME: Identical summaries and missing-data lists yield byte-identical prompts.
package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/mediulus/train-together/internal/models"
	"github.com/mediulus/train-together/internal/summary"
)

const notAvailable = "n/a"

// BuildPrompt renders the weekly summary, the per-day table, and the
// missing-data lists into the instruction set sent to the generator.
// Pure function of its inputs: metric order is fixed and every absent
// reading appears as an explicit marker, never silently omitted. The
// validator relies on this output being reproducible.
func BuildPrompt(s *models.WeeklySummary, missing summary.Missing) string {
	var b strings.Builder

	b.WriteString("You are a running coach assistant. Write a short training note for the athlete's week below.\n\n")

	weekEnd := s.WeekStart.AddDate(0, 0, 7)
	fmt.Fprintf(&b, "Week %s to %s (end exclusive)\n", s.WeekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total distance: %.2f km\n", s.TotalDistance)

	b.WriteString("\nWeekly averages and week-over-week trends:\n")
	for _, metric := range models.AllMetrics {
		trend := s.Trends[metric]
		value := notAvailable
		if trend.Value != nil {
			value = fmt.Sprintf("%.2f", *trend.Value)
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", metric, value, trend.Direction)
	}

	b.WriteString("\nPer-day log:\n")
	for _, m := range s.Days {
		fmt.Fprintf(&b, "%s", m.Day.Format("2006-01-02"))
		for _, metric := range models.AllMetrics {
			value := notAvailable
			if v := m.Value(metric); v != nil {
				value = fmt.Sprintf("%.2f", *v)
			}
			fmt.Fprintf(&b, " | %s=%s", metric, value)
		}
		if m.Note != nil && *m.Note != "" {
			fmt.Fprintf(&b, " | note=%q", *m.Note)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nDays with no athlete log: %s\n", formatDays(missing.AthleteDays))
	fmt.Fprintf(&b, "Days with no coach plan: %s\n", formatDays(missing.CoachDays))

	b.WriteString("\nRules:\n")
	b.WriteString("- Keep the note under 200 words.\n")
	b.WriteString("- Only reference data shown above. Never invent readings or days.\n")
	b.WriteString("- No medical, diagnostic, or prescriptive advice of any kind.\n")
	fmt.Fprintf(&b, "- If the data is too sparse to analyze, reply with exactly: %q\n", CanonicalInsufficientData)

	return b.String()
}

func formatDays(days []time.Time) string {
	if len(days) == 0 {
		return "none"
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = d.Format("2006-01-02")
	}
	return strings.Join(parts, ", ")
}
