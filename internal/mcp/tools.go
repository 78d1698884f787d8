// ABOUTME: MCP tool implementations for the training pipeline.
// ABOUTME: Exposes measurement logging, weekly summaries, missing-data, and recommendations.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mediulus/train-together/internal/models"
	"github.com/mediulus/train-together/internal/summary"
	"github.com/mediulus/train-together/internal/week"
)

func (s *Server) registerTools() {
	// log_measurement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_measurement",
		Description: "Record daily training metrics for an athlete (merges into the day's record)",
	}, s.handleLogMeasurement)

	// get_weekly_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_weekly_summary",
		Description: "Build and store the weekly training summary for the week containing a date",
	}, s.handleWeeklySummary)

	// missing_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "missing_data",
		Description: "List the week's days lacking athlete logs or coach plans",
	}, s.handleMissingData)

	// set_plan
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_plan",
		Description: "Mark that a coach plan exists for an athlete and day",
	}, s.handleSetPlan)

	// recommend
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recommend",
		Description: "Generate, validate, and publish the weekly training recommendation",
	}, s.handleRecommend)
}

// Tool input/output types

type logMeasurementInput struct {
	AthleteID string             `json:"athlete_id" jsonschema:"Opaque athlete identifier"`
	Day       string             `json:"day" jsonschema:"Date (YYYY-MM-DD)"`
	Metrics   map[string]float64 `json:"metrics" jsonschema:"Metric values keyed by name (distance, stress, sleep_hours, resting_heart_rate, exercise_heart_rate, perceived_exertion)"`
	Note      string             `json:"note,omitempty" jsonschema:"Optional free-text note"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type weekInput struct {
	AthleteID string `json:"athlete_id" jsonschema:"Opaque athlete identifier"`
	Day       string `json:"day,omitempty" jsonschema:"Any date in the target week (YYYY-MM-DD), defaults to today"`
}

type summaryOutput struct {
	WeekStart     string                                   `json:"week_start"`
	TotalDistance float64                                  `json:"total_distance"`
	Trends        map[models.Metric]models.TrendComparison `json:"trends"`
	DaysLogged    int                                      `json:"days_logged"`
}

type missingOutput struct {
	AthleteDays []string `json:"athlete_days"`
	CoachDays   []string `json:"coach_days"`
}

type setPlanInput struct {
	AthleteID string `json:"athlete_id" jsonschema:"Opaque athlete identifier"`
	Day       string `json:"day" jsonschema:"Date (YYYY-MM-DD)"`
}

type recommendOutput struct {
	Note        string `json:"note"`
	DaysUpdated int    `json:"days_updated"`
	Message     string `json:"message"`
}

func parseDay(dayStr string) (time.Time, error) {
	if dayStr == "" || dayStr == "today" {
		return models.DayOf(time.Now()), nil
	}
	day, err := time.ParseInLocation("2006-01-02", dayStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", dayStr, err)
	}
	return day, nil
}

// Tool handlers

func (s *Server) handleLogMeasurement(ctx context.Context, req *mcp.CallToolRequest, input logMeasurementInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.AthleteID == "" {
		return nil, simpleOutput{}, fmt.Errorf("athlete_id is required")
	}
	day, err := parseDay(input.Day)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	m := models.NewMeasurement(input.AthleteID, day)
	for name, value := range input.Metrics {
		if !models.IsValidMetric(name) {
			return nil, simpleOutput{}, fmt.Errorf("unknown metric: %s", name)
		}
		m.SetValue(models.Metric(name), value)
	}
	if input.Note != "" {
		m.WithNote(input.Note)
	}

	stored, err := s.repo.UpsertMeasurement(ctx, m)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("store measurement: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %d metric(s) for %s on %s", len(input.Metrics), stored.AthleteID, stored.Day.Format("2006-01-02")),
	}, nil
}

func (s *Server) handleWeeklySummary(ctx context.Context, req *mcp.CallToolRequest, input weekInput) (*mcp.CallToolResult, summaryOutput, error) {
	day, err := parseDay(input.Day)
	if err != nil {
		return nil, summaryOutput{}, err
	}

	sum, err := s.builder.Build(ctx, input.AthleteID, day)
	if err != nil {
		return nil, summaryOutput{}, fmt.Errorf("build summary: %w", err)
	}

	return nil, summaryOutput{
		WeekStart:     sum.WeekStart.Format("2006-01-02"),
		TotalDistance: sum.TotalDistance,
		Trends:        sum.Trends,
		DaysLogged:    len(sum.Days),
	}, nil
}

func (s *Server) handleMissingData(ctx context.Context, req *mcp.CallToolRequest, input weekInput) (*mcp.CallToolResult, missingOutput, error) {
	day, err := parseDay(input.Day)
	if err != nil {
		return nil, missingOutput{}, err
	}
	window, err := week.WindowOf(day)
	if err != nil {
		return nil, missingOutput{}, err
	}

	missing, err := summary.DetectMissing(ctx, s.repo, s.repo, input.AthleteID, window)
	if err != nil {
		return nil, missingOutput{}, fmt.Errorf("detect missing data: %w", err)
	}

	out := missingOutput{AthleteDays: []string{}, CoachDays: []string{}}
	for _, d := range missing.AthleteDays {
		out.AthleteDays = append(out.AthleteDays, d.Format("2006-01-02"))
	}
	for _, d := range missing.CoachDays {
		out.CoachDays = append(out.CoachDays, d.Format("2006-01-02"))
	}
	return nil, out, nil
}

func (s *Server) handleSetPlan(ctx context.Context, req *mcp.CallToolRequest, input setPlanInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.AthleteID == "" {
		return nil, simpleOutput{}, fmt.Errorf("athlete_id is required")
	}
	day, err := parseDay(input.Day)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.repo.SetPlan(ctx, input.AthleteID, day); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("set plan: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Plan recorded for %s on %s", input.AthleteID, day.Format("2006-01-02")),
	}, nil
}

func (s *Server) handleRecommend(ctx context.Context, req *mcp.CallToolRequest, input weekInput) (*mcp.CallToolResult, recommendOutput, error) {
	if s.engine == nil {
		return nil, recommendOutput{}, fmt.Errorf("recommendation engine unavailable: no generator configured (set GEMINI_API_KEY)")
	}

	day, err := parseDay(input.Day)
	if err != nil {
		return nil, recommendOutput{}, err
	}

	result, err := s.engine.Recommend(ctx, input.AthleteID, day)
	if err != nil {
		return nil, recommendOutput{}, fmt.Errorf("recommend: %w", err)
	}

	return nil, recommendOutput{
		Note:        result.Note,
		DaysUpdated: result.DaysUpdated,
		Message:     fmt.Sprintf("Published recommendation to %d day(s)", result.DaysUpdated),
	}, nil
}
