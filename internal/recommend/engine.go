// ABOUTME: Recommendation pipeline: summary, prompt, generation, validation, publish.
// ABOUTME: Generator calls get a timeout and one bounded retry; store failures surface immediately.
package recommend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mediulus/train-together/internal/models"
	"github.com/mediulus/train-together/internal/storage"
	"github.com/mediulus/train-together/internal/summary"
	"github.com/mediulus/train-together/internal/week"
)

// defaultGeneratorTimeout bounds a single generator call.
const defaultGeneratorTimeout = 45 * time.Second

// Engine drives the weekly recommendation pipeline end to end.
type Engine struct {
	builder      *summary.Builder
	measurements storage.MeasurementStore
	plans        storage.PlanStore
	generator    Generator
	timeout      time.Duration
	log          *zap.Logger
}

// NewEngine wires the pipeline together.
func NewEngine(builder *summary.Builder, measurements storage.MeasurementStore, plans storage.PlanStore, generator Generator, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		builder:      builder,
		measurements: measurements,
		plans:        plans,
		generator:    generator,
		timeout:      defaultGeneratorTimeout,
		log:          log,
	}
}

// WithTimeout overrides the per-call generator timeout. Used by tests.
func (e *Engine) WithTimeout(d time.Duration) *Engine {
	e.timeout = d
	return e
}

// Result is the outcome of one recommendation run.
type Result struct {
	Summary     *models.WeeklySummary
	Missing     summary.Missing
	Prompt      string
	Note        string
	DaysUpdated int
}

// Recommend builds the week's summary, renders the prompt, obtains a
// candidate from the generator, validates it, and on acceptance publishes
// the note onto every daily record in the window. Weeks too sparse to
// analyze skip generation and publish the canonical sentence directly.
// Regenerating for the same week overwrites the previous note.
func (e *Engine) Recommend(ctx context.Context, athleteID string, asOf time.Time) (*Result, error) {
	s, err := e.builder.Build(ctx, athleteID, asOf)
	if err != nil {
		return nil, err
	}

	window, err := week.WindowOf(asOf)
	if err != nil {
		return nil, err
	}

	missing, err := summary.DetectMissing(ctx, e.measurements, e.plans, athleteID, window)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(s, missing)

	// With three or more fully-missing days the outcome is the canonical
	// sentence regardless of generator output, so skip the call entirely.
	// A generator outage then cannot block publishing it.
	var note string
	if fullyMissingDays(s) >= insufficientDataThreshold {
		note = CanonicalInsufficientData
	} else {
		candidate, err := e.generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("generate candidate: %w", err)
		}

		note, err = Validate(s, candidate)
		if err != nil {
			e.log.Warn("rejected candidate recommendation",
				zap.String("athlete_id", athleteID),
				zap.Time("week_start", window.Start),
				zap.Error(err))
			return nil, err
		}
	}

	updated, err := e.measurements.SetRecommendation(ctx, athleteID, window.Start, window.End, note)
	if err != nil {
		return nil, fmt.Errorf("publish recommendation: %w", err)
	}

	e.log.Info("published recommendation",
		zap.String("athlete_id", athleteID),
		zap.Time("week_start", window.Start),
		zap.Int("days_updated", updated),
		zap.Bool("insufficient_data", note == CanonicalInsufficientData))

	return &Result{
		Summary:     s,
		Missing:     missing,
		Prompt:      prompt,
		Note:        note,
		DaysUpdated: updated,
	}, nil
}

// generate calls the generator with a timeout and retries once on failure.
// Two failures surface as a hard error.
func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		candidate, err := e.generator.Generate(callCtx, prompt)
		cancel()
		if err == nil {
			return candidate, nil
		}
		lastErr = err
		e.log.Warn("generator call failed", zap.Int("attempt", attempt+1), zap.Error(err))

		// Don't retry if the parent context is already done.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
