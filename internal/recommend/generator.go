// ABOUTME: Generator interface for the external text-generation service.
// ABOUTME: Output is untrusted; the validator is the only acceptance gate.
package recommend

import "context"

// Generator produces a candidate note from a prompt. Implementations make
// no guarantees about latency, determinism, or content.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
