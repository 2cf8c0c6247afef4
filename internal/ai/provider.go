package ai

import "context"

// Provider is a single text-generation backend. Complete returns the raw model
// text, which is expected (but not guaranteed) to contain a JSON object.
type Provider interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, prompt string) (string, error)
}
