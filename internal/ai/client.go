package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/logger"
)

// Client runs a prompt through an ordered chain of providers. Each provider
// gets exactly one attempt; an unconfigured provider is skipped. There is no
// retry loop within a provider.
type Client struct {
	providers []Provider
}

func NewClient(providers ...Provider) *Client {
	return &Client{providers: providers}
}

// Generate returns the first non-empty completion in provider order. If every
// provider is skipped or fails, the aggregated failure is returned as a
// GenerationError and nothing is persisted by the caller.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.Get()
	var failures []string

	for _, p := range c.providers {
		if !p.Configured() {
			log.Debug().Str("provider", p.Name()).Msg("provider not configured, skipping")
			failures = append(failures, fmt.Sprintf("%s: not configured", p.Name()))
			continue
		}

		text, err := p.Complete(ctx, prompt)
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name()).Msg("provider call failed, trying next")
			failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Warn().Str("provider", p.Name()).Msg("provider returned empty text, trying next")
			failures = append(failures, fmt.Sprintf("%s: empty response", p.Name()))
			continue
		}

		log.Info().Str("provider", p.Name()).Int("length", len(text)).Msg("generation succeeded")
		return text, nil
	}

	return "", apperrors.Generation(
		fmt.Errorf("%s", strings.Join(failures, "; ")),
		"all generation providers failed",
	)
}
