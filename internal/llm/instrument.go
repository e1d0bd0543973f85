package llm

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Outcome labels recorded for every finished generation.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
	OutcomeCanceled = "canceled"
	OutcomeEmpty    = "empty"
)

// Observer receives one sample per finished generation.
type Observer interface {
	ObserveGeneration(provider, model, outcome string, elapsed time.Duration)
}

type instrumentedClient struct {
	next     Client
	provider Provider
	model    string
	logger   *zap.Logger
	observer Observer
}

// Instrument decorates next with structured logging and observer samples. Either
// logger or observer may be nil.
func Instrument(next Client, provider Provider, model string, logger *zap.Logger, observer Observer) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedClient{
		next:     next,
		provider: provider,
		model:    model,
		logger:   logger.With(zap.String("provider", string(provider)), zap.String("model", model)),
		observer: observer,
	}
}

func (c *instrumentedClient) Name() string { return c.next.Name() }

func (c *instrumentedClient) Generate(ctx context.Context, prompt string) (string, error) {
	started := time.Now()
	c.logger.Debug("generation started", zap.Int("prompt_bytes", len(prompt)))

	text, err := c.next.Generate(ctx, prompt)
	elapsed := time.Since(started)
	outcome := classify(err)
	if c.observer != nil {
		c.observer.ObserveGeneration(string(c.provider), c.model, outcome, elapsed)
	}
	if err != nil {
		c.logger.Warn("generation failed",
			zap.String("outcome", outcome),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return "", err
	}
	c.logger.Info("generation finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("statement_bytes", len(text)),
	)
	return text, nil
}

func classify(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, ErrEmptyResponse):
		return OutcomeEmpty
	default:
		return OutcomeError
	}
}
