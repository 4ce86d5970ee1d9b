package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/models"
)

// RetryConfig bounds WithRetry. MaxRetries counts attempts, so 3 means at most
// three calls to op.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	IsRetryable  func(error) bool
}

// DefaultRetryConfig returns the retry policy for a provider
func DefaultRetryConfig(p Provider) RetryConfig {
	return RetryConfig{
		MaxRetries:   constants.DefaultMaxRetries,
		InitialDelay: constants.DefaultRetryDelay,
		MaxDelay:     constants.DefaultMaxRetryWait,
		IsRetryable:  p.IsRetryable,
	}
}

// RetryConfigFromSettings applies the stored retry knobs to the provider's policy
func RetryConfigFromSettings(p Provider, s models.Settings) RetryConfig {
	cfg := DefaultRetryConfig(p)
	if s.DBMaxRetries > 0 {
		cfg.MaxRetries = s.DBMaxRetries
	}
	cfg.InitialDelay = s.RetryDelay()
	return cfg
}

// WithRetry runs op until it succeeds, fails with a non-retryable error, or the attempt
// budget runs out. The delay doubles after each retryable failure up to MaxDelay.
func WithRetry(ctx context.Context, cfg RetryConfig, op func() error) error {
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	delay := cfg.InitialDelay

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if cfg.IsRetryable == nil || !cfg.IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		logger.Warn("Database locked, retrying", "attempt", attempt, "max", attempts, "delay", delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-timer.C:
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	logger.Error("Database operation failed", "attempts", attempts, "error", err)
	return fmt.Errorf("%w (%d attempts): %w", ErrRetriesExhausted, attempts, err)
}
