package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// GenerateOptions controls a single Generate call
type GenerateOptions struct {
	Tier            ModelTier
	JSON            bool
	Timeout         time.Duration
	MaxRetries      int
	InitialInterval time.Duration
}

// DefaultGenerateOptions returns options with the default timeout and retry budget
func DefaultGenerateOptions(tier ModelTier, jsonOut bool) GenerateOptions {
	return GenerateOptions{
		Tier:            tier,
		JSON:            jsonOut,
		Timeout:         DefaultTimeout,
		MaxRetries:      DefaultMaxRetries,
		InitialInterval: 500 * time.Millisecond,
	}
}

type generateResult struct {
	text string
	err  error
}

// Generate calls the client with a deadline and retries failed attempts with exponential backoff.
// It returns as soon as ctx is done or the deadline passes; a result that arrives later is discarded.
func Generate(ctx context.Context, client Client, prompt string, opts GenerateOptions) (string, error) {
	if client == nil {
		return "", ErrNoClient
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 500 * time.Millisecond
	}
	if opts.Tier == "" {
		opts.Tier = TierStandard
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	// Buffered so the worker never blocks after the caller has gone
	done := make(chan generateResult, 1)
	go func() {
		text, err := generateWithRetry(ctx, client, prompt, opts)
		done <- generateResult{text: text, err: err}
	}()

	var r generateResult
	select {
	case <-ctx.Done():
		r.err = ctx.Err()
	case r = <-done:
	}

	if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", &TimeoutError{
			Message: fmt.Sprintf("no response within %s", opts.Timeout),
			Cause:   ctx.Err(),
		}
	}
	return r.text, r.err
}

func generateWithRetry(ctx context.Context, client Client, prompt string, opts GenerateOptions) (string, error) {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = opts.InitialInterval
	expo.MaxElapsedTime = opts.Timeout

	retries := opts.MaxRetries
	if retries < 0 {
		retries = 0
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(retries)), ctx)

	op := func() (string, error) {
		var (
			text string
			err  error
		)
		if opts.JSON {
			text, err = client.GenerateJSON(ctx, prompt, opts.Tier)
		} else {
			text, err = client.GenerateContent(ctx, prompt, opts.Tier)
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", backoff.Permanent(err)
			}
			return "", err
		}
		return text, nil
	}

	return backoff.RetryWithData(op, bo)
}
