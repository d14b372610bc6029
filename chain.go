package doctext

import (
	"context"
	"fmt"
	"strings"
)

// RunChain executes a format's strategies in priority order. On a strategy
// failure it records a warning and advances to the next strategy; the first
// strategy that completes without error supplies the result, with the
// chain's accumulated warnings prepended to the strategy's own.
//
// Fallback is triggered only by a strategy error, never by a low-but-
// successful confidence score, and only when opts.FallbackStrategies is
// set; with fallback disabled the chain stops after its first strategy.
// opts.MaxRetries, when positive, caps the total number of strategies
// attempted. Returns EEXHAUSTED when every attempted strategy fails.
func RunChain(ctx context.Context, strategies []Strategy, data []byte, opts ExtractionOptions) (*Result, error) {
	if len(strategies) == 0 {
		return nil, Errorf(EINVALID, "no extraction strategies configured")
	}

	attempts := strategies
	if !opts.FallbackStrategies {
		attempts = attempts[:1]
	}
	if opts.MaxRetries > 0 && len(attempts) > opts.MaxRetries {
		attempts = attempts[:opts.MaxRetries]
	}

	var warnings []string
	var lastErr error
	for _, s := range attempts {
		result, err := runStrategy(ctx, s, data, opts)
		if err != nil {
			lastErr = err
			warnings = append(warnings, fmt.Sprintf("%s failed: %s", s.Name(), ErrorMessage(err)))
			continue
		}
		result.Warnings = append(append([]string{}, warnings...), result.Warnings...)
		return result, nil
	}

	return nil, Errorf(EEXHAUSTED, "all extraction strategies failed: %s; last error: %s",
		strings.Join(warnings, "; "), ErrorMessage(lastErr))
}

// runStrategy executes a single strategy attempt, applying the per-attempt
// timeout and recovering panics from parsing libraries so a misbehaving
// strategy degrades into a chain warning instead of crashing the call.
func runStrategy(ctx context.Context, s Strategy, data []byte, opts ExtractionOptions) (*Result, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	type outcome struct {
		result *Result
		err    error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: Errorf(EINTERNAL, "strategy panicked: %v", r)}
			}
		}()
		result, err := s.Extract(ctx, data, opts)
		if err == nil && result == nil {
			err = Errorf(EINTERNAL, "strategy returned no result")
		}
		ch <- outcome{result: result, err: err}
	}()

	select {
	case out := <-ch:
		return out.result, out.err
	case <-ctx.Done():
		return nil, Errorf(EINTERNAL, "strategy aborted: %v", ctx.Err())
	}
}
