package doctext_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/doctext"
	"github.com/fwojciec/doctext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func succeeding(name string, result *doctext.Result) *mock.Strategy {
	return &mock.Strategy{
		NameFn: func() string { return name },
		ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
			return result, nil
		},
	}
}

func failing(name, message string) *mock.Strategy {
	return &mock.Strategy{
		NameFn: func() string { return name },
		ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
			return nil, errors.New(message)
		},
	}
}

func TestRunChain(t *testing.T) {
	t.Parallel()

	t.Run("first success wins", func(t *testing.T) {
		t.Parallel()

		want := &doctext.Result{Text: "extracted text", Confidence: 0.8, Method: "primary"}
		var secondCalled bool
		second := &mock.Strategy{
			NameFn: func() string { return "second" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				secondCalled = true
				return nil, errors.New("unreachable")
			},
		}

		result, err := doctext.RunChain(context.Background(),
			[]doctext.Strategy{succeeding("primary", want), second},
			[]byte("data"), doctext.ExtractionOptions{})

		require.NoError(t, err)
		assert.Equal(t, "extracted text", result.Text)
		assert.Equal(t, "primary", result.Method)
		assert.False(t, secondCalled)
	})

	t.Run("failure advances and records a warning", func(t *testing.T) {
		t.Parallel()

		fallback := &doctext.Result{
			Text:       "fallback text",
			Confidence: 0.6,
			Method:     "fallback",
			Warnings:   []string{"Used fallback PDF extraction method"},
		}

		result, err := doctext.RunChain(context.Background(),
			[]doctext.Strategy{failing("primary", "parse error"), succeeding("fallback", fallback)},
			[]byte("data"), doctext.ExtractionOptions{FallbackStrategies: true})

		require.NoError(t, err)
		assert.Equal(t, "fallback", result.Method)
		require.Len(t, result.Warnings, 2)
		assert.Equal(t, "primary failed: parse error", result.Warnings[0])
		assert.Equal(t, "Used fallback PDF extraction method", result.Warnings[1])
	})

	t.Run("low confidence does not trigger fallback", func(t *testing.T) {
		t.Parallel()

		var secondCalled bool
		second := &mock.Strategy{
			NameFn: func() string { return "second" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				secondCalled = true
				return nil, errors.New("unreachable")
			},
		}

		result, err := doctext.RunChain(context.Background(),
			[]doctext.Strategy{
				succeeding("primary", &doctext.Result{Text: "barely anything", Confidence: 0.15, Method: "primary"}),
				second,
			},
			[]byte("data"), doctext.ExtractionOptions{FallbackStrategies: true})

		require.NoError(t, err)
		assert.Equal(t, 0.15, result.Confidence)
		assert.False(t, secondCalled)
	})

	t.Run("exhaustion aggregates every failure", func(t *testing.T) {
		t.Parallel()

		_, err := doctext.RunChain(context.Background(),
			[]doctext.Strategy{
				failing("one", "first error"),
				failing("two", "second error"),
				failing("three", "third error"),
			},
			[]byte("data"), doctext.ExtractionOptions{FallbackStrategies: true})

		require.Error(t, err)
		assert.Equal(t, doctext.EEXHAUSTED, doctext.ErrorCode(err))
		msg := doctext.ErrorMessage(err)
		assert.Contains(t, msg, "one failed: first error")
		assert.Contains(t, msg, "two failed: second error")
		assert.Contains(t, msg, "three failed: third error")
		assert.Contains(t, msg, "last error: third error")
	})

	t.Run("max retries truncates the chain", func(t *testing.T) {
		t.Parallel()

		var secondCalled bool
		second := &mock.Strategy{
			NameFn: func() string { return "second" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				secondCalled = true
				return &doctext.Result{Text: "text", Confidence: 0.9, Method: "second"}, nil
			},
		}

		_, err := doctext.RunChain(context.Background(),
			[]doctext.Strategy{failing("first", "boom"), second},
			[]byte("data"), doctext.ExtractionOptions{FallbackStrategies: true, MaxRetries: 1})

		assert.Equal(t, doctext.EEXHAUSTED, doctext.ErrorCode(err))
		assert.False(t, secondCalled)
	})

	t.Run("timeout advances the chain like a failure", func(t *testing.T) {
		t.Parallel()

		slow := &mock.Strategy{
			NameFn: func() string { return "slow" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				time.Sleep(500 * time.Millisecond)
				return &doctext.Result{Text: "too late", Confidence: 0.9, Method: "slow"}, nil
			},
		}
		fast := succeeding("fast", &doctext.Result{Text: "fast text", Confidence: 0.8, Method: "fast"})

		result, err := doctext.RunChain(context.Background(),
			[]doctext.Strategy{slow, fast},
			[]byte("data"), doctext.ExtractionOptions{FallbackStrategies: true, Timeout: 20 * time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, "fast", result.Method)
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "slow failed")
	})

	t.Run("panicking strategy degrades into a warning", func(t *testing.T) {
		t.Parallel()

		panicking := &mock.Strategy{
			NameFn: func() string { return "panicking" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				panic("malformed input")
			},
		}
		fast := succeeding("fast", &doctext.Result{Text: "recovered", Confidence: 0.8, Method: "fast"})

		result, err := doctext.RunChain(context.Background(),
			[]doctext.Strategy{panicking, fast},
			[]byte("data"), doctext.ExtractionOptions{FallbackStrategies: true})

		require.NoError(t, err)
		assert.Equal(t, "fast", result.Method)
		assert.Contains(t, result.Warnings[0], "panicking failed")
	})

	t.Run("fallback disabled stops after the first strategy", func(t *testing.T) {
		t.Parallel()

		var secondCalled bool
		second := &mock.Strategy{
			NameFn: func() string { return "second" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				secondCalled = true
				return &doctext.Result{Text: "text", Confidence: 0.9, Method: "second"}, nil
			},
		}

		_, err := doctext.RunChain(context.Background(),
			[]doctext.Strategy{failing("first", "parse error"), second},
			[]byte("data"), doctext.ExtractionOptions{FallbackStrategies: false})

		require.Error(t, err)
		assert.Equal(t, doctext.EEXHAUSTED, doctext.ErrorCode(err))
		assert.Contains(t, doctext.ErrorMessage(err), "first failed: parse error")
		assert.False(t, secondCalled)
	})

	t.Run("empty chain is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := doctext.RunChain(context.Background(), nil, []byte("data"), doctext.ExtractionOptions{})

		assert.Equal(t, doctext.EINVALID, doctext.ErrorCode(err))
	})
}
