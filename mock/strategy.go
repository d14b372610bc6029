package mock

import (
	"context"

	"github.com/fwojciec/doctext"
)

var _ doctext.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of doctext.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Extract(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
	return s.ExtractFn(ctx, data, opts)
}
