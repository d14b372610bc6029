package mock

import (
	"context"

	"github.com/fwojciec/doctext"
)

var _ doctext.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of doctext.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, data []byte, mimeType, filename string, opts doctext.ExtractionOptions) (*doctext.Result, *doctext.Report, error)
}

func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType, filename string, opts doctext.ExtractionOptions) (*doctext.Result, *doctext.Report, error) {
	return e.ExtractFn(ctx, data, mimeType, filename, opts)
}
