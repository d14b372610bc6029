// Package slog provides logging decorators for doctext interfaces.
package slog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/fwojciec/doctext"
)

// Ensure LoggingExtractor implements doctext.Extractor.
var _ doctext.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with structured logging. Inputs are
// identified by an xxhash digest of the document bytes so repeated uploads
// of the same document correlate across log lines without logging content.
type LoggingExtractor struct {
	next   doctext.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next doctext.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor, logging the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, data []byte, mimeType, filename string, opts doctext.ExtractionOptions) (*doctext.Result, *doctext.Report, error) {
	begin := time.Now()
	digest := fmt.Sprintf("%016x", xxhash.Sum64(data))

	result, report, err := e.next.Extract(ctx, data, mimeType, filename, opts)
	if err != nil {
		e.logger.Error("extraction failed",
			"digest", digest,
			"mimeType", mimeType,
			"filename", filename,
			"code", doctext.ErrorCode(err),
			"duration", time.Since(begin),
		)
		return nil, nil, err
	}

	e.logger.Info("extraction completed",
		"digest", digest,
		"mimeType", mimeType,
		"filename", filename,
		"method", result.Method,
		"confidence", result.Confidence,
		"score", report.Score,
		"valid", report.IsValid,
		"warnings", len(result.Warnings),
		"duration", time.Since(begin),
	)
	return result, report, nil
}
