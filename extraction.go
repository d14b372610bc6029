package doctext

import (
	"context"
	"time"
)

// ExtractionOptions configures a single extraction call.
type ExtractionOptions struct {
	// FallbackStrategies enables content sniffing when the declared type
	// is absent or unrecognized, and multi-strategy fallback within a
	// format's chain.
	FallbackStrategies bool `json:"fallbackStrategies"`

	// MaxRetries caps the total number of strategies attempted for one
	// call. Zero means no cap. It is not a per-strategy retry count.
	MaxRetries int `json:"maxRetries"`

	// Timeout is the deadline applied to each strategy attempt. A strategy
	// that does not return before the deadline is treated as a failure and
	// the chain advances. Zero means no deadline.
	Timeout time.Duration `json:"timeout"`

	// PreserveFormatting skips text normalization when true.
	PreserveFormatting bool `json:"preserveFormatting"`

	// ExtractMetadata populates Result.Metadata when true.
	ExtractMetadata bool `json:"extractMetadata"`
}

// DefaultOptions returns the options used when the caller has no opinion.
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		FallbackStrategies: true,
		MaxRetries:         3,
		Timeout:            30 * time.Second,
		ExtractMetadata:    true,
	}
}

// Metadata holds optional statistics about an extraction.
type Metadata struct {
	Pages      int    `json:"pages,omitempty"`
	Words      int    `json:"words,omitempty"`
	Characters int    `json:"characters,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Language   string `json:"language,omitempty"`
}

// Result holds the text produced by the winning extraction strategy.
type Result struct {
	// Text is the extracted plain text. Never nil, may be empty.
	Text string `json:"text"`

	// Confidence is a heuristic trust estimate in [0, 1].
	Confidence float64 `json:"confidence"`

	// Method identifies the strategy that produced the text.
	Method string `json:"method"`

	// Warnings accumulated by the chain and the winning strategy, in order.
	Warnings []string `json:"warnings,omitempty"`

	// Metadata is populated when ExtractionOptions.ExtractMetadata is set.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Report is the quality validator's verdict on a Result.
type Report struct {
	// IsValid is true when the score and issue count are within bounds.
	IsValid bool `json:"isValid"`

	// Issues lists human-readable quality problems, in order of detection.
	// Callers should present these verbatim as actionable guidance.
	Issues []string `json:"issues"`

	// Score is a 0-100 quality score, independent of Confidence.
	Score int `json:"score"`
}

// Strategy is a single extraction algorithm for one format. Strategies for
// a format are tried in a fixed priority order by RunChain; the first one
// that returns without error supplies the result.
type Strategy interface {
	// Name returns the strategy identifier recorded in Result.Method.
	Name() string

	// Extract produces text from raw document bytes. A returned error
	// advances the chain to the next strategy.
	Extract(ctx context.Context, data []byte, opts ExtractionOptions) (*Result, error)
}

// Extractor is the full extraction pipeline contract: dispatch, strategy
// chain, normalization, and quality validation.
type Extractor interface {
	// Extract produces text and a quality report from raw document bytes
	// and a declared MIME type. The filename may be empty.
	Extract(ctx context.Context, data []byte, mimeType, filename string, opts ExtractionOptions) (*Result, *Report, error)
}
