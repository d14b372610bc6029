// Package pipeline composes the extraction subsystem: format dispatch,
// per-format strategy chains, text normalization, and quality validation.
// It also provides a bounded worker pool for running CPU-heavy extractions
// off request-handling goroutines.
package pipeline

import (
	"context"
	"strings"

	"github.com/fwojciec/doctext"
	"github.com/fwojciec/doctext/docx"
	htmlstrip "github.com/fwojciec/doctext/goquery"
	"github.com/fwojciec/doctext/pdf"
	"github.com/fwojciec/doctext/plaintext"
	"github.com/fwojciec/doctext/rtf"
)

// Ensure Pipeline implements doctext.Extractor at compile time.
var _ doctext.Extractor = (*Pipeline)(nil)

// Pipeline implements the full extraction contract. It holds no mutable
// state across calls: every extraction is a pure function of its input
// bytes and options, so a single Pipeline is safe for concurrent use.
type Pipeline struct {
	chains map[doctext.Format][]doctext.Strategy

	// zipFallback rescues sniffed ZIP archives that turn out not to be
	// Word documents.
	zipFallback doctext.Strategy
}

// New creates a Pipeline with the default strategy chains for every
// supported format.
func New() *Pipeline {
	textDecoder := plaintext.NewDecoder()
	return &Pipeline{
		chains: map[doctext.Format][]doctext.Strategy{
			doctext.FormatPDF:       {pdf.NewParser(), pdf.NewStreams(), pdf.NewRawScan()},
			doctext.FormatWord:      {docx.NewParser()},
			doctext.FormatPlainText: {textDecoder},
			doctext.FormatRTF:       {rtf.NewParser()},
			doctext.FormatHTML:      {htmlstrip.NewExtractor()},
		},
		zipFallback: textDecoder,
	}
}

// Register replaces the strategy chain for a format. Strategies run in the
// given order; the first success wins.
func (p *Pipeline) Register(format doctext.Format, strategies ...doctext.Strategy) {
	p.chains[format] = strategies
}

// Extract dispatches the document to its format's strategy chain, then
// normalizes the winning text and attaches a quality report.
func (p *Pipeline) Extract(ctx context.Context, data []byte, mimeType, filename string, opts doctext.ExtractionOptions) (*doctext.Result, *doctext.Report, error) {
	detection, err := doctext.DetectFormat(data, mimeType, filename, opts.FallbackStrategies)
	if err != nil {
		return nil, nil, err
	}

	strategies := p.chains[detection.Format]
	if detection.ZipFallback && p.zipFallback != nil {
		strategies = append(append([]doctext.Strategy{}, strategies...), p.zipFallback)
	}

	result, err := doctext.RunChain(ctx, strategies, data, opts)
	if err != nil {
		return nil, nil, err
	}

	if !opts.PreserveFormatting {
		result.Text = doctext.Normalize(result.Text)
	}

	if opts.ExtractMetadata {
		if result.Metadata == nil {
			result.Metadata = &doctext.Metadata{}
		}
		result.Metadata.Words = len(strings.Fields(result.Text))
		result.Metadata.Characters = len([]rune(result.Text))
	}

	report := doctext.Validate(result)
	return result, &report, nil
}
