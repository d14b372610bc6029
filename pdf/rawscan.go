package pdf

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/doctext"
)

// Ensure RawScan implements doctext.Strategy at compile time.
var _ doctext.Strategy = (*RawScan)(nil)

// RawScan is the last-resort strategy: a regex scan of the raw bytes for
// parenthesized literal strings typical of text-show operators. It only
// works on PDFs with uncompressed content, and refuses to return results
// shorter than minRawText characters so that garbage does not masquerade
// as a successful extraction.
type RawScan struct{}

// NewRawScan creates a new RawScan strategy.
func NewRawScan() *RawScan {
	return &RawScan{}
}

// Name returns the strategy identifier.
func (r *RawScan) Name() string { return "pdf-raw-scan" }

// minRawText is the minimum recovered length for a raw scan to count as a
// success.
const minRawText = 50

var literalPattern = regexp.MustCompile(`\(((?:\\.|[^\\()])+)\)`)

// Extract concatenates every parenthesized literal found in the file.
func (r *RawScan) Extract(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
	var parts []string
	for _, m := range literalPattern.FindAllSubmatch(data, -1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if literal := unescapeLiteral(string(m[1])); literal != "" {
			parts = append(parts, literal)
		}
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	if len([]rune(text)) < minRawText {
		return nil, fmt.Errorf("raw scan recovered only %d characters", len([]rune(text)))
	}

	return &doctext.Result{
		Text:       text,
		Confidence: 0.4,
		Method:     r.Name(),
		Warnings:   []string{"Used raw PDF text extraction - quality may be poor"},
	}, nil
}
