// Package pdf provides the PDF extraction strategy chain: a full structural
// parse built on github.com/ledongthuc/pdf, a content-stream operator scan,
// and a last-resort raw byte scan.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/fwojciec/doctext"
)

// Ensure Parser implements doctext.Strategy at compile time.
var _ doctext.Strategy = (*Parser)(nil)

// Parser extracts text with a full structural PDF parse: cross-reference
// table, page tree, and per-page content streams. It is the highest-quality
// strategy and runs first in the chain.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns the strategy identifier.
func (p *Parser) Name() string { return "pdf-parse" }

// Extract parses the document structure and concatenates per-page text.
// The underlying library panics on some malformed PDFs; the chain executor
// recovers those panics and advances to the fallback strategies.
func (p *Parser) Extract(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	pages := reader.NumPage()
	if pages <= 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	result := &doctext.Result{
		Text:       text,
		Confidence: doctext.PDFConfidence(text, pages),
		Method:     p.Name(),
	}
	if opts.ExtractMetadata {
		result.Metadata = &doctext.Metadata{Pages: pages}
	}
	return result, nil
}
