// Package goquery extracts plain text from HTML documents using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fwojciec/doctext"
)

// Ensure Extractor implements doctext.Strategy at compile time.
var _ doctext.Strategy = (*Extractor)(nil)

// Extractor converts HTML to plain text. Script and style blocks are
// removed wholesale, including their content; entities are decoded by the
// parser; whitespace is collapsed. The conversion is best-effort and
// always succeeds, carrying an informational warning.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Name returns the strategy identifier.
func (e *Extractor) Name() string { return "html-strip" }

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Extract parses the document, drops script/style subtrees, and gathers
// the remaining text nodes.
func (e *Extractor) Extract(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style").Remove()

	var sb strings.Builder
	for _, n := range doc.Selection.Nodes {
		collectText(n, &sb)
	}

	// &nbsp; decodes to U+00A0, which the ASCII \s class below misses.
	text := strings.ReplaceAll(sb.String(), "\u00a0", " ")
	text = strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))

	return &doctext.Result{
		Text:       text,
		Confidence: doctext.TextConfidence(text),
		Method:     e.Name(),
		Warnings:   []string{"HTML content converted to plain text"},
	}, nil
}

// collectText walks the node tree depth-first, gathering text nodes and
// skipping script/style subtrees that survived removal (e.g. inside
// malformed markup).
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
