// Package docx extracts text from Word documents by reading the main
// document part of the .docx archive with github.com/beevik/etree.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/fwojciec/doctext"
)

// Ensure Parser implements doctext.Strategy at compile time.
var _ doctext.Strategy = (*Parser)(nil)

// Parser extracts text from word/document.xml inside a .docx archive.
// Legacy binary .doc files are not ZIP archives and fail here, exhausting
// the single-strategy Word chain.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns the strategy identifier.
func (p *Parser) Name() string { return "docx-xml" }

// documentPart is the main document part of a .docx archive.
const documentPart = "word/document.xml"

// Extract opens the archive, parses the document XML, and joins the text
// runs of each paragraph with newlines.
func (p *Parser) Extract(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%s not found in archive", documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", documentPart, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentPart, err)
	}

	var parserWarnings []string
	paragraphs := doc.FindElements("//p")
	if len(paragraphs) == 0 {
		parserWarnings = append(parserWarnings, "Document body has no paragraphs - extracting loose text runs")
	}

	var sb strings.Builder
	if len(paragraphs) > 0 {
		for _, para := range paragraphs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			var line strings.Builder
			for _, t := range para.FindElements(".//t") {
				line.WriteString(t.Text())
			}
			if line.Len() > 0 {
				sb.WriteString(line.String())
				sb.WriteString("\n")
			}
		}
	} else {
		for _, t := range doc.FindElements("//t") {
			sb.WriteString(t.Text())
			sb.WriteString("\n")
		}
	}

	text := strings.TrimSpace(sb.String())
	warnings := parserWarnings
	if len([]rune(text)) < 20 {
		warnings = append(warnings, "Very little text extracted - document may be mostly images")
	}

	return &doctext.Result{
		Text:       text,
		Confidence: doctext.WordConfidence(text, len(parserWarnings)),
		Method:     p.Name(),
		Warnings:   warnings,
	}, nil
}
