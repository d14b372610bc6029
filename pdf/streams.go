package pdf

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/doctext"
)

// Ensure Streams implements doctext.Strategy at compile time.
var _ doctext.Strategy = (*Streams)(nil)

// Streams is the structural fallback strategy: it locates raw content
// streams in the file, inflates them, and collects the literal strings of
// text-showing operators without a full structural parse. Results carry a
// fixed 0.6 confidence and a fallback warning.
type Streams struct{}

// NewStreams creates a new Streams strategy.
func NewStreams() *Streams {
	return &Streams{}
}

// Name returns the strategy identifier.
func (s *Streams) Name() string { return "pdf-streams" }

var (
	streamPattern = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)

	// Literal strings fed to the Tj/TJ text-showing operators.
	textShowPattern = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*T[jJ]`)
)

// Extract scans the file for content streams and pulls text operators out
// of any that inflate successfully.
func (s *Streams) Extract(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
	var parts []string

	for _, match := range streamPattern.FindAllSubmatch(data, -1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content := inflate(match[1])
		for _, m := range textShowPattern.FindAllSubmatch(content, -1) {
			if literal := unescapeLiteral(string(m[1])); literal != "" {
				parts = append(parts, literal)
			}
		}
	}

	// Uncompressed PDFs keep operators outside recognizable streams too.
	if len(parts) == 0 {
		for _, m := range textShowPattern.FindAllSubmatch(data, -1) {
			if literal := unescapeLiteral(string(m[1])); literal != "" {
				parts = append(parts, literal)
			}
		}
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("no text operators found in content streams")
	}

	return &doctext.Result{
		Text:       strings.TrimSpace(strings.Join(parts, " ")),
		Confidence: 0.6,
		Method:     s.Name(),
		Warnings:   []string{"Used fallback PDF extraction method"},
	}, nil
}

// inflate decompresses a FlateDecode stream body. PDF writers emit zlib
// framing most of the time, raw deflate occasionally; plain text streams
// pass through unchanged.
func inflate(raw []byte) []byte {
	if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
		if out, err := io.ReadAll(zr); err == nil {
			return out
		}
	}
	fr := flate.NewReader(bytes.NewReader(raw))
	if out, err := io.ReadAll(fr); err == nil && len(out) > 0 {
		return out
	}
	return raw
}

// unescapeLiteral resolves the escape sequences of a PDF literal string.
func unescapeLiteral(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '(', ')', '\\':
			sb.WriteByte(s[i])
		default:
			sb.WriteByte(s[i])
		}
	}
	return strings.TrimSpace(sb.String())
}
