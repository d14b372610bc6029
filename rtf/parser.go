// Package rtf extracts text from Rich Text Format documents by stripping
// control words and group braces from the token stream.
package rtf

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/fwojciec/doctext"
)

// Ensure Parser implements doctext.Strategy at compile time.
var _ doctext.Strategy = (*Parser)(nil)

// Parser strips RTF control structures, leaving the document text.
// Deeply formatted documents can leave artifacts behind; results scoring
// below lowConfidence carry a warning to that effect.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns the strategy identifier.
func (p *Parser) Name() string { return "rtf-strip" }

// lowConfidence is the score below which the incomplete-parsing warning is
// attached.
const lowConfidence = 0.6

// Placeholders protect escaped literals from the brace and control-word
// strips below. Chosen from the C0 range, which never survives
// normalization anyway.
const (
	placeholderOpenBrace  = "\x01"
	placeholderCloseBrace = "\x02"
	placeholderBackslash  = "\x03"
)

var (
	breakControls = regexp.MustCompile(`\\(?:par|line)\b`)
	tabControls   = regexp.MustCompile(`\\tab\b`)
	hexEscapes    = regexp.MustCompile(`\\'([0-9a-fA-F]{2})`)

	// Control words with optional numeric parameter and trailing space,
	// e.g. \fs24, \f0, \rtf1, \pard.
	controlWords = regexp.MustCompile(`\\[a-zA-Z]+-?\d* ?`)

	// Standalone control escapes such as \* and \~.
	controlEscapes = regexp.MustCompile(`\\[^a-zA-Z]`)

	groupBraces = regexp.MustCompile(`[{}]`)
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
)

// Extract strips the RTF header, control words, control escapes, and group
// braces, translating paragraph and tab controls to their literal
// characters.
func (p *Parser) Extract(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
	text := string(data)
	if !strings.HasPrefix(text, `{\rtf`) {
		return nil, fmt.Errorf(`missing {\rtf header`)
	}

	text = strings.ReplaceAll(text, `\\`, placeholderBackslash)
	text = strings.ReplaceAll(text, `\{`, placeholderOpenBrace)
	text = strings.ReplaceAll(text, `\}`, placeholderCloseBrace)

	text = breakControls.ReplaceAllString(text, "\n")
	text = tabControls.ReplaceAllString(text, "\t")
	text = hexEscapes.ReplaceAllStringFunc(text, decodeHexEscape)

	text = controlWords.ReplaceAllString(text, "")
	text = controlEscapes.ReplaceAllString(text, "")
	text = groupBraces.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, placeholderBackslash, `\`)
	text = strings.ReplaceAll(text, placeholderOpenBrace, "{")
	text = strings.ReplaceAll(text, placeholderCloseBrace, "}")

	text = spaceRuns.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	confidence := doctext.TextConfidence(text)
	var warnings []string
	if confidence < lowConfidence {
		warnings = append(warnings, "RTF parsing may be incomplete - complex formatting detected")
	}

	return &doctext.Result{
		Text:       text,
		Confidence: confidence,
		Method:     p.Name(),
		Warnings:   warnings,
	}, nil
}

// decodeHexEscape resolves a \'hh escape through the Windows-1252 code
// page, the de facto default for RTF produced by word processors.
func decodeHexEscape(escape string) string {
	b, err := strconv.ParseUint(escape[2:], 16, 8)
	if err != nil {
		return ""
	}
	return string(charmap.Windows1252.DecodeByte(byte(b)))
}
