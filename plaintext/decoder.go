// Package plaintext extracts text from plain-text buffers by searching for
// the best candidate encoding with golang.org/x/text.
package plaintext

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/fwojciec/doctext"
)

// Ensure Decoder implements doctext.Strategy at compile time.
var _ doctext.Strategy = (*Decoder)(nil)

// Decoder tries candidate encodings in a fixed priority order, decoding
// each strictly (invalid byte sequences fail the candidate rather than
// producing replacement characters) and keeping the best-scoring decoded
// text. Returns EENCODING when no candidate reaches the minimum
// confidence.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Name returns the strategy identifier.
func (d *Decoder) Name() string { return "text-decode" }

// minEncodingConfidence is the threshold below which the encoding search
// is considered undetermined.
const minEncodingConfidence = 0.5

// candidate is one encoding attempt: a name plus a strict decode function.
type candidate struct {
	name   string
	decode func(data []byte) (string, error)
}

var candidates = []candidate{
	{"utf-8", decodeUTF8},
	{"utf-16", decodeUTF16},
	{"utf-16le", decodeUTF16LE},
	{"iso-8859-1", decodeISO8859},
	{"windows-1252", decodeWindows1252},
}

// Extract decodes the buffer with each candidate encoding and returns the
// best-scoring text.
func (d *Decoder) Extract(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
	bestConfidence := -1.0
	var bestText, bestEncoding string

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := c.decode(data)
		if err != nil {
			continue
		}
		if confidence := doctext.TextConfidence(text); confidence > bestConfidence {
			bestConfidence = confidence
			bestText = text
			bestEncoding = c.name
		}
	}

	if bestConfidence < minEncodingConfidence {
		return nil, doctext.Errorf(doctext.EENCODING,
			"unable to determine text encoding with sufficient confidence")
	}

	var warnings []string
	if bestEncoding != "utf-8" {
		warnings = append(warnings, fmt.Sprintf("Text decoded as %s", bestEncoding))
	}

	result := &doctext.Result{
		Text:       bestText,
		Confidence: bestConfidence,
		Method:     d.Name(),
		Warnings:   warnings,
	}
	if opts.ExtractMetadata {
		result.Metadata = &doctext.Metadata{Encoding: bestEncoding}
	}
	return result, nil
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("utf-8: invalid byte sequence")
	}
	return string(data), nil
}

func decodeUTF16(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("utf-16: odd byte length")
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("utf-16: %w", err)
	}
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", fmt.Errorf("utf-16: invalid surrogate sequence")
	}
	return string(out), nil
}

// decodeUTF16LE handles BOM-less little-endian buffers, which Windows
// tooling emits routinely. Without a BOM the only signal is the byte
// pattern itself: mostly-Latin UTF-16LE text carries NUL high bytes at odd
// offsets, so that shape is required before decoding.
func decodeUTF16LE(data []byte) (string, error) {
	if len(data) < 4 || len(data)%2 != 0 {
		return "", fmt.Errorf("utf-16le: buffer too short or odd length")
	}
	if data[0] == 0xFF && data[1] == 0xFE {
		return "", fmt.Errorf("utf-16le: byte order mark present")
	}
	nuls := 0
	for i := 1; i < len(data); i += 2 {
		if data[i] == 0x00 {
			nuls++
		}
	}
	if float64(nuls) < 0.4*float64(len(data)/2) {
		return "", fmt.Errorf("utf-16le: no high-byte NUL pattern")
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("utf-16le: %w", err)
	}
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", fmt.Errorf("utf-16le: invalid surrogate sequence")
	}
	return string(out), nil
}

func decodeISO8859(data []byte) (string, error) {
	var sb strings.Builder
	for _, b := range data {
		// 0x80-0x9F is the undefined C1 control range in ISO-8859-1.
		if b >= 0x80 && b <= 0x9F {
			return "", fmt.Errorf("iso-8859-1: invalid byte 0x%02X", b)
		}
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(b))
	}
	return sb.String(), nil
}

func decodeWindows1252(data []byte) (string, error) {
	var sb strings.Builder
	for _, b := range data {
		r := charmap.Windows1252.DecodeByte(b)
		if r == utf8.RuneError {
			return "", fmt.Errorf("windows-1252: invalid byte 0x%02X", b)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
