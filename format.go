package doctext

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies a supported document format.
type Format string

// Supported formats.
const (
	FormatPDF       Format = "pdf"
	FormatWord      Format = "word"
	FormatPlainText Format = "text"
	FormatRTF       Format = "rtf"
	FormatHTML      Format = "html"
	FormatUnknown   Format = ""
)

// Detection is the outcome of format dispatch.
type Detection struct {
	// Format is the selected format variant.
	Format Format

	// Sniffed is true when the format came from byte-signature sniffing
	// rather than the declared MIME type or filename extension.
	Sniffed bool

	// ZipFallback is true when a ZIP signature was sniffed: the content is
	// attempted as a Word document with a plain-text rescue if that fails.
	ZipFallback bool
}

var formatsByMIME = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatWord,
	"application/msword": FormatWord,
	"text/plain":         FormatPlainText,
	"application/rtf":    FormatRTF,
	"text/rtf":           FormatRTF,
	"text/html":          FormatHTML,
}

var formatsByExt = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatWord,
	".doc":  FormatWord,
	".txt":  FormatPlainText,
	".rtf":  FormatRTF,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// SupportedFormats returns the names of all supported formats.
func SupportedFormats() []string {
	return []string{
		string(FormatPDF),
		string(FormatWord),
		string(FormatPlainText),
		string(FormatRTF),
		string(FormatHTML),
	}
}

// sniffLimit bounds how many leading bytes signature sniffing inspects.
const sniffLimit = 1024

// DetectFormat selects exactly one format for a document. Dispatch is by
// declared MIME type first, then filename extension. When neither matches
// and allowSniff is set, the leading bytes are inspected for well-known
// signatures. Returns EUNSUPPORTED when no format can be determined.
func DetectFormat(data []byte, mimeType, filename string, allowSniff bool) (Detection, error) {
	if f, ok := formatsByMIME[normalizeMIME(mimeType)]; ok {
		return Detection{Format: f}, nil
	}

	if filename != "" {
		ext := strings.ToLower(filepath.Ext(filename))
		if f, ok := formatsByExt[ext]; ok {
			return Detection{Format: f}, nil
		}
	}

	if allowSniff {
		if d, ok := sniffFormat(data); ok {
			return d, nil
		}
	}

	return Detection{}, Errorf(EUNSUPPORTED, "unsupported document format %q; supported formats: %s",
		mimeType, strings.Join(SupportedFormats(), ", "))
}

// normalizeMIME lowercases a MIME type and drops any parameters
// (e.g. "text/plain; charset=utf-8" -> "text/plain").
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// sniffFormat inspects the first 1024 bytes for format signatures.
func sniffFormat(data []byte) (Detection, bool) {
	head := data
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}

	switch {
	case bytes.HasPrefix(head, []byte("%PDF-")):
		return Detection{Format: FormatPDF, Sniffed: true}, true
	case bytes.HasPrefix(head, []byte(`{\rtf`)):
		return Detection{Format: FormatRTF, Sniffed: true}, true
	case bytes.HasPrefix(head, []byte{0x50, 0x4B}):
		// ZIP local-file signature. Most likely a .docx archive, but the
		// caller should fall back to plain text if Word parsing fails.
		return Detection{Format: FormatWord, Sniffed: true, ZipFallback: true}, true
	}

	lower := bytes.ToLower(head)
	if bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<!doctype")) {
		return Detection{Format: FormatHTML, Sniffed: true}, true
	}

	return Detection{}, false
}
