package doctext

import (
	"regexp"
	"strings"
)

// garbledPattern matches characters outside the "normal" set of letters,
// digits, whitespace, and basic punctuation. A high density of such
// characters is a corruption/OCR-noise signal.
var garbledPattern = regexp.MustCompile(`[^a-zA-Z0-9\s\-.,!?@()\[\]{}:;"'/\\]`)

// sentenceDelimiters splits text into sentence fragments.
var sentenceDelimiters = regexp.MustCompile(`[.!?]+`)

// clampConfidence bounds a confidence score to [0.1, 1.0].
func clampConfidence(c float64) float64 {
	if c < 0.1 {
		return 0.1
	}
	if c > 1.0 {
		return 1.0
	}
	return c
}

// GarbledRatio returns the fraction of characters in text falling outside
// the normal character set. Returns 0 for empty text.
func GarbledRatio(text string) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	matches := garbledPattern.FindAllString(text, -1)
	return float64(len(matches)) / float64(len(runes))
}

// sentenceFragments returns the sentence fragments in text whose trimmed
// length exceeds minLen runes.
func sentenceFragments(text string, minLen int) int {
	count := 0
	for _, part := range sentenceDelimiters.Split(text, -1) {
		if len([]rune(strings.TrimSpace(part))) > minLen {
			count++
		}
	}
	return count
}

// TextConfidence computes a generic [0.1, 1.0] confidence for arbitrary
// decoded text from simple statistics: mean word length, the presence of
// sentence structure, and the garbled-character ratio. Texts shorter than
// 10 characters short-circuit to 0.1.
func TextConfidence(text string) float64 {
	if len([]rune(text)) < 10 {
		return 0.1
	}

	confidence := 0.7

	words := strings.Fields(text)
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += len([]rune(w))
		}
		mean := float64(total) / float64(len(words))
		if mean > 2 && mean < 15 {
			confidence += 0.1
		}
	}

	if sentenceFragments(text, 5) > 0 {
		confidence += 0.1
	}

	if GarbledRatio(text) > 0.2 {
		confidence -= 0.3
	}

	return clampConfidence(confidence)
}

// PDFConfidence scores text produced by a structural PDF parse. Sparse
// pages suggest an image-only PDF; dense pages and a low garbled ratio
// suggest a clean text layer.
func PDFConfidence(text string, pages int) float64 {
	confidence := 0.8

	if pages > 0 {
		wordsPerPage := float64(len(strings.Fields(text))) / float64(pages)
		if wordsPerPage < 10 {
			confidence -= 0.3
		}
		if wordsPerPage > 200 {
			confidence += 0.1
		}
	}

	if GarbledRatio(text) > 0.1 {
		confidence -= 0.2
	}

	return clampConfidence(confidence)
}

// WordConfidence scores text produced by a Word document parse.
// parserWarnings is the number of warnings the parser emitted.
func WordConfidence(text string, parserWarnings int) float64 {
	confidence := 0.9

	if parserWarnings > 0 {
		confidence -= 0.1
	}
	if len([]rune(text)) < 100 {
		confidence -= 0.3
	}
	if GarbledRatio(text) > 0.05 {
		confidence -= 0.2
	}

	return clampConfidence(confidence)
}
