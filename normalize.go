package doctext

import (
	"regexp"
	"strings"
)

var (
	horizontalWS = regexp.MustCompile(`[ \t\f\v]+`)
	newlineRuns  = regexp.MustCompile(`\n{3,}`)

	periodRuns   = regexp.MustCompile(`\.{4,}`)
	bangRuns     = regexp.MustCompile(`!{4,}`)
	questionRuns = regexp.MustCompile(`\?{4,}`)

	// OCR and concatenation artifacts: "wordWord" -> "word Word",
	// "50lbs" -> "50 lbs".
	lowerUpperBoundary  = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
	letterDigitBoundary = regexp.MustCompile(`(\p{L})(\p{Nd})`)
	digitLetterBoundary = regexp.MustCompile(`(\p{Nd})(\p{L})`)
)

// Normalize cleans raw extracted text: strips null bytes, inserts spaces at
// case and letter/digit boundaries, caps runs of terminal punctuation at
// three characters, collapses horizontal whitespace to single spaces, and
// collapses three or more consecutive newlines to exactly two.
//
// Normalize is idempotent: applying it to its own output is a no-op.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = lowerUpperBoundary.ReplaceAllString(text, "$1 $2")
	text = letterDigitBoundary.ReplaceAllString(text, "$1 $2")
	text = digitLetterBoundary.ReplaceAllString(text, "$1 $2")

	text = periodRuns.ReplaceAllString(text, "...")
	text = bangRuns.ReplaceAllString(text, "!!!")
	text = questionRuns.ReplaceAllString(text, "???")

	text = horizontalWS.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
