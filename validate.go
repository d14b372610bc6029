package doctext

import "strings"

// Validation issue messages. Presented verbatim to end users, so they are
// phrased as actionable guidance rather than internals.
const (
	issueNoText       = "No text was extracted from the file"
	issueVeryLittle   = "Very little text extracted - file may be corrupted or contain mostly images"
	issueLimitedText  = "Limited text extracted - may be a brief document"
	issueLowConf      = "Low extraction confidence - text may be severely corrupted"
	issueModerateConf = "Moderate extraction confidence - some text may be inaccurate"
	issueFewWords     = "Too few words extracted - file may not contain readable text"
	issueGarbled      = "Text may be garbled or corrupted"
	issueRepeated     = "Repeated character patterns detected - possible OCR errors"
	issueNoSentences  = "No proper sentence structure detected - text may be fragmented"
)

// Validate inspects an extraction result and produces a quality report.
// It is a pure function: the result is never mutated, and identical inputs
// always yield identical reports.
func Validate(result *Result) Report {
	text := strings.TrimSpace(result.Text)
	if text == "" {
		return Report{Issues: []string{issueNoText}, Score: 0}
	}

	issues := []string{}
	score := 100

	length := len([]rune(text))
	switch {
	case length < 50:
		score -= 30
		issues = append(issues, issueVeryLittle)
	case length < 200:
		score -= 10
		issues = append(issues, issueLimitedText)
	}

	switch {
	case result.Confidence < 0.3:
		score -= 40
		issues = append(issues, issueLowConf)
	case result.Confidence < 0.6:
		score -= 20
		issues = append(issues, issueModerateConf)
	}

	words := strings.Fields(text)
	if len(words) < 10 {
		score -= 25
		issues = append(issues, issueFewWords)
	}

	garbled := len(garbledPattern.FindAllString(text, -1))
	if float64(garbled) > 0.1*float64(len(words)) {
		score -= 15
		issues = append(issues, issueGarbled)
	}

	if repeatedCharRuns(text) > 3 {
		score -= 10
		issues = append(issues, issueRepeated)
	}

	if len(words) > 20 && sentenceFragments(text, 10) == 0 {
		score -= 15
		issues = append(issues, issueNoSentences)
	}

	if score < 0 {
		score = 0
	}

	return Report{
		IsValid: score >= 50 && len(issues) < 3,
		Issues:  issues,
		Score:   score,
	}
}

// repeatedCharRuns counts runs of a single character repeated six or more
// times consecutively.
func repeatedCharRuns(text string) int {
	runs := 0
	var prev rune
	length := 0
	for _, r := range text {
		if r == prev {
			length++
			if length == 6 {
				runs++
			}
			continue
		}
		prev = r
		length = 1
	}
	return runs
}
