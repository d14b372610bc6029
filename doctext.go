// Package doctext extracts best-effort plain text from uploaded documents
// (resumes, job descriptions, etc.) supplied as raw bytes plus a declared
// MIME type. Each extraction is annotated with a confidence score and a
// machine-checkable quality report so downstream consumers can decide
// whether to accept, warn, or reject the result.
//
// This package contains domain types, interfaces, and pure domain logic
// (format dispatch, strategy chain execution, confidence heuristics, text
// normalization, quality validation) following Ben Johnson's Standard
// Package Layout. Implementations live in subdirectories named after their
// primary dependency or concern (e.g., pdf/, docx/, goquery/, pipeline/).
package doctext
