package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/doctext"
	"github.com/fwojciec/doctext/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor doctext.Extractor
	Pool      *pipeline.Pool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log extraction details to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract text from a document"`
	Batch   BatchCmd   `cmd:"" help:"Extract text from multiple documents concurrently"`
	Formats FormatsCmd `cmd:"" help:"List supported document formats"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Path       string        `arg:"" help:"Document path"`
	Mime       string        `short:"m" help:"Declared MIME type (defaults to extension-based dispatch)"`
	JSON       bool          `short:"j" help:"Emit the result and quality report as JSON"`
	Raw        bool          `help:"Preserve original formatting (skip normalization)"`
	NoFallback bool          `help:"Disable content sniffing and multi-strategy fallback"`
	Timeout    time.Duration `default:"30s" help:"Per-strategy deadline"`
	Retries    int           `default:"3" help:"Maximum strategies attempted (0 = unlimited)"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Paths       []string `arg:"" help:"Document paths"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
	RPS         float64  `help:"Throttle extractions per second (0 = unlimited)"`
	JSON        bool     `short:"j" help:"Emit results as JSON lines"`
}

// FormatsCmd is the "formats" subcommand.
type FormatsCmd struct{}

// options builds ExtractionOptions from the extract command's flags.
func (c *ExtractCmd) options() doctext.ExtractionOptions {
	return doctext.ExtractionOptions{
		FallbackStrategies: !c.NoFallback,
		MaxRetries:         c.Retries,
		Timeout:            c.Timeout,
		PreserveFormatting: c.Raw,
		ExtractMetadata:    true,
	}
}
