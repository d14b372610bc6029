package main

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/time/rate"

	"github.com/fwojciec/doctext/pipeline"
	"github.com/fwojciec/doctext/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("doctext"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'doctext --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Extractor = pipeline.New()
	if cli.Verbose {
		logger := stdslog.New(stdslog.NewTextHandler(stderr, nil))
		deps.Extractor = slog.NewLoggingExtractor(deps.Extractor, logger)
	}

	if cmd == "batch" {
		var limiter *rate.Limiter
		if cli.Batch.RPS > 0 {
			limiter = rate.NewLimiter(rate.Limit(cli.Batch.RPS), 1)
		}
		deps.Pool = pipeline.NewPool(deps.Extractor, cli.Batch.Concurrency, limiter)
	}

	return kongCtx.Run(deps)
}
