package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/doctext"
	"github.com/fwojciec/doctext/pipeline"
)

// extractionOutput is the JSON shape emitted by the extract command.
type extractionOutput struct {
	Result *doctext.Result `json:"result"`
	Report *doctext.Report `json:"report"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.Path, err)
	}

	result, report, err := deps.Extractor.Extract(deps.Ctx, data, c.Mime, filepath.Base(c.Path), c.options())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", doctext.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(extractionOutput{Result: result, Report: report})
	}

	fmt.Fprintln(deps.Stdout, result.Text)
	fmt.Fprintf(deps.Stderr, "method=%s confidence=%.2f score=%d valid=%t\n",
		result.Method, result.Confidence, report.Score, report.IsValid)
	for _, w := range result.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}
	for _, issue := range report.Issues {
		fmt.Fprintf(deps.Stderr, "issue: %s\n", issue)
	}
	return nil
}

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	jobs := make([]pipeline.Job, 0, len(c.Paths))
	for _, path := range c.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		jobs = append(jobs, pipeline.Job{
			Data:     data,
			Filename: filepath.Base(path),
			Options:  doctext.DefaultOptions(),
		})
	}

	results := deps.Pool.Process(deps.Ctx, jobs)

	failed := 0
	enc := json.NewEncoder(deps.Stdout)
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "%s: %s\n", r.Filename, doctext.ErrorMessage(r.Err))
			continue
		}
		if c.JSON {
			if err := enc.Encode(extractionOutput{Result: r.Result, Report: r.Report}); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  method=%s confidence=%.2f score=%d valid=%t\n",
			r.Filename, r.Result.Method, r.Result.Confidence, r.Report.Score, r.Report.IsValid)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// Run executes the formats command.
func (c *FormatsCmd) Run(deps *Dependencies) error {
	for _, f := range doctext.SupportedFormats() {
		fmt.Fprintln(deps.Stdout, f)
	}
	return nil
}
