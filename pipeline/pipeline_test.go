package pipeline_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/doctext"
	"github.com/fwojciec/doctext/mock"
	"github.com/fwojciec/doctext/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Extract(t *testing.T) {
	t.Parallel()

	t.Run("plain text end to end", func(t *testing.T) {
		t.Parallel()

		data := []byte("A short but complete resume document. It describes work history in full sentences and runs long enough to validate cleanly against every quality check we apply.")

		p := pipeline.New()
		result, report, err := p.Extract(context.Background(), data, "text/plain", "resume.txt", doctext.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, "text-decode", result.Method)
		assert.Equal(t, string(data), result.Text)
		assert.True(t, report.IsValid)
		assert.Empty(t, report.Issues)
		require.NotNil(t, result.Metadata)
		assert.Equal(t, len([]rune(result.Text)), result.Metadata.Characters)
		assert.Positive(t, result.Metadata.Words)
	})

	t.Run("html end to end", func(t *testing.T) {
		t.Parallel()

		data := []byte(`<html><head><script>ignore();</script></head><body>
<p>Profile of a staff engineer who has led several infrastructure teams.</p>
<p>Deep experience with storage systems and developer tooling at scale.</p>
</body></html>`)

		p := pipeline.New()
		result, report, err := p.Extract(context.Background(), data, "text/html", "profile.html", doctext.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, "html-strip", result.Method)
		assert.Contains(t, result.Text, "staff engineer")
		assert.NotContains(t, result.Text, "ignore()")
		assert.Contains(t, result.Warnings, "HTML content converted to plain text")
		assert.NotNil(t, report)
	})

	t.Run("same input yields the same output", func(t *testing.T) {
		t.Parallel()

		data := []byte("Deterministic extraction means repeated calls agree on every field. This sentence exists to make the sample long enough to score well.")

		p := pipeline.New()
		first, firstReport, err := p.Extract(context.Background(), data, "text/plain", "a.txt", doctext.DefaultOptions())
		require.NoError(t, err)
		second, secondReport, err := p.Extract(context.Background(), data, "text/plain", "a.txt", doctext.DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, firstReport, secondReport)
	})

	t.Run("registered chain falls back on failure", func(t *testing.T) {
		t.Parallel()

		failing := &mock.Strategy{
			NameFn: func() string { return "primary" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				return nil, doctext.Errorf(doctext.EINTERNAL, "structure damaged")
			},
		}
		rescue := &mock.Strategy{
			NameFn: func() string { return "rescue" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				return &doctext.Result{
					Text:       "Recovered by the second strategy in the chain. Enough words to validate well and pass every check here.",
					Confidence: 0.8,
					Method:     "rescue",
				}, nil
			},
		}

		p := pipeline.New()
		p.Register(doctext.FormatPDF, failing, rescue)

		result, _, err := p.Extract(context.Background(), []byte("%PDF-1.4 whatever"), "application/pdf", "cv.pdf", doctext.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, "rescue", result.Method)
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "primary failed")
	})

	t.Run("fallback disabled stops at the first strategy", func(t *testing.T) {
		t.Parallel()

		calls := 0
		failing := &mock.Strategy{
			NameFn: func() string { return "primary" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				calls++
				return nil, doctext.Errorf(doctext.EINTERNAL, "structure damaged")
			},
		}
		rescueCalled := false
		rescue := &mock.Strategy{
			NameFn: func() string { return "rescue" },
			ExtractFn: func(ctx context.Context, data []byte, opts doctext.ExtractionOptions) (*doctext.Result, error) {
				rescueCalled = true
				return &doctext.Result{Text: "should not happen", Confidence: 1, Method: "rescue"}, nil
			},
		}

		p := pipeline.New()
		p.Register(doctext.FormatPDF, failing, rescue)

		// The MIME type is declared, so dispatch works without sniffing.
		opts := doctext.DefaultOptions()
		opts.FallbackStrategies = false

		_, _, err := p.Extract(context.Background(), []byte("%PDF-1.4"), "application/pdf", "cv.pdf", opts)

		require.Error(t, err)
		assert.Equal(t, doctext.EEXHAUSTED, doctext.ErrorCode(err))
		assert.Equal(t, 1, calls)
		assert.False(t, rescueCalled)
	})

	t.Run("sniffed zip that is not word falls back to text decoding", func(t *testing.T) {
		t.Parallel()

		// A real zip archive with a plain-text member but no Word document
		// part. Sniffing sees PK and routes it to the Word chain first.
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("notes.txt")
		require.NoError(t, err)
		_, err = w.Write([]byte("plain notes"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		p := pipeline.New()
		result, _, err := p.Extract(context.Background(), buf.Bytes(), "", "", doctext.DefaultOptions())

		// The docx parser fails and the zip rescue decoder takes over. The
		// raw archive bytes rarely decode to confident text, so either a
		// decoded result or an exhausted chain is acceptable; what matters
		// is that the rescue ran instead of dispatch failing outright.
		if err != nil {
			assert.Equal(t, doctext.EEXHAUSTED, doctext.ErrorCode(err))
		} else {
			assert.NotEmpty(t, result.Text)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()

		p := pipeline.New()
		_, _, err := p.Extract(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png", "photo.png", doctext.DefaultOptions())

		require.Error(t, err)
		assert.Equal(t, doctext.EUNSUPPORTED, doctext.ErrorCode(err))
	})

	t.Run("preserve formatting skips normalization", func(t *testing.T) {
		t.Parallel()

		data := []byte("keeps    internal   runs of spaces when asked to preserve them exactly")

		p := pipeline.New()
		opts := doctext.DefaultOptions()
		opts.PreserveFormatting = true

		result, _, err := p.Extract(context.Background(), data, "text/plain", "raw.txt", opts)

		require.NoError(t, err)
		assert.Equal(t, string(data), result.Text)

		opts.PreserveFormatting = false
		normalized, _, err := p.Extract(context.Background(), data, "text/plain", "raw.txt", opts)

		require.NoError(t, err)
		assert.NotContains(t, normalized.Text, "    ")
	})

	t.Run("metadata disabled leaves counts unset", func(t *testing.T) {
		t.Parallel()

		data := []byte("Reasonably sized sample text used for checking the metadata toggle behavior of the extraction entry point.")

		p := pipeline.New()
		opts := doctext.DefaultOptions()
		opts.ExtractMetadata = false

		result, _, err := p.Extract(context.Background(), data, "text/plain", "x.txt", opts)

		require.NoError(t, err)
		assert.Nil(t, result.Metadata)
	})
}
