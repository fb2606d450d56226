package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/pagescan/internal/model"
)

// SimpleWriter prints the segments of a report as they would be delivered
// to a chat, separated by rules.
type SimpleWriter struct {
	baseWriter

	// verbose adds a section/index header above every segment.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables segment headers.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs every segment of the report.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	for i, seg := range report.Segments {
		if i > 0 {
			sb.WriteString(strings.Repeat("-", 70))
			sb.WriteString("\n")
		}
		if w.verbose {
			fmt.Fprintf(&sb, "[%s %d/%d]\n", seg.Section, seg.Index, seg.Total)
		}
		sb.WriteString(seg.Text)
		if !strings.HasSuffix(seg.Text, "\n") {
			sb.WriteString("\n")
		}
	}

	return w.output.Write([]byte(sb.String()))
}
