package codegen

import (
	"bytes"
	"fmt"
	"strings"
)

// LineWriter is an append-only line builder. Each line is prefixed with
// indent copies of the indent unit; empty lines carry no indentation.
type LineWriter struct {
	buf  bytes.Buffer
	unit string
}

// NewLineWriter returns a writer that indents with unit.
func NewLineWriter(unit string) *LineWriter {
	return &LineWriter{unit: unit}
}

// Line writes one line. format is used verbatim when no args are given, so
// literal braces and percent signs need no escaping.
func (w *LineWriter) Line(indent int, format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	if text == "" {
		w.buf.WriteByte('\n')
		return
	}
	w.buf.WriteString(strings.Repeat(w.unit, indent))
	w.buf.WriteString(text)
	w.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (w *LineWriter) Blank() {
	w.buf.WriteByte('\n')
}

// Bytes returns the accumulated output. The slice aliases the writer's
// buffer until the next write.
func (w *LineWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// String returns the accumulated output.
func (w *LineWriter) String() string {
	return w.buf.String()
}
