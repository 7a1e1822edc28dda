// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tty

import (
	"io"
	"slices"
)

// Sink receives the lines written by a Tty computation.
// The interpreter is single-threaded; a Sink need not be safe for
// concurrent use, but it must not be mutated from outside during a run.
type Sink interface {
	WriteLine(text string) error
}

// Recorder is an in-memory Sink that keeps lines in write order.
// The zero value is ready to use.
type Recorder struct {
	lines []string
}

// WriteLine implements Sink.
func (r *Recorder) WriteLine(text string) error {
	r.lines = append(r.lines, text)
	return nil
}

// Lines returns a copy of the recorded lines.
func (r *Recorder) Lines() []string {
	return slices.Clone(r.lines)
}

// Reset forgets the recorded lines.
func (r *Recorder) Reset() {
	r.lines = r.lines[:0]
}

// WriterSink writes each line, newline-terminated, to an io.Writer.
type WriterSink struct {
	w      io.Writer
	prefix string
}

// SinkOption configures a WriterSink.
type SinkOption func(*WriterSink)

// WithPrefix prepends prefix to every line.
func WithPrefix(prefix string) SinkOption {
	return func(s *WriterSink) { s.prefix = prefix }
}

// NewWriterSink creates a Sink over w.
func NewWriterSink(w io.Writer, opts ...SinkOption) *WriterSink {
	s := &WriterSink{w: w}
	for _, o := range opts {
		o(s)
	}
	return s
}

// WriteLine implements Sink.
func (s *WriterSink) WriteLine(text string) error {
	_, err := io.WriteString(s.w, s.prefix+text+"\n")
	return err
}
