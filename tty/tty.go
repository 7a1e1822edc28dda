// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tty is the sequential output vocabulary: computations that
// write lines to a sink owned by the caller of the interpreter.
package tty

import (
	"fmt"

	"code.hybscloud.com/eff"
)

// Write is the operation for emitting one line of output.
type Write struct {
	eff.Phantom[struct{}]
	Text string
}

// DispatchTty handles Write in Tty handler dispatch.
func (o Write) DispatchTty(sink Sink) (eff.Resumed, error) {
	if err := sink.WriteLine(o.Text); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Line writes text as a tree.
func Line(text string) eff.Tree[struct{}] {
	return eff.Perform(Write{Text: text})
}

// Linef writes a formatted line as a tree.
func Linef(format string, args ...any) eff.Tree[struct{}] {
	return Line(fmt.Sprintf(format, args...))
}

// Handler implements eff.Handler for the Tty vocabulary.
type Handler[R any] struct {
	sink Sink
}

// NewHandler creates a Tty handler writing to sink.
func NewHandler[R any](sink Sink) *Handler[R] {
	return &Handler[R]{sink: sink}
}

// Dispatch implements eff.Handler.
func (h *Handler[R]) Dispatch(op eff.Operation) (eff.Resumed, bool, error) {
	if top, ok := op.(interface {
		DispatchTty(sink Sink) (eff.Resumed, error)
	}); ok {
		v, err := top.DispatchTty(h.sink)
		return v, err == nil, err
	}
	return nil, false, eff.Unhandled(op)
}

// Run interprets t, writing its output to sink in program order.
// Lines written before a failure stay written.
func Run[A any](t eff.Tree[A], sink Sink) (A, error) {
	return eff.Run(t, NewHandler[A](sink))
}

// Output interprets t and returns its result and the recorded lines.
func Output[A any](t eff.Tree[A]) (A, []string, error) {
	var rec Recorder
	a, err := Run(t, &rec)
	return a, rec.Lines(), err
}

// DSL is the direct-style Tty vocabulary.
type DSL struct {
	s *eff.Scope
}

// Write emits text.
func (d *DSL) Write(text string) {
	eff.Await(d.s, Write{Text: text})
}

// Writef emits a formatted line.
func (d *DSL) Writef(format string, args ...any) {
	d.Write(fmt.Sprintf(format, args...))
}

// NewDSL wraps the scope of a running direct-style program. Programs that
// mix vocabularies build one DSL per vocabulary from the same scope.
func NewDSL(s *eff.Scope) *DSL { return &DSL{s: s} }

// Build converts a direct-style Tty program into a tree.
//
// Example:
//
//	t := tty.Build(func(d *tty.DSL) int {
//		d.Write("foo")
//		d.Write("bar")
//		return 5
//	})
//	n, lines, _ := tty.Output(t) // 5, ["foo" "bar"]
func Build[A any](program func(*DSL) A, opts ...eff.BuildOption) eff.Tree[A] {
	return eff.Build(NewDSL, program, opts...)
}
