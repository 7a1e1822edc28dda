// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import (
	"iter"
	"runtime"
	"runtime/debug"

	"code.hybscloud.com/eff/internal/logging"
)

// Reporter receives the unrecovered failure of a direct-style program.
// It is called once per failed program, before the failure is re-raised
// in the caller of the bridge.
type Reporter func(*ProgramError)

func defaultReporter(err *ProgramError) {
	logging.Default().Error("direct-style program failed",
		"panic", err.Value,
		"stack", string(err.Stack),
	)
}

type buildConfig struct {
	report Reporter
}

// BuildOption configures [Build].
type BuildOption func(*buildConfig)

// WithReporter routes program failures to r instead of the default
// logger.
func WithReporter(r Reporter) BuildOption {
	return func(c *buildConfig) {
		if r != nil {
			c.report = r
		}
	}
}

// Scope is the suspension context of one direct-style program run.
// Vocabularies wrap a Scope and call [Await] for each operation.
// A Scope must only be used from the program it was handed to.
type Scope struct {
	yield     func(struct{}) bool
	suspend   func(op Operation, resume func(Erased) Erased)
	in        Erased
	done      bool
	abandoned bool
}

type abandonSignal struct{}

// errAbandoned unwinds a program whose remaining tree will never run.
var errAbandoned = &abandonSignal{}

// Await suspends the running program on op and returns the result the
// interpreter produces for it. It is the only suspension point of a
// direct-style program.
//
// Await panics when s does not belong to a running program.
func Await[O Op[O, R], R any](s *Scope, op O) R {
	if s == nil || s.yield == nil {
		panic("eff: Await outside Build")
	}
	if s.done {
		panic("eff: Await on a finished program")
	}
	if s.abandoned {
		panic(errAbandoned)
	}
	s.suspend(op, resumeAs[R])
	if !s.yield(struct{}{}) {
		s.abandoned = true
		panic(errAbandoned)
	}
	v := s.in
	s.in = nil
	return as[R](v)
}

// step is the content of the suspension cell after one run of the
// program up to its next suspension point.
type step[A any] struct {
	op      Operation
	resume  func(Erased) Erased
	value   A
	done    bool
	failure *ProgramError
}

// exchange is the state shared between a paused program and its bridge.
// It must not reference the bridge, so that an unreachable tree lets the
// bridge be collected and its program stopped.
type exchange[A any] struct {
	scope Scope
	cell  cell[step[A]]
}

type bridge[A any] struct {
	next   func() (struct{}, bool)
	stop   func()
	x      *exchange[A]
	report Reporter
}

// Build converts a direct-style program into an effect tree without
// performing any of its operations.
//
// vocab wraps the program's [Scope] into the vocabulary object the
// program is written against. The program runs on a cooperative
// coroutine, synchronously up to its first operation; Build then returns
// the tree read from the suspension cell. Each Suspend node's
// continuation resumes the program with the interpreter's result and
// captures the following node the same way; returning from program
// produces the Pure node.
//
// Continuations of the resulting tree are single-shot: the tree can be
// interpreted once. Wrap the call in [Delay] for a re-evaluable tree.
//
// A panic inside program is reported to the [Reporter] and then re-raised
// as *[ProgramError] in the caller of Build or of the interpreter; the
// program is never resumed after it.
func Build[D, A any](vocab func(*Scope) D, program func(D) A, opts ...BuildOption) Tree[A] {
	cfg := buildConfig{report: defaultReporter}
	for _, o := range opts {
		o(&cfg)
	}

	x := &exchange[A]{}
	s := &x.scope
	s.suspend = func(op Operation, resume func(Erased) Erased) {
		x.cell.put(step[A]{op: op, resume: resume})
	}
	seq := func(yield func(struct{}) bool) {
		s.yield = yield
		defer func() {
			s.done = true
			r := recover()
			if r == nil || s.abandoned {
				return
			}
			if r == any(errAbandoned) {
				return
			}
			x.cell.put(step[A]{failure: &ProgramError{Value: r, Stack: debug.Stack()}})
		}()
		a := program(vocab(s))
		x.cell.put(step[A]{value: a, done: true})
	}

	next, stop := iter.Pull(seq)
	b := &bridge[A]{next: next, stop: stop, x: x, report: cfg.report}
	runtime.AddCleanup(b, func(stop func()) { stop() }, stop)
	return b.advance()
}

// advance runs the program to its next suspension point and converts
// the content of the suspension cell into a tree node.
func (b *bridge[A]) advance() Tree[A] {
	b.next()
	st := b.x.cell.take()
	if st.failure != nil {
		b.stop()
		b.report(st.failure)
		panic(st.failure)
	}
	if st.done {
		return Pure(st.value)
	}

	k := Once(func(v Erased) Tree[Erased] {
		b.x.scope.in = v
		return erase(b.advance())
	})
	return SuspendFrame[A](&EffectFrame[Erased]{
		Operation: st.op,
		Resume:    st.resume,
		Next: &resumeFrame{
			k: k,
			abandon: func() {
				if k.Discard() {
					b.stop()
				}
			},
		},
	})
}
