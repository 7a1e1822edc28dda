// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reader is the read-only dependency vocabulary: computations
// that ask for an environment supplied when they are interpreted.
package reader

import "code.hybscloud.com/eff"

// Ask is the operation for reading the environment.
// eff.Perform(Ask[E]{}) resumes with the current environment of type E.
type Ask[E any] struct{ eff.Phantom[E] }

// DispatchReader handles Ask in Reader handler dispatch.
func (Ask[E]) DispatchReader(env *E) (eff.Resumed, error) {
	return *env, nil
}

// Local is the operation that runs Body with an environment modified by F.
// Like every nested run, the body is interpreted by a Reader-only handler.
type Local[E, A any] struct {
	eff.Phantom[A]
	F    func(E) E
	Body eff.Tree[A]
}

// DispatchReader runs the body with the modified environment.
func (o Local[E, A]) DispatchReader(env *E) (eff.Resumed, error) {
	return Run(o.Body, o.F(*env))
}

// Asks performs Ask and projects the environment with f.
func Asks[E, A any](f func(E) A) eff.Tree[A] {
	return eff.Map(eff.Perform(Ask[E]{}), f)
}

// AskFor is Ask as a tree.
func AskFor[E any]() eff.Tree[E] {
	return eff.Perform(Ask[E]{})
}

// WithLocal runs body with the environment modified by f.
func WithLocal[E, A any](f func(E) E, body eff.Tree[A]) eff.Tree[A] {
	return eff.Perform(Local[E, A]{F: f, Body: body})
}

// Handler implements eff.Handler for the Reader vocabulary.
type Handler[E, R any] struct {
	env *E
}

// NewHandler creates a Reader handler for env.
func NewHandler[E, R any](env E) *Handler[E, R] {
	e := env
	return &Handler[E, R]{env: &e}
}

// Dispatch implements eff.Handler.
func (h *Handler[E, R]) Dispatch(op eff.Operation) (eff.Resumed, bool, error) {
	if rop, ok := op.(interface {
		DispatchReader(env *E) (eff.Resumed, error)
	}); ok {
		v, err := rop.DispatchReader(h.env)
		return v, err == nil, err
	}
	return nil, false, eff.Unhandled(op)
}

// Run interprets t with env as the environment.
// Each call uses its own handler, so runs never observe each other's
// environment.
func Run[E, A any](t eff.Tree[A], env E) (A, error) {
	return eff.Run(t, NewHandler[E, A](env))
}

// DSL is the direct-style Reader vocabulary over environment E.
type DSL[E any] struct {
	s *eff.Scope
}

// NewDSL wraps the scope of a running direct-style program.
func NewDSL[E any](s *eff.Scope) *DSL[E] { return &DSL[E]{s: s} }

// Ask returns the environment.
func (d *DSL[E]) Ask() E {
	return eff.Await(d.s, Ask[E]{})
}

// Build converts a direct-style Reader program into a tree.
//
// Example:
//
//	t := reader.Build(func(d *reader.DSL[int]) string {
//		return strconv.Itoa(d.Ask() + 1)
//	})
//	s, _ := reader.Run(t, 7) // "8"
func Build[E, A any](program func(*DSL[E]) A, opts ...eff.BuildOption) eff.Tree[A] {
	return eff.Build(NewDSL[E], program, opts...)
}
