// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package option

import "code.hybscloud.com/eff"

// Unwrap is the operation that extracts the value of an Option.
// eff.Perform(Unwrap[A]{Option: o}) resumes with the held value, or ends
// the whole computation with None.
type Unwrap[A any] struct {
	eff.Phantom[A]
	Option Option[A]
}

// DispatchOption handles Unwrap in Option handler dispatch.
func (o Unwrap[A]) DispatchOption() (eff.Resumed, bool) {
	return o.Option.value, o.Option.ok
}

// Lift turns an Option into a tree that short-circuits on None.
func Lift[A any](o Option[A]) eff.Tree[A] {
	return eff.Perform(Unwrap[A]{Option: o})
}

// handler implements eff.Handler for the Option vocabulary. It runs
// trees whose result is Option[A].
type handler[A any] struct{}

// Dispatch resumes with the held value or short-circuits with None.
func (handler[A]) Dispatch(op eff.Operation) (eff.Resumed, bool, error) {
	if oop, ok := op.(interface{ DispatchOption() (eff.Resumed, bool) }); ok {
		v, some := oop.DispatchOption()
		if !some {
			return None[A](), false, nil
		}
		return v, true, nil
	}
	return nil, false, eff.Unhandled(op)
}

// Run interprets t. The result is None as soon as one Unwrap meets None;
// the rest of the tree is not evaluated.
func Run[A any](t eff.Tree[A]) (Option[A], error) {
	return eff.Run[handler[A], Option[A]](eff.Map(t, Some[A]), handler[A]{})
}

// DSL is the direct-style Option vocabulary.
type DSL struct {
	s *eff.Scope
}

// Value returns the value held by o, suspending the program; a None ends
// the program.
func Value[A any](d *DSL, o Option[A]) A {
	return eff.Await(d.s, Unwrap[A]{Option: o})
}

// NewDSL wraps the scope of a running program.
func NewDSL(s *eff.Scope) *DSL { return &DSL{s: s} }

// Build converts a direct-style Option program into a tree.
func Build[A any](program func(*DSL) A, opts ...eff.BuildOption) eff.Tree[A] {
	return eff.Build(NewDSL, program, opts...)
}

// Optionally runs a direct-style Option program to its result.
//
// Example:
//
//	o := option.Optionally(func(d *option.DSL) int {
//		a := option.Value(d, option.Some(5))
//		b := option.Value(d, option.Some(7))
//		return a + b
//	})
//	// o == Some(12)
func Optionally[A any](program func(*DSL) A, opts ...eff.BuildOption) Option[A] {
	o, err := Run(Build(program, opts...))
	if err != nil {
		panic(err) // only Unwrap is performed, the handler cannot fail
	}
	return o
}
