// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package option is the optional-value vocabulary: computations that stop
// at the first missing value.
package option

import "fmt"

// Option holds either one value (Some) or none (None).
type Option[A any] struct {
	value A
	ok    bool
}

// Some creates an Option holding a.
func Some[A any](a A) Option[A] {
	return Option[A]{value: a, ok: true}
}

// None creates an empty Option.
func None[A any]() Option[A] {
	return Option[A]{}
}

// IsSome reports whether o holds a value.
func (o Option[A]) IsSome() bool { return o.ok }

// IsNone reports whether o is empty.
func (o Option[A]) IsNone() bool { return !o.ok }

// Get returns the held value. Panics on None.
func (o Option[A]) Get() A {
	if !o.ok {
		panic("option: found None where Some was expected")
	}
	return o.value
}

// GetOK returns the held value and true, or zero and false.
func (o Option[A]) GetOK() (A, bool) {
	return o.value, o.ok
}

// OrElse returns the held value, or a when o is None.
func (o Option[A]) OrElse(a A) A {
	if o.ok {
		return o.value
	}
	return a
}

func (o Option[A]) String() string {
	if o.ok {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return "None"
}

// Bind passes the held value to f. Bind(None, f) is None and never calls f.
func Bind[A, B any](o Option[A], f func(A) Option[B]) Option[B] {
	if !o.ok {
		return None[B]()
	}
	return f(o.value)
}

// Map applies f to the held value.
func Map[A, B any](o Option[A], f func(A) B) Option[B] {
	if !o.ok {
		return None[B]()
	}
	return Some(f(o.value))
}
