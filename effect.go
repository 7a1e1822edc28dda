// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import (
	"fmt"
	"reflect"
)

// Operation is the interface for effect operations in handler dispatch.
// All values passed as the op parameter to Handler.Dispatch implement this interface.
type Operation any

// Resumed is the interface for values flowing from a handler back into
// the continuation of a suspended operation.
type Resumed any

// Op is the F-bounded interface for effect operations.
// Each vocabulary defines concrete types implementing Op with the result
// type parameter of the operation. The self-referencing constraint gives
// the compiler knowledge of both the concrete operation type and its
// result type, so continuations receive statically typed values.
//
// Example:
//
//	type Ask[E any] struct{ eff.Phantom[E] }
type Op[O Op[O, A], A any] interface {
	OpResult() A // phantom type marker for result
}

// Phantom is an embeddable zero-size type that provides the [Op] result marker.
// Embed Phantom[A] in an operation struct to satisfy [Op] without writing
// a manual OpResult method.
//
// Example:
//
//	type GetArticle struct {
//		eff.Phantom[Article]
//		ID int
//	}
type Phantom[A any] struct{}

// OpResult implements the phantom type marker for [Op].
func (Phantom[A]) OpResult() A { panic("phantom") }

// Dispatcher interprets a single operation.
//
// Dispatch returns (resumeValue, true, nil) to continue the computation,
// (finalResult, false, nil) to short-circuit it, or a non-nil error when
// the operation's real effect failed.
type Dispatcher interface {
	Dispatch(op Operation) (Resumed, bool, error)
}

// Handler is the F-bounded interface for effect handlers.
// The self-referencing constraint H Handler[H, R] gives the compiler
// knowledge of the concrete handler type at compile time. R is the
// final result type of the trees the handler runs.
type Handler[H Handler[H, R], R any] interface {
	Dispatch(op Operation) (Resumed, bool, error)
}

// handlerFunc wraps a dispatch function as a concrete Handler.
type handlerFunc[R any] struct {
	f func(op Operation) (Resumed, bool, error)
}

func (h *handlerFunc[R]) Dispatch(op Operation) (Resumed, bool, error) {
	return h.f(op)
}

// HandleFunc creates a handler from a dispatch function.
//
// Example:
//
//	HandleFunc[int](func(op Operation) (Resumed, bool, error) {
//	    switch op.(type) {
//	    case reader.Ask[int]:
//	        return 42, true, nil
//	    default:
//	        return nil, false, eff.Unhandled(op)
//	    }
//	})
func HandleFunc[R any](f func(op Operation) (Resumed, bool, error)) *handlerFunc[R] {
	return &handlerFunc[R]{f: f}
}

// as recovers the static type of an erased value at a frame boundary.
// A nil interface is accepted only when the zero value of A is nil.
func as[A any](v Erased) A {
	if a, ok := v.(A); ok {
		return a
	}
	var zero A
	if v == nil && nilable[A]() {
		return zero
	}
	panic(fmt.Sprintf("eff: resumed with %T, want %v", v, reflect.TypeFor[A]()))
}

func nilable[A any]() bool {
	switch reflect.TypeFor[A]().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
	return false
}

// resumeAs is the Resume function of a typed EffectFrame.
// It rejects handler responses of the wrong type before they reach the
// continuation.
func resumeAs[A any](v Erased) Erased {
	return as[A](v)
}

// Perform creates a tree suspended on a single operation. Interpreting
// the tree dispatches op and completes with the handler's response.
//
// Type inference handles calls: Perform(GetCustomer{ID: 1}) infers the
// result type from the operation.
func Perform[O Op[O, A], A any](op O) Tree[A] {
	var zero A
	return Tree[A]{
		Value: zero,
		Frame: &EffectFrame[Erased]{
			Operation: op,
			Resume:    resumeAs[A],
			Next:      ReturnFrame{},
		},
	}
}

// Suspend creates the node Suspend(op, k): a pending operation together
// with the continuation that maps the operation's result to the rest of
// the tree.
func Suspend[O Op[O, R], R, A any](op O, k func(R) Tree[A]) Tree[A] {
	return Bind(Perform(op), k)
}
