// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

// Composed handlers for trees that mix several vocabularies.
// A single handler dispatches every vocabulary instead of nesting runs.

// Enclosed is implemented by dispatchers that interpret nested trees of
// their own (a forked computation, for example). [Combine] hands them the
// combined dispatcher so that nested trees see every vocabulary.
//
// Enclose returns a dispatcher bound to root and leaves the receiver
// as it was, so a member keeps its own behavior outside the combination.
type Enclosed interface {
	Enclose(root Dispatcher) Dispatcher
}

// Combined dispatches each operation to the first member that handles it.
type Combined[R any] struct {
	members []Dispatcher
}

// Combine creates a handler from several vocabulary dispatchers.
// Members are consulted in order; a member answering an [*UnhandledError]
// passes the operation on to the next one. Failures of nested trees that
// merely wrap ErrUnhandled are returned as they are.
//
// Enclosed members are replaced by their enclosed form; the values
// passed in are not modified.
func Combine[R any](members ...Dispatcher) *Combined[R] {
	c := &Combined[R]{members: make([]Dispatcher, len(members))}
	for i, m := range members {
		if e, ok := m.(Enclosed); ok {
			m = e.Enclose(c)
		}
		c.members[i] = m
	}
	return c
}

// Dispatch implements Handler for the composed handler.
func (c *Combined[R]) Dispatch(op Operation) (Resumed, bool, error) {
	for _, m := range c.members {
		v, ok, err := m.Dispatch(op)
		if _, skip := err.(*UnhandledError); skip {
			continue
		}
		return v, ok, err
	}
	return nil, false, Unhandled(op)
}
