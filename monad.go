// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

// Monad operations for effect trees.
//
// Minimal definition: Pure (unit) and Bind are necessary and sufficient.
// Map and Then are derived operations kept as optimizations to avoid
// intermediate trees.

// Bind sequences two trees (monadic bind).
// Bind(Pure(a), f) is f(a); any other tree gets f appended as a
// [BindFrame], leaving m itself untouched.
func Bind[A, B any](m Tree[A], f func(A) Tree[B]) Tree[B] {
	if _, ok := m.Frame.(ReturnFrame); ok {
		// Optimization: if m is already completed, apply f directly
		return f(m.Value)
	}

	// We need to type-erase here for the generic frame chain
	bindFrame := &BindFrame[Erased, Erased]{
		F: func(a Erased) Tree[Erased] {
			return erase(f(as[A](a)))
		},
		Next: ReturnFrame{},
	}

	var zero B
	return Tree[B]{
		Value: zero,
		Frame: ChainFrames(m.Frame, bindFrame),
	}
}

// Map applies a pure function to the result of a tree.
//
// Allocation note: Map is equivalent to Bind(m, compose(Pure, f)) but
// avoids the intermediate tree per step.
func Map[A, B any](m Tree[A], f func(A) B) Tree[B] {
	if _, ok := m.Frame.(ReturnFrame); ok {
		return Pure(f(m.Value))
	}

	mapFrame := &MapFrame[Erased, Erased]{
		F: func(a Erased) Erased {
			return f(as[A](a))
		},
		Next: ReturnFrame{},
	}

	var zero B
	return Tree[B]{
		Value: zero,
		Frame: ChainFrames(m.Frame, mapFrame),
	}
}

// Then sequences two trees, discarding the first result.
func Then[A, B any](m Tree[A], n Tree[B]) Tree[B] {
	if _, ok := m.Frame.(ReturnFrame); ok {
		return n
	}

	thenFrame := &ThenFrame[Erased, Erased]{
		Second: erase(n),
		Next:   ReturnFrame{},
	}

	var zero B
	return Tree[B]{
		Value: zero,
		Frame: ChainFrames(m.Frame, thenFrame),
	}
}

// Delay defers the construction of a tree until it is interpreted.
// Each interpretation calls f afresh, which makes single-use trees such
// as the result of [Build] safe to interpret repeatedly.
func Delay[A any](f func() Tree[A]) Tree[A] {
	return SuspendFrame[A](&BindFrame[Erased, Erased]{
		F: func(Erased) Tree[Erased] {
			return erase(f())
		},
		Next: ReturnFrame{},
	})
}

// Traverse applies f to every element of xs in order and collects the
// results. The operations of each f(x) run before those of the next element.
func Traverse[A, B any](xs []A, f func(A) Tree[B]) Tree[[]B] {
	// Results accumulate in a persistent list so that interpreting the
	// same tree twice never shares a backing array between the runs.
	acc := Pure[*cons[B]](nil)
	for _, x := range xs {
		acc = Bind(acc, func(tail *cons[B]) Tree[*cons[B]] {
			return Map(f(x), func(b B) *cons[B] { return &cons[B]{head: b, tail: tail} })
		})
	}
	return Map(acc, func(l *cons[B]) []B {
		out := make([]B, len(xs))
		for i := len(xs) - 1; i >= 0; i-- {
			out[i] = l.head
			l = l.tail
		}
		return out
	})
}

type cons[B any] struct {
	head B
	tail *cons[B]
}

// Sequence runs the trees in order and collects their results.
func Sequence[A any](ts []Tree[A]) Tree[[]A] {
	return Traverse(ts, func(t Tree[A]) Tree[A] { return t })
}

// Replicate sequences n copies of m and returns the result of the last one.
// Replicate(0, m) is Pure of the zero value.
func Replicate[A any](n int, m Tree[A]) Tree[A] {
	var zero A
	acc := Pure(zero)
	for range n {
		acc = Then(acc, m)
	}
	return acc
}
