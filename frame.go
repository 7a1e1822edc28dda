// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

// Erased represents a type-erased value in the defunctionalized frame chain.
// Frame types use Erased parameters to process heterogeneous value types
// through a homogeneous evaluation pipeline. Concrete types are recovered
// via type assertions at frame boundaries.
type Erased = any

// Frame is the interface for defunctionalized continuation frames.
// Implementations carry the data needed to continue computation.
// Dispatch uses type switches, not tags; Frame is a pure marker interface.
type Frame interface {
	frame() // unexported marker method
}

// ReturnFrame signals computation completion.
// The evaluator returns the current value as the final result.
type ReturnFrame struct{}

func (ReturnFrame) frame() {}

// BindFrame represents monadic bind: Bind(m, f)
// Type parameters:
//   - A: input type (value from previous computation)
//   - B: output type (result of applying F)
type BindFrame[A, B any] struct {
	// F is the continuation function to apply to the input value.
	F func(A) Tree[B]

	// Next is the continuation frame after F completes.
	Next Frame
}

func (*BindFrame[A, B]) frame() {}

// MapFrame represents functor mapping: Map(m, f)
type MapFrame[A, B any] struct {
	// F is the transformation function.
	F func(A) B

	// Next is the continuation frame after transformation.
	Next Frame
}

func (*MapFrame[A, B]) frame() {}

// ThenFrame represents sequencing with discard: Then(m, n)
type ThenFrame[A, B any] struct {
	// Second is the tree to evaluate after discarding the first result.
	Second Tree[B]

	// Next is the continuation frame after Second completes.
	Next Frame
}

func (*ThenFrame[A, B]) frame() {}

// EffectFrame represents a suspended effect operation: the payload of a
// Suspend node. The handler dispatches on the operation and resumes with
// a value.
type EffectFrame[A any] struct {
	// Operation is the effect operation for handler dispatch.
	Operation Operation

	// Resume is called with the handler's response value.
	Resume func(A) Erased

	// Next is the continuation frame after resumption.
	Next Frame
}

func (*EffectFrame[A]) frame() {}

// resumeFrame continues a paused direct-style program built by [Build].
// The continuation is affine: evaluating the same resumeFrame twice panics.
type resumeFrame struct {
	k       *Affine[Tree[Erased], Erased]
	abandon func()
}

func (*resumeFrame) frame() {}

// Tree is an effect tree: a computation represented as data.
//
// A Tree is either Pure (its Frame is [ReturnFrame] and Value holds the
// result) or suspended on a frame chain whose effect frames carry pending
// operations. Trees are persistent: chaining builds new frames and never
// mutates an existing tree.
type Tree[A any] struct {
	// Value holds the current value if this is a completed computation.
	// Valid when Frame is ReturnFrame.
	Value A

	// Frame holds the next continuation frame.
	Frame Frame
}

// Pure creates a completed tree with the given value.
func Pure[A any](a A) Tree[A] {
	return Tree[A]{
		Value: a,
		Frame: ReturnFrame{},
	}
}

// Done reports whether t is a Pure node.
func (t Tree[A]) Done() bool {
	_, ok := t.Frame.(ReturnFrame)
	return ok
}

// erase widens a typed tree to the erased representation used in frames.
func erase[A any](t Tree[A]) Tree[Erased] {
	return Tree[Erased]{Value: Erased(t.Value), Frame: t.Frame}
}

// SuspendFrame creates a tree suspended at the given frame.
func SuspendFrame[A any](frame Frame) Tree[A] {
	var zero A
	return Tree[A]{
		Value: zero,
		Frame: frame,
	}
}
