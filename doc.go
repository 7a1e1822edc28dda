// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package eff represents effectful computations as data and interprets
// that data with a stack-safe loop.
//
// A [Tree] is an effect tree. Observed one node at a time it has exactly
// two shapes: Pure(result), a finished computation, and
// Suspend(payload, continuation), a pending operation together with the
// function from the operation's result to the rest of the tree.
// Building a tree never performs an operation; only an interpreter does.
//
// # Design Philosophy
//
// eff provides:
//   - Type-indexed operations: every payload declares its result type, so
//     continuations receive statically typed values
//   - Defunctionalized trees: continuations are tagged frames, evaluated by
//     a single iterative loop with constant Go stack usage
//   - A bridge from direct-style Go code to trees, so programs can be
//     written sequentially against a vocabulary
//
// # Operations and Handlers
//
//   - [Op]: F-bounded operation interface, type Op[O Op[O, A], A any]
//   - [Phantom]: embeddable result marker for operation structs
//   - [Handler]: F-bounded interpreter interface
//   - [Dispatcher]: the non-generic view of a handler
//   - [HandleFunc]: create a handler from a dispatch function
//   - [Combine]: one handler for several vocabularies
//
// Dispatch returns (resumeValue, true, nil) to continue, (finalResult,
// false, nil) to short-circuit, or an error when the real effect failed.
//
// # Trees
//
//   - [Pure]: a finished computation
//   - [Perform]: a tree suspended on one operation
//   - [Suspend]: Suspend(payload, continuation)
//   - [Bind], [Map], [Then]: sequencing; Bind(Pure(a), f) is f(a)
//   - [Traverse], [Sequence], [Replicate]: sequencing over many trees
//   - [Delay]: rebuild a tree on every interpretation
//
// # Interpretation
//
//   - [Run]: the trampoline; dispatch every operation to a handler
//   - [RunPure]: evaluate an effect-free tree (panics on effects)
//   - [Step]: advance to the next suspension; [Suspension] is the
//     Suspend(payload, continuation) view with a one-shot Resume
//
// Failures of an operation's real effect stop the run and surface as a
// [*DispatchError]; effects already performed are not rolled back.
// Operations no handler knows surface as [ErrUnhandled].
//
// # Suspension Bridge
//
//   - [Build]: run a direct-style program and capture its operations as a tree
//   - [Await]: the single suspension point a vocabulary calls per operation
//   - [Scope]: the context a vocabulary wraps
//
// Build runs the program on a cooperative coroutine up to its first
// operation. Continuations captured by the bridge are affine ([Affine]):
// each may be resumed once, so a bridge-built tree is interpreted once.
// A program that panics is reported through a [Reporter] and the failure
// is re-raised as [*ProgramError].
//
// # Example
//
//	type Ask struct{ eff.Phantom[int] }
//
//	tree := eff.Bind(eff.Perform(Ask{}), func(x int) eff.Tree[int] {
//		return eff.Pure(x * 2)
//	})
//
//	result, err := eff.Run(tree, eff.HandleFunc[int](func(op eff.Operation) (eff.Resumed, bool, error) {
//		switch op.(type) {
//		case Ask:
//			return 21, true, nil
//		default:
//			return nil, false, eff.Unhandled(op)
//		}
//	}))
//	// result == 42
package eff
