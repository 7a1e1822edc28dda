// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import "sync/atomic"

// Stepping boundary for external drivers.
// Step provides shallow one-operation-at-a-time evaluation,
// unlike Run which drives a synchronous trampoline to completion.

// Suspension is the Suspend(payload, continuation) view of a tree: the
// pending operation and a one-shot resumption handle.
//
// Suspension enforces affine semantics: Resume may be called at most once.
// Calling Resume twice panics. Use Discard to explicitly abandon a suspension.
type Suspension[A any] struct {
	used atomic.Uintptr
	op   Operation
	ef   *EffectFrame[Erased]
	rest Frame
}

// Op returns the effect operation that caused the suspension.
func (s *Suspension[A]) Op() Operation { return s.op }

// Resume advances the tree with the given value.
// Returns either a completed value (with nil suspension) or the next suspension.
// Panics if the suspension has already been resumed or discarded.
func (s *Suspension[A]) Resume(v Resumed) (A, *Suspension[A]) {
	if s.used.Add(1) != 1 {
		panic("eff: suspension resumed twice")
	}
	return s.advance(v)
}

// TryResume attempts to advance the tree.
// Returns (value, suspension, true) on success, or (zero, nil, false) if already used.
func (s *Suspension[A]) TryResume(v Resumed) (A, *Suspension[A], bool) {
	if s.used.Add(1) != 1 {
		var zero A
		return zero, nil, false
	}
	a, next := s.advance(v)
	return a, next, true
}

// Discard marks the suspension as consumed without resuming and stops
// any paused direct-style program waiting on it.
func (s *Suspension[A]) Discard() {
	if s.used.Add(1) != 1 {
		return
	}
	abandonFrames(s.rest)
}

func (s *Suspension[A]) advance(v Resumed) (A, *Suspension[A]) {
	return classifyStepResult[A](evalFrames[stepProcessor[A], Erased](s.ef.Resume(v), s.rest, stepProcessor[A]{}))
}

// Step drives a tree until it either completes or suspends on an
// operation. Returns (value, nil) if the tree is Pure (after evaluating
// any pure frames), or (zero, suspension) if an operation is pending.
//
// Example:
//
//	result, susp := Step(tree)
//	for susp != nil {
//	    v := perform(susp.Op())
//	    result, susp = susp.Resume(v)
//	}
func Step[A any](t Tree[A]) (A, *Suspension[A]) {
	return classifyStepResult[A](evalFrames[stepProcessor[A], Erased](Erased(t.Value), t.Frame, stepProcessor[A]{}))
}

// stepProcessor yields at EffectFrame instead of dispatching.
// Returns *Suspension[A] or the final value via Erased.
type stepProcessor[A any] struct{}

func (stepProcessor[A]) processEffect(f *EffectFrame[Erased], rest Frame) (Erased, Frame, Erased, bool, error) {
	return nil, nil, &Suspension[A]{op: f.Operation, ef: f, rest: rest}, false, nil
}

func (stepProcessor[A]) processReturn(current Erased) Erased {
	return current
}

// classifyStepResult unpacks the Erased result from evalFrames[stepProcessor]:
// *Suspension[A] → suspended; otherwise → completed value.
func classifyStepResult[A any](result Erased, _ error) (A, *Suspension[A]) {
	if susp, ok := result.(*Suspension[A]); ok {
		var zero A
		return zero, susp
	}
	return as[A](result), nil
}
