// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import "fmt"

// pureEval is a sentinel handler for RunPure.
// Its Dispatch method unconditionally panics on any effect operation.
type pureEval[R any] struct{}

func (pureEval[R]) Dispatch(op Operation) (Resumed, bool, error) {
	panic(fmt.Sprintf("eff: effect %T in pure computation - use Run", op))
}

// frameProcessor is an F-bounded interface for the Tree evaluation strategies.
// The type parameter P is the concrete processor (self-referential bound), R is the
// result type. Shared frame iteration lives in evalFrames; processors define only
// the EffectFrame and ReturnFrame handling that diverges between use cases.
type frameProcessor[P frameProcessor[P, R], R any] interface {
	processEffect(f *EffectFrame[Erased], rest Frame) (Erased, Frame, R, bool, error)
	processReturn(current Erased) R
}

// evalFrames is the unified F-bounded iterative evaluator for frame chains.
// Two processors:
//   - handlerProcessor[H, R]: dispatches EffectFrame to handler (Run/RunPure)
//   - stepProcessor[A]: yields Suspension at EffectFrame (Step)
//
// Every iteration either consumes a frame or rotates a nested chain one
// level to the right, so Go stack depth stays constant however long or
// however nested the chain is.
func evalFrames[P frameProcessor[P, R], R any](current Erased, frame Frame, p P) (R, error) {
	for {
		// Flatten chained frames
		for {
			cf, ok := frame.(*chainedFrame)
			if !ok {
				break
			}
			if nested, ok := cf.first.(*chainedFrame); ok {
				frame = &chainedFrame{
					first: nested.first,
					rest:  ChainFrames(nested.rest, cf.rest),
				}
				continue
			}
			switch f := cf.first.(type) {
			case ReturnFrame:
				frame = cf.rest
			case *BindFrame[Erased, Erased]:
				next := f.F(current)
				current = next.Value
				frame = ChainFrames(ChainFrames(next.Frame, f.Next), cf.rest)
			case *MapFrame[Erased, Erased]:
				current = f.F(current)
				frame = ChainFrames(f.Next, cf.rest)
			case *ThenFrame[Erased, Erased]:
				current = f.Second.Value
				frame = ChainFrames(ChainFrames(f.Second.Frame, f.Next), cf.rest)
			case *resumeFrame:
				next := f.k.Resume(current)
				current = next.Value
				frame = ChainFrames(next.Frame, cf.rest)
			case *EffectFrame[Erased]:
				newCurrent, newFrame, result, ok, err := p.processEffect(f, ChainFrames(f.Next, cf.rest))
				if err != nil || !ok {
					return result, err
				}
				current = newCurrent
				frame = newFrame
			default:
				panic(fmt.Sprintf("eff: unknown frame type %T in chain", f))
			}
			break
		}
		if _, ok := frame.(*chainedFrame); ok {
			continue
		}

		switch f := frame.(type) {
		case ReturnFrame:
			return p.processReturn(current), nil
		case *BindFrame[Erased, Erased]:
			next := f.F(current)
			current = next.Value
			frame = ChainFrames(next.Frame, f.Next)
		case *MapFrame[Erased, Erased]:
			current = f.F(current)
			frame = f.Next
		case *ThenFrame[Erased, Erased]:
			current = f.Second.Value
			frame = ChainFrames(f.Second.Frame, f.Next)
		case *resumeFrame:
			next := f.k.Resume(current)
			current = next.Value
			frame = next.Frame
		case *EffectFrame[Erased]:
			newCurrent, newFrame, result, ok, err := p.processEffect(f, f.Next)
			if err != nil || !ok {
				return result, err
			}
			current = newCurrent
			frame = newFrame
		default:
			panic(fmt.Sprintf("eff: unknown frame type %T", frame))
		}
	}
}

// handlerProcessor adapts an F-bounded Handler for use with evalFrames.
// Dispatches EffectFrame operations to the handler and resumes or short-circuits.
type handlerProcessor[H Handler[H, R], R any] struct{ h H }

func (p handlerProcessor[H, R]) processEffect(f *EffectFrame[Erased], rest Frame) (Erased, Frame, R, bool, error) {
	var zero R
	v, shouldResume, err := p.h.Dispatch(f.Operation)
	if err != nil {
		abandonFrames(rest)
		return nil, nil, zero, false, &DispatchError{Op: f.Operation, Err: err}
	}
	if !shouldResume {
		abandonFrames(rest)
		return nil, nil, as[R](v), false, nil
	}
	return f.Resume(v), rest, zero, true, nil
}

func (p handlerProcessor[H, R]) processReturn(current Erased) R {
	return as[R](current)
}

// Run interprets t with an F-bounded effect handler and returns its result.
//
// Run is the trampoline: it evaluates frames iteratively without stack
// growth. When encountering an [EffectFrame], it dispatches the operation
// to the handler; the handler resumes the tree, short-circuits it with a
// final result, or fails it with an error. Operations already performed
// are not rolled back on failure.
func Run[H Handler[H, R], R any](t Tree[R], h H) (R, error) {
	return evalFrames(Erased(t.Value), t.Frame, handlerProcessor[H, R]{h: h})
}

// RunPure evaluates an effect-free tree to completion.
//
// Panics if the tree contains an [EffectFrame]. Use [Run] for trees
// with effects.
func RunPure[A any](t Tree[A]) A {
	a, _ := evalFrames(Erased(t.Value), t.Frame, handlerProcessor[pureEval[A], A]{h: pureEval[A]{}})
	return a
}

// ChainFrames links two frame chains together.
// Returns the other operand when either side is ReturnFrame (the identity element
// for frame composition), avoiding unnecessary chainedFrame allocation.
//
// Construction is O(1) in all cases: returns the other operand or creates one chainedFrame node.
func ChainFrames(first, second Frame) Frame {
	if _, ok := first.(ReturnFrame); ok {
		return second
	}
	if _, ok := second.(ReturnFrame); ok {
		return first
	}
	return &chainedFrame{first: first, rest: second}
}

// chainedFrame represents a frame followed by more frames.
// This enables composing frame chains without mutation.
type chainedFrame struct {
	first Frame
	rest  Frame
}

func (*chainedFrame) frame() {}

// abandonFrames stops every paused direct-style program referenced by
// frames that will never be evaluated.
func abandonFrames(frame Frame) {
	stack := []Frame{frame}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch f := f.(type) {
		case *chainedFrame:
			stack = append(stack, f.rest, f.first)
		case *resumeFrame:
			if f.abandon != nil {
				f.abandon()
			}
		case *EffectFrame[Erased]:
			stack = append(stack, f.Next)
		case *BindFrame[Erased, Erased]:
			stack = append(stack, f.Next)
		case *MapFrame[Erased, Erased]:
			stack = append(stack, f.Next)
		case *ThenFrame[Erased, Erased]:
			stack = append(stack, f.Next, f.Second.Frame)
		}
	}
}
