// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff_test

import (
	"errors"

	"code.hybscloud.com/eff"
)

// Test vocabulary shared by the package tests.

type Ask struct{ eff.Phantom[int] }

type Tell struct {
	eff.Phantom[struct{}]
	Msg string
}

type Abort struct {
	eff.Phantom[int]
	Value int
}

type Fail struct{ eff.Phantom[int] }

var errBoom = errors.New("boom")

// recorder answers the test vocabulary and logs every dispatched operation.
type recorder[R any] struct {
	env int
	ops []eff.Operation
}

func (h *recorder[R]) Dispatch(op eff.Operation) (eff.Resumed, bool, error) {
	h.ops = append(h.ops, op)
	switch op := op.(type) {
	case Ask:
		return h.env, true, nil
	case Tell:
		return struct{}{}, true, nil
	case Abort:
		return op.Value, false, nil
	case Fail:
		return nil, false, errBoom
	}
	return nil, false, eff.Unhandled(op)
}

func ask() eff.Tree[int] { return eff.Perform(Ask{}) }

func tell(msg string) eff.Tree[struct{}] { return eff.Perform(Tell{Msg: msg}) }

// testDSL is the direct-style form of the test vocabulary.
type testDSL struct{ s *eff.Scope }

func vocab(s *eff.Scope) testDSL { return testDSL{s: s} }

func (d testDSL) Ask() int { return eff.Await(d.s, Ask{}) }
func (d testDSL) Tell(msg string) { eff.Await(d.s, Tell{Msg: msg}) }
func (d testDSL) Abort(v int) int { return eff.Await(d.s, Abort{Value: v}) }
func (d testDSL) Fail() int { return eff.Await(d.s, Fail{}) }
