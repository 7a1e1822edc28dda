// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import "testing"

func TestCellPutTake(t *testing.T) {
	var c cell[int]
	c.put(1)
	if got := c.take(); got != 1 {
		t.Fatalf("take = %d, want 1", got)
	}
	c.put(2)
	if got := c.take(); got != 2 {
		t.Fatalf("take = %d, want 2", got)
	}
}

func TestCellTakeEmptyPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "eff: suspension cell read before write" {
			t.Fatalf("panic = %v", r)
		}
	}()
	var c cell[int]
	c.take()
}

func TestCellPutTwicePanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "eff: suspension cell written twice" {
			t.Fatalf("panic = %v", r)
		}
	}()
	var c cell[string]
	c.put("a")
	c.put("b")
}

func TestAbandonFramesVisitsEveryBranch(t *testing.T) {
	var abandoned int
	rf := func() Frame {
		return &resumeFrame{abandon: func() { abandoned++ }}
	}
	chain := ChainFrames(
		&EffectFrame[Erased]{Next: rf()},
		&ThenFrame[Erased, Erased]{
			Second: Tree[Erased]{Frame: rf()},
			Next:   &MapFrame[Erased, Erased]{Next: rf()},
		},
	)
	abandonFrames(chain)
	if abandoned != 3 {
		t.Fatalf("abandoned %d continuations, want 3", abandoned)
	}
}
