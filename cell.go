// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

// cell is the suspension cell: a one-shot slot that hands one tree
// fragment from a paused program to the bridge. Every put must be
// followed by exactly one take before the next put.
type cell[T any] struct {
	v    T
	full bool
}

func (c *cell[T]) put(v T) {
	if c.full {
		panic("eff: suspension cell written twice")
	}
	c.v = v
	c.full = true
}

func (c *cell[T]) take() T {
	if !c.full {
		panic("eff: suspension cell read before write")
	}
	v := c.v
	var zero T
	c.v = zero
	c.full = false
	return v
}
