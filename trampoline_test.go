// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff_test

import (
	"errors"
	"strconv"
	"testing"

	"code.hybscloud.com/eff"
)

func TestRunPureValue(t *testing.T) {
	if got := eff.RunPure(eff.Pure(42)); got != 42 {
		t.Fatalf("RunPure(Pure(42)) = %d, want 42", got)
	}
}

func TestRunPureMapBindThen(t *testing.T) {
	c := eff.Pure(10)
	c = eff.Map(c, func(x int) int { return x * 2 }) // 20
	c = eff.Bind(c, func(x int) eff.Tree[int] {
		return eff.Pure(x + 2) // 22
	})
	c = eff.Then(eff.Pure(0), c)
	if got := eff.RunPure(c); got != 22 {
		t.Fatalf("mixed operations = %d, want 22", got)
	}
}

func TestRunPureTypeConversion(t *testing.T) {
	c := eff.Map(eff.Pure(42), strconv.Itoa)
	if got := eff.RunPure(c); got != "42" {
		t.Fatalf("type conversion = %q, want \"42\"", got)
	}
}

func TestRunPurePanicsOnEffect(t *testing.T) {
	defer func() {
		r := recover()
		want := "eff: effect eff_test.Ask in pure computation - use Run"
		if r != want {
			t.Fatalf("panic = %v, want %q", r, want)
		}
	}()
	eff.RunPure(ask())
}

func TestConstructionPerformsNothing(t *testing.T) {
	h := &recorder[int]{env: 1}
	tree := eff.Bind(ask(), func(x int) eff.Tree[int] {
		return eff.Then(tell("seen"), eff.Pure(x))
	})
	if tree.Done() {
		t.Fatal("tree with a pending operation reported Done")
	}
	if len(h.ops) != 0 {
		t.Fatalf("dispatched %d operations before Run", len(h.ops))
	}
	if _, err := eff.Run(tree, h); err != nil {
		t.Fatal(err)
	}
	if len(h.ops) != 2 {
		t.Fatalf("dispatched %d operations, want 2", len(h.ops))
	}
}

func TestRunDispatchOrder(t *testing.T) {
	h := &recorder[string]{env: 7}
	tree := eff.Then(tell("a"),
		eff.Bind(ask(), func(x int) eff.Tree[string] {
			return eff.Then(tell("b"), eff.Pure(strconv.Itoa(x)))
		}))
	got, err := eff.Run(tree, h)
	if err != nil {
		t.Fatal(err)
	}
	if got != "7" {
		t.Fatalf("got %q, want \"7\"", got)
	}
	want := []eff.Operation{Tell{Msg: "a"}, Ask{}, Tell{Msg: "b"}}
	if len(h.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", h.ops, want)
	}
	for i := range want {
		if h.ops[i] != want[i] {
			t.Fatalf("op %d = %v, want %v", i, h.ops[i], want[i])
		}
	}
}

func TestRunShortCircuit(t *testing.T) {
	h := &recorder[int]{}
	tree := eff.Bind(eff.Perform(Abort{Value: -1}), func(int) eff.Tree[int] {
		t.Fatal("continuation called after short-circuit")
		return eff.Pure(0)
	})
	got, err := eff.Run(tree, h)
	if err != nil {
		t.Fatal(err)
	}
	if got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestRunDispatchFailure(t *testing.T) {
	h := &recorder[int]{}
	tree := eff.Then(tell("before"), eff.Then(eff.Perform(Fail{}), tell("after")))
	_, err := eff.Run(eff.Map(tree, func(struct{}) int { return 0 }), h)
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want errBoom", err)
	}
	var de *eff.DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("err = %T, want *DispatchError", err)
	}
	if _, ok := de.Op.(Fail); !ok {
		t.Fatalf("DispatchError.Op = %T, want Fail", de.Op)
	}
	if len(h.ops) != 2 {
		t.Fatalf("dispatched %d operations, want 2 (no operation after the failure)", len(h.ops))
	}
}

type unknown struct{ eff.Phantom[int] }

func TestRunUnhandled(t *testing.T) {
	_, err := eff.Run(eff.Perform(unknown{}), &recorder[int]{})
	if !errors.Is(err, eff.ErrUnhandled) {
		t.Fatalf("err = %v, want ErrUnhandled", err)
	}
}

func TestRunResumeTypeMismatch(t *testing.T) {
	h := eff.HandleFunc[int](func(op eff.Operation) (eff.Resumed, bool, error) {
		return "not an int", true, nil
	})
	defer func() {
		r := recover()
		if r != "eff: resumed with string, want int" {
			t.Fatalf("panic = %v", r)
		}
	}()
	eff.Run(ask(), h)
}

func TestRunNilResumeRejected(t *testing.T) {
	h := eff.HandleFunc[int](func(op eff.Operation) (eff.Resumed, bool, error) {
		return nil, true, nil
	})
	cases := map[string]struct {
		tree eff.Tree[int]
		want string
	}{
		"int":    {eff.Map(ask(), func(x int) int { return x + 1 }), "eff: resumed with <nil>, want int"},
		"struct": {eff.Then(tell("x"), eff.Pure(0)), "eff: resumed with <nil>, want struct {}"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != c.want {
					t.Fatalf("panic = %v, want %q", r, c.want)
				}
			}()
			eff.Run(c.tree, h)
			t.Fatal("nil response reached the continuation")
		})
	}
}

type Lookup struct{ eff.Phantom[*int] }

func TestRunNilResumeForPointer(t *testing.T) {
	h := eff.HandleFunc[bool](func(op eff.Operation) (eff.Resumed, bool, error) {
		return nil, true, nil
	})
	got, err := eff.Run(eff.Map(eff.Perform(Lookup{}), func(p *int) bool { return p == nil }), h)
	if err != nil || !got {
		t.Fatalf("got (%v, %v), want (true, nil)", got, err)
	}
}

const deep = 100_000

func TestRunLeftNestedChain(t *testing.T) {
	tree := eff.Pure(0)
	for range deep {
		tree = eff.Bind(tree, func(acc int) eff.Tree[int] {
			return eff.Map(ask(), func(x int) int { return acc + x })
		})
	}
	got, err := eff.Run(tree, &recorder[int]{env: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got != deep {
		t.Fatalf("got %d, want %d", got, deep)
	}
}

func TestRunRightNestedChain(t *testing.T) {
	var loop func(n, acc int) eff.Tree[int]
	loop = func(n, acc int) eff.Tree[int] {
		if n == 0 {
			return eff.Pure(acc)
		}
		return eff.Suspend(Ask{}, func(x int) eff.Tree[int] {
			return loop(n-1, acc+x)
		})
	}
	got, err := eff.Run(loop(deep, 0), &recorder[int]{env: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got != deep {
		t.Fatalf("got %d, want %d", got, deep)
	}
}

func TestRunNestedThenChains(t *testing.T) {
	// Then(Then(Then(...))) on both sides exercises chain rotation.
	tree := eff.Map(tell("x"), func(struct{}) int { return 0 })
	for i := range deep / 10 {
		tree = eff.Then(tree, eff.Then(tell("y"), eff.Pure(i+1)))
	}
	h := &recorder[int]{}
	got, err := eff.Run(tree, h)
	if err != nil {
		t.Fatal(err)
	}
	if got != deep/10 {
		t.Fatalf("got %d, want %d", got, deep/10)
	}
	if len(h.ops) != deep/10+1 {
		t.Fatalf("dispatched %d operations, want %d", len(h.ops), deep/10+1)
	}
}

func TestRunPureDeepMapChain(t *testing.T) {
	c := eff.Pure(0)
	for range deep {
		c = eff.Map(c, func(x int) int { return x + 1 })
	}
	if got := eff.RunPure(c); got != deep {
		t.Fatalf("deep chain = %d, want %d", got, deep)
	}
}

func TestTreeIsPersistent(t *testing.T) {
	base := ask()
	left := eff.Map(base, func(x int) int { return x + 1 })
	right := eff.Map(base, func(x int) int { return x * 10 })

	a, _ := eff.Run(left, &recorder[int]{env: 3})
	b, _ := eff.Run(right, &recorder[int]{env: 3})
	c, _ := eff.Run(left, &recorder[int]{env: 5})
	if a != 4 || b != 30 || c != 6 {
		t.Fatalf("got %d %d %d, want 4 30 6", a, b, c)
	}
}

func TestTraverse(t *testing.T) {
	tree := eff.Traverse([]string{"a", "b", "c"}, func(s string) eff.Tree[string] {
		return eff.Then(tell(s), eff.Map(ask(), func(x int) string { return s + strconv.Itoa(x) }))
	})
	for env := range 2 {
		h := &recorder[[]string]{env: env}
		got, err := eff.Run(tree, h)
		if err != nil {
			t.Fatal(err)
		}
		e := strconv.Itoa(env)
		if len(got) != 3 || got[0] != "a"+e || got[1] != "b"+e || got[2] != "c"+e {
			t.Fatalf("run %d: got %v", env, got)
		}
		if h.ops[0] != (Tell{Msg: "a"}) || h.ops[2] != (Tell{Msg: "b"}) || h.ops[4] != (Tell{Msg: "c"}) {
			t.Fatalf("run %d: operations out of order: %v", env, h.ops)
		}
	}
}

func TestSequenceEmpty(t *testing.T) {
	got := eff.RunPure(eff.Sequence[int](nil))
	if len(got) != 0 {
		t.Fatalf("Sequence(nil) = %v, want empty", got)
	}
}

func TestReplicate(t *testing.T) {
	h := &recorder[int]{env: 9}
	got, err := eff.Run(eff.Replicate(4, ask()), h)
	if err != nil {
		t.Fatal(err)
	}
	if got != 9 || len(h.ops) != 4 {
		t.Fatalf("got %d after %d operations, want 9 after 4", got, len(h.ops))
	}
	if eff.RunPure(eff.Replicate(0, ask())) != 0 {
		t.Fatal("Replicate(0, m) is not Pure(0)")
	}
}

func TestChainFramesIdentity(t *testing.T) {
	f := &eff.MapFrame[eff.Erased, eff.Erased]{Next: eff.ReturnFrame{}}
	if eff.ChainFrames(eff.ReturnFrame{}, f) != eff.Frame(f) {
		t.Fatal("ChainFrames(Return, f) != f")
	}
	if eff.ChainFrames(f, eff.ReturnFrame{}) != eff.Frame(f) {
		t.Fatal("ChainFrames(f, Return) != f")
	}
}
