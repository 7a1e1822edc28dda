// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shopping

import (
	"errors"
	"fmt"

	"code.hybscloud.com/eff"
	"github.com/google/uuid"
)

// ErrCyclicJoin is returned when a forked computation joins itself,
// directly or through other futures.
var ErrCyclicJoin = errors.New("shopping: future joined while being forced")

type futureState uint8

const (
	futurePending futureState = iota
	futureForcing
	futureDone
)

// Future is the handle to a forked computation.
//
// Forking is lazy: the computation runs the first time the future is
// joined, through the same single-threaded interpreter as the joiner.
// The outcome, value or error, is memoized; later joins return it without
// running the computation again. A future that is never joined never runs.
type Future[R any] struct {
	id    uuid.UUID
	tree  eff.Tree[R]
	sched *Scheduler
	state futureState
	value R
	err   error
}

// ID returns the identity assigned at fork time.
func (f *Future[R]) ID() uuid.UUID { return f.id }

// Forced reports whether the computation has completed.
func (f *Future[R]) Forced() bool { return f.state == futureDone }

func (f *Future[R]) String() string {
	return fmt.Sprintf("future(%s)", f.id)
}

func spawn[R any](s *Scheduler, t eff.Tree[R]) *Future[R] {
	f := &Future[R]{id: uuid.New(), tree: t, sched: s}
	s.pending.Add(f.id)
	s.log.Debug("fork", "future", f.id.String())
	return f
}

// force runs the forked computation once and memoizes its outcome.
// A computation that panics is settled with the panic as its error
// before the panic continues in the joiner.
func (f *Future[R]) force() (R, error) {
	switch f.state {
	case futureDone:
		return f.value, f.err
	case futureForcing:
		var zero R
		return zero, fmt.Errorf("%w: %s", ErrCyclicJoin, f.id)
	}
	f.state = futureForcing
	f.sched.log.Debug("force", "future", f.id.String())
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("shopping: forked computation panicked: %v", r)
			}
			var zero R
			f.settle(zero, err)
			panic(r)
		}
	}()
	f.settle(eff.Run[eff.Dispatcher, R](f.tree, f.sched.root))
	return f.value, f.err
}

func (f *Future[R]) settle(v R, err error) {
	f.value, f.err = v, err
	f.tree = eff.Tree[R]{}
	f.state = futureDone
	f.sched.pending.Remove(f.id)
}
