// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shopping is the business vocabulary: customer and article
// lookups plus fork/join of sub-computations on a single interpreter.
//
// Fork never evaluates its computation; it returns a [Future]. Join forces
// the future, running the forked tree to completion with the same
// handler, and memoizes the outcome. There is no parallelism: forking
// only changes when the forked operations happen.
package shopping

import (
	"bytes"
	"slices"

	"code.hybscloud.com/eff"
	"code.hybscloud.com/eff/internal/logging"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// GetCustomer is the operation that looks up a customer by id.
type GetCustomer struct {
	eff.Phantom[Customer]
	ID int
}

// DispatchShopping handles GetCustomer in Shopping handler dispatch.
func (o GetCustomer) DispatchShopping(s *Scheduler) (eff.Resumed, error) {
	c, err := s.catalog.Customer(o.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetArticle is the operation that looks up an article by id.
type GetArticle struct {
	eff.Phantom[Article]
	ID int
}

// DispatchShopping handles GetArticle in Shopping handler dispatch.
func (o GetArticle) DispatchShopping(s *Scheduler) (eff.Resumed, error) {
	a, err := s.catalog.Article(o.ID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Fork is the operation that defers Computation and resumes with its
// future.
type Fork[R any] struct {
	eff.Phantom[*Future[R]]
	Computation eff.Tree[R]
}

// DispatchShopping handles Fork in Shopping handler dispatch.
func (o Fork[R]) DispatchShopping(s *Scheduler) (eff.Resumed, error) {
	return spawn(s, o.Computation), nil
}

// Join is the operation that forces Future and resumes with its value.
// A failure of the forked computation is the failure of the Join.
type Join[R any] struct {
	eff.Phantom[R]
	Future *Future[R]
}

// DispatchShopping handles Join in Shopping handler dispatch.
func (o Join[R]) DispatchShopping(*Scheduler) (eff.Resumed, error) {
	if o.Future == nil {
		panic("shopping: join of nil future")
	}
	v, err := o.Future.force()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// JoinAll is the operation that forces every future in order and resumes
// with their values. All futures are forced even when some fail; the
// failures are reported together.
type JoinAll[R any] struct {
	eff.Phantom[[]R]
	Futures []*Future[R]
}

// DispatchShopping handles JoinAll in Shopping handler dispatch.
func (o JoinAll[R]) DispatchShopping(*Scheduler) (eff.Resumed, error) {
	var errs *multierror.Error
	values := make([]R, len(o.Futures))
	for i, f := range o.Futures {
		if f == nil {
			panic("shopping: join of nil future")
		}
		v, err := f.force()
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		values[i] = v
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return values, nil
}

// FetchCustomer looks up a customer as a tree.
func FetchCustomer(id int) eff.Tree[Customer] {
	return eff.Perform(GetCustomer{ID: id})
}

// FetchArticle looks up an article as a tree.
func FetchArticle(id int) eff.Tree[Article] {
	return eff.Perform(GetArticle{ID: id})
}

// Spawn forks t as a tree.
func Spawn[R any](t eff.Tree[R]) eff.Tree[*Future[R]] {
	return eff.Perform(Fork[R]{Computation: t})
}

// Await joins f as a tree.
func Await[R any](f *Future[R]) eff.Tree[R] {
	return eff.Perform(Join[R]{Future: f})
}

// AwaitAll joins every future as a tree.
func AwaitAll[R any](fs ...*Future[R]) eff.Tree[[]R] {
	return eff.Perform(JoinAll[R]{Futures: fs})
}

// Scheduler interprets the Shopping vocabulary, including fork/join.
// It implements eff.Handler for every result type.
type Scheduler struct {
	catalog Catalog
	log     logging.Logger
	pending mapset.Set[uuid.UUID]
	root    eff.Dispatcher
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithCatalog sets the record source. The default is SyntheticCatalog.
func WithCatalog(c Catalog) Option {
	return func(s *Scheduler) { s.catalog = c }
}

// WithLogger sets the logger for fork diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// NewScheduler creates a Shopping handler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		catalog: SyntheticCatalog{},
		log:     logging.Default(),
		pending: mapset.NewThreadUnsafeSet[uuid.UUID](),
	}
	for _, o := range opts {
		o(s)
	}
	s.root = s
	return s
}

// Dispatch implements eff.Handler.
func (s *Scheduler) Dispatch(op eff.Operation) (eff.Resumed, bool, error) {
	if sop, ok := op.(interface {
		DispatchShopping(s *Scheduler) (eff.Resumed, error)
	}); ok {
		v, err := sop.DispatchShopping(s)
		return v, err == nil, err
	}
	return nil, false, eff.Unhandled(op)
}

// Enclose returns a scheduler whose forked computations run through
// root, so they may use every vocabulary of a combined handler. The
// result shares the catalog, logger and pending set of s; s itself keeps
// running forks through itself.
func (s *Scheduler) Enclose(root eff.Dispatcher) eff.Dispatcher {
	e := *s
	e.root = root
	return &e
}

// Pending returns the ids of forked computations that have not been
// joined yet, in a stable order.
func (s *Scheduler) Pending() []uuid.UUID {
	ids := s.pending.ToSlice()
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}

// Run interprets t with a new Scheduler. Forked computations that were
// never joined did not run; they are logged as a warning.
func Run[A any](t eff.Tree[A], opts ...Option) (A, error) {
	s := NewScheduler(opts...)
	a, err := eff.Run(t, s)
	s.reportPending()
	return a, err
}

func (s *Scheduler) reportPending() {
	if n := s.pending.Cardinality(); n > 0 {
		s.log.Warn("forked computations never joined", "count", n)
	}
}

// DSL is the direct-style Shopping vocabulary.
type DSL struct {
	s *eff.Scope
}

// GetCustomer looks up a customer.
func (d *DSL) GetCustomer(id int) Customer {
	return eff.Await(d.s, GetCustomer{ID: id})
}

// GetArticle looks up an article.
func (d *DSL) GetArticle(id int) Article {
	return eff.Await(d.s, GetArticle{ID: id})
}

// ForkIn forks t from a direct-style program.
func ForkIn[R any](d *DSL, t eff.Tree[R]) *Future[R] {
	return eff.Await(d.s, Fork[R]{Computation: t})
}

// JoinIn joins f from a direct-style program.
func JoinIn[R any](d *DSL, f *Future[R]) R {
	return eff.Await(d.s, Join[R]{Future: f})
}

// JoinAllIn joins every future from a direct-style program.
func JoinAllIn[R any](d *DSL, fs ...*Future[R]) []R {
	return eff.Await(d.s, JoinAll[R]{Futures: fs})
}

// NewDSL wraps the scope of a running program.
func NewDSL(s *eff.Scope) *DSL { return &DSL{s: s} }

// Build converts a direct-style Shopping program into a tree.
func Build[A any](program func(*DSL) A, opts ...eff.BuildOption) eff.Tree[A] {
	return eff.Build(NewDSL, program, opts...)
}
