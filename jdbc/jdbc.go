// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package jdbc is a relational-database vocabulary in the style of a
// JDBC template: statements, batch updates and mapped queries.
//
// The vocabulary is Reader-shaped: the handler carries a [Template] as
// its environment and each operation runs against it. Computations are
// therefore plain data until interpreted and can be run against a real
// database or against an in-memory fake.
package jdbc

import (
	"context"

	"code.hybscloud.com/eff"
)

// Row is the current row of a query.
type Row interface {
	Int64(column string) (int64, error)
	String(column string) (string, error)
}

// Template executes statements against a database.
type Template interface {
	Execute(ctx context.Context, query string) error
	BatchUpdate(ctx context.Context, query string, batchArgs [][]any) ([]int64, error)
	// Query calls each for every row, with its zero-based index.
	Query(ctx context.Context, query string, args []any, each func(row Row, n int) error) error
}

// Execute is the operation that runs a statement without results.
type Execute struct {
	eff.Phantom[struct{}]
	SQL string
}

// DispatchJdbc handles Execute in Jdbc handler dispatch.
func (o Execute) DispatchJdbc(ctx context.Context, tmpl Template) (eff.Resumed, error) {
	if err := tmpl.Execute(ctx, o.SQL); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// BatchUpdate is the operation that runs one statement once per
// argument list and resumes with the affected row counts.
type BatchUpdate struct {
	eff.Phantom[[]int64]
	SQL  string
	Args [][]any
}

// DispatchJdbc handles BatchUpdate in Jdbc handler dispatch.
func (o BatchUpdate) DispatchJdbc(ctx context.Context, tmpl Template) (eff.Resumed, error) {
	n, err := tmpl.BatchUpdate(ctx, o.SQL, o.Args)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Query is the operation that runs a query and maps every row with Map.
type Query[T any] struct {
	eff.Phantom[[]T]
	SQL  string
	Args []any
	Map  func(row Row, n int) (T, error)
}

// DispatchJdbc handles Query in Jdbc handler dispatch.
func (o Query[T]) DispatchJdbc(ctx context.Context, tmpl Template) (eff.Resumed, error) {
	var out []T
	err := tmpl.Query(ctx, o.SQL, o.Args, func(row Row, n int) error {
		v, err := o.Map(row, n)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Exec runs a statement as a tree.
func Exec(sql string) eff.Tree[struct{}] {
	return eff.Perform(Execute{SQL: sql})
}

// Batch runs a batch update as a tree.
func Batch(sql string, args [][]any) eff.Tree[[]int64] {
	return eff.Perform(BatchUpdate{SQL: sql, Args: args})
}

// Select runs a mapped query as a tree.
func Select[T any](sql string, args []any, m func(Row, int) (T, error)) eff.Tree[[]T] {
	return eff.Perform(Query[T]{SQL: sql, Args: args, Map: m})
}

// Handler implements eff.Handler for the Jdbc vocabulary.
type Handler[R any] struct {
	ctx  context.Context
	tmpl Template
}

// NewHandler creates a Jdbc handler. Every statement runs with ctx.
func NewHandler[R any](ctx context.Context, tmpl Template) *Handler[R] {
	return &Handler[R]{ctx: ctx, tmpl: tmpl}
}

// Dispatch implements eff.Handler.
func (h *Handler[R]) Dispatch(op eff.Operation) (eff.Resumed, bool, error) {
	if jop, ok := op.(interface {
		DispatchJdbc(ctx context.Context, tmpl Template) (eff.Resumed, error)
	}); ok {
		v, err := jop.DispatchJdbc(h.ctx, h.tmpl)
		return v, err == nil, err
	}
	return nil, false, eff.Unhandled(op)
}

// Run interprets t against tmpl.
func Run[A any](ctx context.Context, t eff.Tree[A], tmpl Template) (A, error) {
	return eff.Run(t, NewHandler[A](ctx, tmpl))
}

// DSL is the direct-style Jdbc vocabulary.
type DSL struct {
	s *eff.Scope
}

// NewDSL wraps the scope of a running program.
func NewDSL(s *eff.Scope) *DSL { return &DSL{s: s} }

// Execute runs a statement.
func (d *DSL) Execute(sql string) {
	eff.Await(d.s, Execute{SQL: sql})
}

// BatchUpdate runs a batch update and returns the affected row counts.
func (d *DSL) BatchUpdate(sql string, args [][]any) []int64 {
	return eff.Await(d.s, BatchUpdate{SQL: sql, Args: args})
}

// QueryIn runs a mapped query from a direct-style program.
func QueryIn[T any](d *DSL, sql string, args []any, m func(Row, int) (T, error)) []T {
	return eff.Await(d.s, Query[T]{SQL: sql, Args: args, Map: m})
}

// Build converts a direct-style Jdbc program into a tree.
func Build[A any](program func(*DSL) A, opts ...eff.BuildOption) eff.Tree[A] {
	return eff.Build(NewDSL, program, opts...)
}
