// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jdbc

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Placeholder selects how positional parameters are spelled.
type Placeholder int

const (
	// Dollar rewrites ? parameters to $1, $2, ... (PostgreSQL).
	Dollar Placeholder = iota
	// Question leaves ? parameters as they are.
	Question
)

// Rebind rewrites the ? parameters of query for p. Question marks inside
// single-quoted literals and double-quoted identifiers are left alone.
// Operators spelled with a question mark, such as the jsonb ?| and ?&
// of PostgreSQL, are rewritten too; queries using them must be written
// with $n parameters and run with Question.
func Rebind(p Placeholder, query string) string {
	if p != Dollar || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// SQLTemplate is a Template over database/sql.
type SQLTemplate struct {
	db          *sql.DB
	placeholder Placeholder
}

// TemplateOption configures an SQLTemplate.
type TemplateOption func(*SQLTemplate)

// WithPlaceholder sets the parameter syntax of the driver.
// The default is Dollar.
func WithPlaceholder(p Placeholder) TemplateOption {
	return func(t *SQLTemplate) { t.placeholder = p }
}

// NewSQLTemplate creates a Template over db.
func NewSQLTemplate(db *sql.DB, opts ...TemplateOption) *SQLTemplate {
	t := &SQLTemplate{db: db, placeholder: Dollar}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *SQLTemplate) Execute(ctx context.Context, query string) error {
	_, err := t.db.ExecContext(ctx, Rebind(t.placeholder, query))
	return err
}

// BatchUpdate runs every argument list in one transaction.
func (t *SQLTemplate) BatchUpdate(ctx context.Context, query string, batchArgs [][]any) (counts []int64, err error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, Rebind(t.placeholder, query))
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	counts = make([]int64, len(batchArgs))
	for i, args := range batchArgs {
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return nil, fmt.Errorf("batch entry %d: %w", i, err)
		}
		if counts[i], err = res.RowsAffected(); err != nil {
			return nil, err
		}
	}
	return counts, tx.Commit()
}

func (t *SQLTemplate) Query(ctx context.Context, query string, args []any, each func(Row, int) error) error {
	rows, err := t.db.QueryContext(ctx, Rebind(t.placeholder, query), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	r := &sqlRow{index: make(map[string]int, len(cols)), values: make([]any, len(cols))}
	for i, c := range cols {
		r.index[c] = i
	}
	ptrs := make([]any, len(cols))
	for i := range r.values {
		ptrs[i] = &r.values[i]
	}
	for n := 0; rows.Next(); n++ {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		if err := each(r, n); err != nil {
			return err
		}
	}
	return rows.Err()
}

// sqlRow is a Row over the scanned values of the current result row.
type sqlRow struct {
	index  map[string]int
	values []any
}

func (r *sqlRow) value(column string) (any, error) {
	i, ok := r.index[column]
	if !ok {
		return nil, fmt.Errorf("jdbc: no column %q", column)
	}
	return r.values[i], nil
}

func (r *sqlRow) Int64(column string) (int64, error) {
	v, err := r.value(column)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int64:
		return v, nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	}
	return 0, fmt.Errorf("jdbc: column %q is %T, not an integer", column, v)
}

func (r *sqlRow) String(column string) (string, error) {
	v, err := r.value(column)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	}
	return fmt.Sprint(v), nil
}
