// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jdbc_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"code.hybscloud.com/eff"
	"code.hybscloud.com/eff/jdbc"
	"code.hybscloud.com/eff/tty"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTemplate is an in-memory customers table that understands exactly
// the statements of CustomerDemo.
type memTemplate struct {
	statements []string
	rows       []map[string]any
	nextID     int64
	failOn     string
}

func (m *memTemplate) check(query string) error {
	m.statements = append(m.statements, query)
	if m.failOn != "" && strings.HasPrefix(query, m.failOn) {
		return errors.New("statement rejected")
	}
	return nil
}

func (m *memTemplate) Execute(_ context.Context, query string) error {
	if err := m.check(query); err != nil {
		return err
	}
	if strings.HasPrefix(query, "DROP") || strings.HasPrefix(query, "CREATE") {
		m.rows, m.nextID = nil, 0
	}
	return nil
}

func (m *memTemplate) BatchUpdate(_ context.Context, query string, batchArgs [][]any) ([]int64, error) {
	if err := m.check(query); err != nil {
		return nil, err
	}
	counts := make([]int64, len(batchArgs))
	for i, args := range batchArgs {
		m.nextID++
		m.rows = append(m.rows, map[string]any{"id": m.nextID, "first_name": args[0], "last_name": args[1]})
		counts[i] = 1
	}
	return counts, nil
}

func (m *memTemplate) Query(_ context.Context, query string, args []any, each func(jdbc.Row, int) error) error {
	if err := m.check(query); err != nil {
		return err
	}
	n := 0
	for _, r := range m.rows {
		if r["first_name"] != args[0] {
			continue
		}
		if err := each(memRow(r), n); err != nil {
			return err
		}
		n++
	}
	return nil
}

type memRow map[string]any

func (r memRow) Int64(c string) (int64, error) {
	v, ok := r[c].(int64)
	if !ok {
		return 0, fmt.Errorf("column %q is not an integer", c)
	}
	return v, nil
}

func (r memRow) String(c string) (string, error) {
	v, ok := r[c].(string)
	if !ok {
		return "", fmt.Errorf("column %q is not a string", c)
	}
	return v, nil
}

func TestCustomerDemo(t *testing.T) {
	ctx := context.Background()
	tmpl := &memTemplate{}
	var rec tty.Recorder

	tree := jdbc.CustomerDemo("Josh")
	assert.Empty(t, tmpl.statements, "building the program ran a statement")

	got, err := jdbc.RunDemo(ctx, tree, tmpl, &rec)
	require.NoError(t, err)

	want := []jdbc.Customer{
		{ID: 3, FirstName: "Josh", LastName: "Bloch"},
		{ID: 4, FirstName: "Josh", LastName: "Long"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("customers mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, tmpl.statements, 4)
	assert.Equal(t, []string{
		"{ID:3 FirstName:Josh LastName:Bloch}",
		"{ID:4 FirstName:Josh LastName:Long}",
	}, rec.Lines())
}

func TestCustomerDemoNeedsTty(t *testing.T) {
	_, err := jdbc.Run(context.Background(), jdbc.CustomerDemo("Josh"), &memTemplate{})
	require.ErrorIs(t, err, eff.ErrUnhandled)
}

func TestStatementFailureStops(t *testing.T) {
	tmpl := &memTemplate{failOn: "INSERT"}
	var rec tty.Recorder
	_, err := jdbc.RunDemo(context.Background(), jdbc.CustomerDemo("Josh"), tmpl, &rec)
	require.Error(t, err)
	var de *eff.DispatchError
	require.ErrorAs(t, err, &de)
	assert.IsType(t, jdbc.BatchUpdate{}, de.Op)
	assert.Len(t, tmpl.statements, 3, "no statement after the failed one")
	assert.Empty(t, rec.Lines())
}

func TestExplicitTree(t *testing.T) {
	tmpl := &memTemplate{}
	tree := eff.Then(jdbc.Exec("CREATE TABLE customers"),
		eff.Bind(jdbc.Batch("INSERT", [][]any{{"Ada", "Lovelace"}}), func(n []int64) eff.Tree[[]string] {
			return jdbc.Select("SELECT", []any{"Ada"}, func(r jdbc.Row, i int) (string, error) {
				last, err := r.String("last_name")
				return fmt.Sprintf("%d:%s:%d", i, last, n[0]), err
			})
		}))
	got, err := jdbc.Run(context.Background(), tree, tmpl)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"0:Lovelace:1"}, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRowMapperFailure(t *testing.T) {
	tmpl := &memTemplate{}
	tmpl.rows = []map[string]any{{"id": "not a number", "first_name": "Josh"}}
	tree := jdbc.Build(func(d *jdbc.DSL) []int64 {
		return jdbc.QueryIn(d, "SELECT", []any{"Josh"}, func(r jdbc.Row, _ int) (int64, error) {
			return r.Int64("id")
		})
	})
	_, err := jdbc.Run(context.Background(), tree, tmpl)
	assert.ErrorContains(t, err, "not an integer")
}

func TestRebind(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"INSERT INTO t(a, b) VALUES (?,?)", "INSERT INTO t(a, b) VALUES ($1,$2)"},
		{"SELECT * FROM t WHERE a = ? AND b = '?'", "SELECT * FROM t WHERE a = $1 AND b = '?'"},
		{`SELECT "what?" FROM t WHERE a = ?`, `SELECT "what?" FROM t WHERE a = $1`},
		{`SELECT 'it''s ?', "a'b" FROM t WHERE c = ? AND d = ?`, `SELECT 'it''s ?', "a'b" FROM t WHERE c = $1 AND d = $2`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, jdbc.Rebind(jdbc.Dollar, c.in))
		assert.Equal(t, c.in, jdbc.Rebind(jdbc.Question, c.in))
	}
}
