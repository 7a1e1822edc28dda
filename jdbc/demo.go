// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jdbc

import (
	"context"
	"strings"

	"code.hybscloud.com/eff"
	"code.hybscloud.com/eff/tty"
)

// DemoNames are the customers CustomerDemo inserts.
var DemoNames = []string{"John Woo", "Jeff Dean", "Josh Bloch", "Josh Long"}

// Customer is a row of the customers table.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
}

type demoDSL struct {
	db  *DSL
	out *tty.DSL
}

// CustomerDemo recreates the customers table, inserts DemoNames, and
// selects the customers with the given first name. Each selected
// customer is also written as a tty line, so the tree needs a handler
// combining the Jdbc and Tty vocabularies.
func CustomerDemo(firstName string) eff.Tree[[]Customer] {
	vocab := func(s *eff.Scope) demoDSL {
		return demoDSL{db: NewDSL(s), out: tty.NewDSL(s)}
	}
	return eff.Build(vocab, func(d demoDSL) []Customer {
		d.db.Execute("DROP TABLE IF EXISTS customers")
		d.db.Execute("CREATE TABLE customers(id SERIAL, first_name VARCHAR(255), last_name VARCHAR(255))")

		args := make([][]any, 0, len(DemoNames))
		for _, name := range DemoNames {
			first, last, _ := strings.Cut(name, " ")
			args = append(args, []any{first, last})
		}
		d.db.BatchUpdate("INSERT INTO customers(first_name, last_name) VALUES (?,?)", args)

		customers := QueryIn(d.db,
			"SELECT id, first_name, last_name FROM customers WHERE first_name = ?",
			[]any{firstName}, scanCustomer)
		for _, c := range customers {
			d.out.Writef("%+v", c)
		}
		return customers
	})
}

func scanCustomer(row Row, _ int) (Customer, error) {
	id, err := row.Int64("id")
	if err != nil {
		return Customer{}, err
	}
	first, err := row.String("first_name")
	if err != nil {
		return Customer{}, err
	}
	last, err := row.String("last_name")
	if err != nil {
		return Customer{}, err
	}
	return Customer{ID: id, FirstName: first, LastName: last}, nil
}

// RunDemo interprets a CustomerDemo tree against tmpl, writing customer
// lines to sink.
func RunDemo[A any](ctx context.Context, t eff.Tree[A], tmpl Template, sink tty.Sink) (A, error) {
	h := eff.Combine[A](NewHandler[A](ctx, tmpl), tty.NewHandler[A](sink))
	return eff.Run(t, h)
}
