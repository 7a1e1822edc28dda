// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"code.hybscloud.com/eff"
	"code.hybscloud.com/eff/jdbc"
	"code.hybscloud.com/eff/shopping"
	"code.hybscloud.com/eff/tty"
	"github.com/jedib0t/go-pretty/v6/table"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"
)

func runTty(ctx context.Context, cmd *cli.Command) error {
	if _, err := setupLogger(cmd, "tty"); err != nil {
		return err
	}
	n, lines, err := tty.Output(tty.Build(func(d *tty.DSL) int {
		d.Write("foo")
		d.Write("bar")
		return 5
	}))
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Tty")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"#", "line"})
	for i, l := range lines {
		tbl.AppendRow(table.Row{i + 1, l})
	}
	tbl.AppendFooter(table.Row{"result", n})
	tbl.Render()
	return nil
}

type shopDSL struct {
	shop *shopping.DSL
	out  *tty.DSL
}

func runShop(ctx context.Context, cmd *cli.Command) error {
	l, err := setupLogger(cmd, "shop")
	if err != nil {
		return err
	}
	customerID, articleID := int(cmd.Int(customerKey)), int(cmd.Int(articleKey))

	tbl := table.NewWriter()
	tbl.SetTitle("Fork/Join")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"program", "result"})

	explicit, err := shopping.Run(shopping.Example(), shopping.WithLogger(l))
	if err != nil {
		return err
	}
	tbl.AppendRow(table.Row{"explicit tree", explicit})

	direct, err := shopping.Run(shopping.ExampleDSL(), shopping.WithLogger(l))
	if err != nil {
		return err
	}
	tbl.AppendRow(table.Row{"direct style", direct})

	// Forked lookups also write through the tty vocabulary, which only the
	// combined handler can dispatch.
	vocab := func(s *eff.Scope) shopDSL {
		return shopDSL{shop: shopping.NewDSL(s), out: tty.NewDSL(s)}
	}
	order := eff.Build(vocab, func(d shopDSL) string {
		cf := shopping.ForkIn(d.shop, eff.Build(vocab, func(d shopDSL) shopping.Customer {
			d.out.Writef("looking up customer %d", customerID)
			return d.shop.GetCustomer(customerID)
		}))
		af := shopping.ForkIn(d.shop, eff.Build(vocab, func(d shopDSL) shopping.Article {
			d.out.Writef("looking up article %d", articleID)
			return d.shop.GetArticle(articleID)
		}))
		d.out.Write("forked")
		c := shopping.JoinIn(d.shop, cf)
		a := shopping.JoinIn(d.shop, af)
		return fmt.Sprintf("%s %s ordered %s", c.FirstName, c.LastName, a.Name)
	})
	sched := shopping.NewScheduler(shopping.WithLogger(l))
	h := eff.Combine[string](sched, tty.NewHandler[string](tty.NewWriterSink(os.Stdout, tty.WithPrefix("shop> "))))
	combined, err := eff.Run(order, h)
	if err != nil {
		return err
	}
	tbl.AppendRow(table.Row{"combined", combined})
	tbl.Render()
	return nil
}

func runJdbc(ctx context.Context, cmd *cli.Command) error {
	l, err := setupLogger(cmd, "jdbc")
	if err != nil {
		return err
	}
	db, err := sql.Open("postgres", cmd.String(dsnKey))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	customers, err := jdbc.RunDemo(ctx, jdbc.CustomerDemo(cmd.String(firstNameKey)),
		jdbc.NewSQLTemplate(db), tty.NewWriterSink(os.Stdout, tty.WithPrefix("customer: ")))
	if err != nil {
		return err
	}
	l.Info("customers selected", "count", len(customers))
	return nil
}
