// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"code.hybscloud.com/eff"
	"code.hybscloud.com/eff/reader"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

type chain struct {
	name  string
	build func(ops int) eff.Tree[int]
}

var chains = []chain{
	{"explicit, left-nested", leftNested},
	{"explicit, right-nested", rightNested},
	{"direct style", directStyle},
}

// leftNested is ((ask >>= k) >>= k) >>= ...
func leftNested(ops int) eff.Tree[int] {
	t := eff.Pure(0)
	for range ops {
		t = eff.Bind(t, func(acc int) eff.Tree[int] {
			return eff.Map(reader.AskFor[int](), func(e int) int { return acc + e })
		})
	}
	return t
}

// rightNested is ask >>= (\_ -> ask >>= (\_ -> ...)), built lazily.
func rightNested(ops int) eff.Tree[int] {
	var loop func(n, acc int) eff.Tree[int]
	loop = func(n, acc int) eff.Tree[int] {
		if n == 0 {
			return eff.Pure(acc)
		}
		return eff.Suspend(reader.Ask[int]{}, func(e int) eff.Tree[int] {
			return loop(n-1, acc+e)
		})
	}
	return loop(ops, 0)
}

func directStyle(ops int) eff.Tree[int] {
	return reader.Build(func(d *reader.DSL[int]) int {
		acc := 0
		for range ops {
			acc += d.Ask()
		}
		return acc
	})
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	l, err := setupLogger(cmd, "bench")
	if err != nil {
		return err
	}
	ops, iters := int(cmd.Int(opsKey)), int(cmd.Int(iterationsKey))
	if ops <= 0 || iters <= 0 {
		return fmt.Errorf("--%s and --%s must be positive", opsKey, iterationsKey)
	}

	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("%s operations per run", humanize.Comma(int64(ops))))
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"chain", "avg", "min", "p75", "p99", "max", "ops/s"})

	for _, c := range chains {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		for range iters {
			t := c.build(ops)
			start := time.Now()
			got, err := reader.Run(t, 1)
			tach.AddTime(time.Since(start))
			if err != nil {
				return err
			}
			if got != ops {
				return fmt.Errorf("%s: got %d, want %d", c.name, got, ops)
			}
		}
		calc := tach.Calc()
		rate := float64(ops) / calc.Time.Avg.Seconds()
		tbl.AppendRow(table.Row{
			c.name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
			humanize.Comma(int64(rate)),
		})
		l.Debug("chain timed", "chain", c.name, "runs", iters)
	}
	tbl.Render()
	return nil
}
