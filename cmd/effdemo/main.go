// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command effdemo runs the example programs of the effect runtime and
// benchmarks its interpreter.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"code.hybscloud.com/eff/internal/logging"
	"github.com/urfave/cli/v3"
)

const (
	logLevelKey   = "log-level"
	logFormatKey  = "log-format"
	opsKey        = "ops"
	iterationsKey = "iterations"
	dsnKey        = "dsn"
	firstNameKey  = "first-name"
	customerKey   = "customer"
	articleKey    = "article"
)

func main() {
	cmd := &cli.Command{
		Name:  "effdemo",
		Usage: "Run effect tree examples",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  logLevelKey,
				Usage: "Log level: debug, info, warn or error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  logFormatKey,
				Usage: "Log format: text or json",
				Value: "text",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "tty",
				Usage:  "Run the output program and show what it wrote",
				Action: runTty,
			},
			{
				Name:  "shop",
				Usage: "Run the fork/join shopping programs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: customerKey, Usage: "Customer id", Value: 1},
					&cli.IntFlag{Name: articleKey, Usage: "Article id", Value: 1},
				},
				Action: runShop,
			},
			{
				Name:  "bench",
				Usage: "Time long operation chains, explicit and direct-style",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: opsKey, Usage: "Operations per chain", Value: 100_000},
					&cli.IntFlag{Name: iterationsKey, Usage: "Timed runs per chain", Value: 20},
				},
				Action: runBench,
			},
			{
				Name:  "jdbc",
				Usage: "Run the customers program against PostgreSQL",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: dsnKey, Usage: "PostgreSQL connection string", Required: true},
					&cli.StringFlag{Name: firstNameKey, Usage: "First name to select", Value: "Josh"},
				},
				Action: runJdbc,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// setupLogger installs the logger configured by the global flags as the
// process default and returns it.
func setupLogger(cmd *cli.Command, component string) (logging.Logger, error) {
	level, ok := logging.ParseLevel(cmd.String(logLevelKey))
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", cmd.String(logLevelKey))
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = cmd.String(logFormatKey)
	cfg.Component = component
	l := logging.New(cfg)
	logging.SetDefault(l)
	return l, nil
}
