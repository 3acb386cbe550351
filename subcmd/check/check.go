// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package check provides check subcommand.
package check

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/hdrguard/hdrfix"
	"go.chromium.org/infra/build/hdrguard/subcmd/internal/hdrflags"
)

const usage = `check include guards of header files

 $ hdrguard check [-x <pattern>]... <file or dir>...

Reports header files whose #if/#endif are unmatched, and
header files whose guard #define doesn't match the symbol
derived from the path relative to <dir>
(e.g. foo/bar.h -> FOO_BAR_H).
It never modifies files.
`

// Cmd returns the Command for the `check` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "check [-x <pattern>]... <file or dir>...",
		ShortDesc: "report include guard mismatches",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.flags.Register(&c.Flags)
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	flags hdrflags.Flags
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			log.Errorf("%v", err)
		}
		return 2
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	roots, err := hdrflags.Parse(&c.Flags, args)
	if err != nil {
		return err
	}
	stats, err := hdrflags.Run(ctx, &c.flags, hdrfix.Options{
		Mode: hdrfix.CheckGuard,
		Out:  os.Stdout,
	}, roots)
	if err != nil {
		return err
	}
	if n := stats.Unmatched + stats.Mismatched; n > 0 {
		log.Warnf("%d of %d files have problems", n, stats.Files)
	}
	return nil
}
