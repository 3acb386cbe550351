// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package fix provides fix subcommand.
package fix

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
	"go.chromium.org/infra/build/hdrguard/hdrscan"
	"go.chromium.org/infra/build/hdrguard/subcmd/internal/hdrflags"
)

const usage = `rewrite include blocks of header files

 $ hdrguard fix [-x <pattern>]... <file or dir>...

For each header file, it replaces the lines from the first #if
up to the first namespace with the canonical include block,
guarded by the symbol derived from the path relative to <dir>.
Project local includes (-local_prefix) are wrapped in #ifndef,
other includes in #if HAVE_<SYMBOL>.

Files with unmatched #if/#endif are reported and left untouched.
`

// Cmd returns the Command for the `fix` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "fix [-x <pattern>]... <file or dir>...",
		ShortDesc: "rewrite include guards and include blocks",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	flags       hdrflags.Flags
	localPrefix string
	checkGuard  bool
	dryRun      bool
	diff        bool
}

func (c *run) init() {
	c.flags.Register(&c.Flags)
	c.Flags.StringVar(&c.localPrefix, "local_prefix", hdrscan.DefaultLocalPrefix, "path prefix of project local includes")
	c.Flags.BoolVar(&c.checkGuard, "check_guard", false, "also report guard defines that don't match the file path")
	c.Flags.BoolVar(&c.dryRun, "n", false, "dry run. report files to update, but don't write them")
	c.Flags.BoolVar(&c.diff, "diff", false, "print unified diff of updated files")
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
	opts := hdrfix.Options{
		Mode:        hdrfix.Rewrite,
		LocalPrefix: c.localPrefix,
		DryRun:      c.dryRun,
		Diff:        c.diff,
		Out:         os.Stdout,
	}
	if c.checkGuard {
		opts.Mode |= hdrfix.CheckGuard
	}
	stats, err := hdrflags.Run(ctx, &c.flags, opts, roots)
	if err != nil {
		return err
	}
	if stats.Updated > 0 {
		log.Infof("%d files updated", stats.Updated)
	}
	return nil
}
