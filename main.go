// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// hdrguard checks and fixes include guards and include blocks of
// C/C++ header files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	log "github.com/golang/glog"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/hdrguard/subcmd/check"
	"go.chromium.org/infra/build/hdrguard/subcmd/fix"
	"go.chromium.org/infra/build/hdrguard/subcmd/help"
	"go.chromium.org/infra/build/hdrguard/subcmd/version"
)

const hdrguardVersion = "v0.1.0"

func commands() []*subcommands.Command {
	return []*subcommands.Command{
		fix.Cmd(),
		check.Cmd(),
		help.Cmd(),
		version.Cmd(hdrguardVersion),
	}
}

func getApplication(ctx context.Context, cmds []*subcommands.Command) *cli.Application {
	return &cli.Application{
		Name:  "hdrguard",
		Title: "tool to check and fix include guards of header files",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: cmds,
	}
}

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "global flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	os.Exit(hdrguardMain(context.Background(), commands(), flag.Args(), os.Stderr))
}

// hdrguardMain runs the subcommand of cmds selected by args, and returns
// exit code.
// A panic is reported to stderr with its stack trace, and exits with 2.
func hdrguardMain(ctx context.Context, cmds []*subcommands.Command, args []string, stderr io.Writer) (exitCode int) {
	ctx, cancel := context.WithCancel(ctx)
	defer signals.HandleInterrupt(cancel)()

	// Flush the log on exit to not lose any messages.
	defer log.Flush()

	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			fmt.Fprintf(stderr, "%s: panic: %v\n%s", os.Args[0], r, buf)
			log.Errorf("panic: %v\n%s", r, buf)
			exitCode = 2
		}
	}()

	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		log.Infof("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
	}
	return subcommands.Run(getApplication(ctx, cmds), args)
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
