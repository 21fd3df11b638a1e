package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ferrocene/criticalup/internal/errors"
	"github.com/ferrocene/criticalup/internal/lifecycle"
	"github.com/ferrocene/criticalup/internal/proxy"
)

// ownName is the invoked-name criticalup answers to as itself; every
// other invoked name is dispatched as a proxied toolchain binary, since
// the same executable is hardlinked/copied under each exported tool name
// (internal/proxy.Sync).
const ownName = "criticalup"

func main() {
	os.Exit(run())
}

func run() int {
	invoked := proxy.InvokedName(os.Args[0])
	if invoked == ownName || invoked == "" {
		return runCLI()
	}
	return runProxy(invoked)
}

func runCLI() int {
	if err := newRootCommand().Execute(); err != nil {
		printError(err)
		return 1
	}
	return 0
}

func runProxy(invoked string) int {
	flags := globalFlags{
		server:  os.Getenv("CRITICALUP_SERVER"),
		rootKey: os.Getenv("CRITICALUP_ROOT_KEY"),
	}
	core, err := buildCore(&flags)
	if err != nil {
		printError(err)
		return 1
	}

	workDir, err := os.Getwd()
	if err != nil {
		printError(err)
		return 1
	}

	err = core.Run(context.Background(), workDir, invoked, os.Args[1:], os.Environ(), lifecycle.RunOptions{})
	if err != nil {
		printError(err)
		return 1
	}
	return 0
}

func printError(err error) {
	f := errors.NewFormatter(os.Stderr, noColorOutput)
	fmt.Fprint(os.Stderr, f.Format(err))
}
