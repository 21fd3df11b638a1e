// Package proxy implements the dispatcher side of a proxy binary: given
// the name it was invoked under, find the controlling project, resolve
// it to an installed toolchain, and exec the matching real binary.
package proxy

import (
	"path/filepath"
	"runtime"
	"strings"
)

// InvokedName returns the basename of argv0 with the platform's
// executable suffix stripped, so "rustc" and "rustc.exe" both resolve
// the same way.
func InvokedName(argv0 string) string {
	name := filepath.Base(argv0)
	if runtime.GOOS == "windows" {
		name = strings.TrimSuffix(name, ".exe")
	}
	return name
}
