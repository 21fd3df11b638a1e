// Package hosttriple computes the compiler-ecosystem target triple
// identifying the running host (spec's "Host triple": e.g.
// x86_64-unknown-linux-gnu), used to expand ${host-triple} tokens in
// project manifest package names.
package hosttriple

import (
	"fmt"
	"runtime"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// Detect returns the host triple for the running process's GOOS/GOARCH
// pair, or a configuration error if the combination has no known triple.
func Detect() (string, error) {
	return triple(runtime.GOOS, runtime.GOARCH)
}

func triple(goos, goarch string) (string, error) {
	arch, ok := archComponent(goarch)
	if !ok {
		return "", unsupportedPlatformError(goarch)
	}

	switch goos {
	case "linux":
		return arch + "-unknown-linux-gnu", nil
	case "darwin":
		return arch + "-apple-darwin", nil
	case "windows":
		return arch + "-pc-windows-msvc", nil
	default:
		return "", unsupportedPlatformError(goos)
	}
}

func unsupportedPlatformError(component string) *criticalerrors.Error {
	return criticalerrors.New(criticalerrors.CategoryConfiguration,
		fmt.Sprintf("unsupported platform: no known host triple for %q", component))
}

func archComponent(goarch string) (string, bool) {
	switch goarch {
	case "amd64":
		return "x86_64", true
	case "arm64":
		return "aarch64", true
	default:
		return "", false
	}
}
