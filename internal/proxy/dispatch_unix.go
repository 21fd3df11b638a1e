//go:build !windows

package proxy

import (
	"context"
	"syscall"
)

// exec replaces the current process image, matching the spec's "replace
// the current process" dispatch semantics exactly on platforms where the
// exec(2) syscall is available.
func exec(_ context.Context, path string, args []string, env []string) error {
	argv := append([]string{path}, args...)
	return syscall.Exec(path, argv, env)
}
