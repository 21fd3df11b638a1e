//go:build windows

package proxy

import (
	"context"
	"os"
	"os/exec"
)

// exec has no process-replacement equivalent on Windows, so it spawns
// the child, waits, and forwards stdio and the exit code.
func exec(ctx context.Context, path string, args []string, env []string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	return nil
}
