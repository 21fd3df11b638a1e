package lifecycle

import (
	"context"
	"path/filepath"

	"github.com/ferrocene/criticalup/internal/proxy"
	"github.com/ferrocene/criticalup/internal/state"
)

// locate runs the proxy dispatcher's discover/resolve/locate stages for
// name invoked from workDir and returns the resolved installation id and
// binary path.
func (c *Core) locate(workDir, name string) (state.InstallationID, string, error) {
	manifestPath, err := proxy.Discover(name, workDir)
	if err != nil {
		return "", "", err
	}

	st, err := c.store()
	if err != nil {
		return "", "", err
	}
	doc, err := st.LoadReadOnly()
	if err != nil {
		return "", "", err
	}

	id, _, err := proxy.Resolve(doc, name, manifestPath)
	if err != nil {
		return "", "", err
	}
	path, err := proxy.Locate(c.installDirFor(id), name, name)
	if err != nil {
		return "", "", err
	}
	return id, path, nil
}

// Which runs the proxy dispatcher's discover/resolve/locate stages for
// name invoked from workDir and returns the resolved binary path without
// executing it.
func (c *Core) Which(_ context.Context, workDir, name string) (string, error) {
	_, path, err := c.locate(workDir, name)
	return path, err
}

// RunOptions tunes a single Run dispatch.
type RunOptions struct {
	// Strict restricts the child's PATH to the installation's binary
	// directory instead of prepending it to the inherited PATH.
	Strict bool
}

// Run discovers the controlling project for name invoked from workDir,
// resolves it to an installed toolchain, locates the matching binary, and
// replaces (or, where unavailable, spawns and waits for) the current
// process with it.
func (c *Core) Run(ctx context.Context, workDir, name string, args, env []string, opts RunOptions) error {
	_, path, err := c.locate(workDir, name)
	if err != nil {
		return err
	}

	binDir := filepath.Dir(path)
	childEnv := proxy.Env(env, binDir, opts.Strict)
	return proxy.Exec(ctx, path, args, childEnv)
}
