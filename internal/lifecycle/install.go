package lifecycle

import (
	"context"
	"fmt"

	"github.com/ferrocene/criticalup/internal/installer"
	"github.com/ferrocene/criticalup/internal/manifest"
	"github.com/ferrocene/criticalup/internal/proxy"
	"github.com/ferrocene/criticalup/internal/state"
)

// InstallOptions tunes a single Install call.
type InstallOptions struct {
	Reinstall bool
	Offline   bool
}

// Install resolves manifestPath's single product, acquires and stages its
// packages, commits the installation, and regenerates the proxy directory.
// It follows spec §4.5's resolve/plan/acquire/stage/commit/proxies pipeline
// exactly, reusing an existing installation by binding alone unless
// Reinstall is set.
func (c *Core) Install(ctx context.Context, manifestPath string, opts InstallOptions) error {
	canonical, err := manifest.CanonicalPath(manifestPath)
	if err != nil {
		return fmt.Errorf("lifecycle: canonicalizing project manifest: %w", err)
	}
	doc, err := manifest.Parse(manifestPath)
	if err != nil {
		return err
	}
	product, p := doc.Product()
	manifestURL := c.ManifestURL(product, p.Release)

	instOpts := installer.Options{Offline: opts.Offline, Force: opts.Reinstall}

	rm, pkgs, err := installer.Resolve(ctx, c.Client, c.Cache, c.Keychain, manifestURL, p.Packages, c.HostTriple, instOpts)
	if err != nil {
		return err
	}
	id := installer.Plan(product, p.Release, pkgs)

	st, err := c.store()
	if err != nil {
		return err
	}

	return withLock(st, func(sd *state.Document) error {
		if existing, ok := installer.Existing(sd, id); ok && !opts.Reinstall {
			return c.bindAndSync(sd, id, existing, canonical)
		}

		stagingDir, err := state.BeginInstall(c.StateRoot)
		if err != nil {
			return err
		}

		acquired, err := installer.Acquire(ctx, c.Client, c.Cache, c.Revocation, pkgs, instOpts)
		if err != nil {
			_ = state.AbandonInstall(stagingDir)
			return err
		}

		files, err := installer.Stage(stagingDir, acquired)
		if err != nil {
			_ = state.AbandonInstall(stagingDir)
			return err
		}

		digests := make([]string, len(pkgs))
		for i, pkg := range pkgs {
			digests[i] = pkg.Digest()
		}

		if err := installer.Commit(sd, c.StateRoot, id, stagingDir, rm.Product, rm.Release, digests, files, canonical); err != nil {
			_ = state.AbandonInstall(stagingDir)
			return err
		}

		return c.syncProxies(sd)
	})
}

// bindAndSync points manifestPath's binding at an already-committed
// installation and regenerates the proxy directory; no acquisition or
// staging is needed.
func (c *Core) bindAndSync(doc *state.Document, id state.InstallationID, _ *state.InstallationRecord, canonical string) error {
	if doc.Bindings == nil {
		doc.Bindings = make(map[string]state.InstallationID)
	}
	doc.Bindings[canonical] = id
	return c.syncProxies(doc)
}

// syncProxies recomputes proxy/bin with one proxy per file recorded by a
// surviving, bound installation, named by that file's invoked name.
// Recorded files are not filtered by whether they are executable.
func (c *Core) syncProxies(doc *state.Document) error {
	names := make(map[string]struct{})
	for _, id := range doc.Bindings {
		rec, ok := doc.Installations[id]
		if !ok {
			continue
		}
		for rel := range rec.Files {
			names[proxy.InvokedName(rel)] = struct{}{}
		}
	}
	self, err := selfPath()
	if err != nil {
		return err
	}
	return proxy.Sync(c.ProxyDir, self, names)
}
