// Package lifecycle wires the trust, catalog, transport, state, installer,
// manifest, and proxy packages together into the operations the CLI
// surface calls: install, remove, clean, verify, archive, and link.
package lifecycle

import (
	"os"
	"path/filepath"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
	"github.com/ferrocene/criticalup/internal/state"
	"github.com/ferrocene/criticalup/internal/transport"
	"github.com/ferrocene/criticalup/internal/trust"
)

// Core holds every dependency an operation needs. Callers construct one
// per invocation of the CLI.
type Core struct {
	StateRoot  string
	ProxyDir   string
	HostTriple string

	Client     *transport.Client
	Cache      *transport.Cache
	Keychain   *trust.Keychain
	Revocation *trust.RevocationLedger

	// ManifestURL builds the release manifest URL for (product, release).
	ManifestURL func(product, release string) string
}

func (c *Core) store() (*state.Store[state.Document], error) {
	return state.NewStore[state.Document](c.StateRoot)
}

// withLock acquires the store's exclusive lock, loads the document, runs
// fn, and — only if fn succeeds — saves the document back before
// releasing the lock.
func withLock(st *state.Store[state.Document], fn func(doc *state.Document) error) error {
	if err := st.Lock(); err != nil {
		return err
	}
	defer st.Unlock()

	doc, err := st.Load()
	if err != nil {
		return err
	}
	if doc.Version == "" {
		doc = state.NewDocument()
	}
	if err := fn(doc); err != nil {
		return err
	}
	return st.Save(doc)
}

func (c *Core) installDirFor(id state.InstallationID) string {
	return filepath.Join(c.StateRoot, state.ToolchainsDir, string(id))
}

// selfPath resolves the currently running executable's path, the source
// a proxy directory entry is hard-linked or copied from.
func selfPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

// resolveBinding looks up the installation bound to canonical, the
// project-scoped (not proxy-dispatch) equivalent of proxy.Resolve.
func resolveBinding(doc *state.Document, canonical string) (state.InstallationID, *state.InstallationRecord, error) {
	id, ok := doc.Bindings[canonical]
	if !ok {
		return "", nil, criticalerrors.NewMissingBindingError(canonical)
	}
	rec, ok := doc.Installations[id]
	if !ok {
		return "", nil, criticalerrors.NewMissingBindingError(canonical)
	}
	return id, rec, nil
}
