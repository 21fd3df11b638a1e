package proxy

import (
	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
	"github.com/ferrocene/criticalup/internal/state"
)

// Resolve looks up the installation bound to manifestPath in doc.
func Resolve(doc *state.Document, invoked, manifestPath string) (state.InstallationID, *state.InstallationRecord, error) {
	id, ok := doc.Bindings[manifestPath]
	if !ok {
		return "", nil, criticalerrors.NewToolchainNotInstalledError(invoked)
	}
	rec, ok := doc.Installations[id]
	if !ok {
		return "", nil, criticalerrors.NewToolchainNotInstalledError(invoked)
	}
	return id, rec, nil
}
