package state

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// ToolchainsDir holds committed installations; StagingDir, nested inside
// it, holds in-progress ones not yet linked into the state document.
const (
	ToolchainsDir = "toolchains"
	StagingDir    = ".staging"
)

// BeginInstall reserves a staging directory for a new installation,
// outside the final toolchains/<id> path so a crash mid-install never
// leaves a partial tree at a path Collect or a later install might
// mistake for real.
func BeginInstall(stateRoot string) (string, error) {
	dir := filepath.Join(stateRoot, ToolchainsDir, StagingDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("state: reserving staging directory: %w", err)
	}
	return dir, nil
}

// AbandonInstall removes a staging directory allocated by BeginInstall,
// for use when acquisition or staging fails before Commit.
func AbandonInstall(stagingDir string) error {
	return os.RemoveAll(stagingDir)
}

// CommitInstall moves stagingDir into its final location under
// ToolchainsDir, then records the installation and its originating
// binding in doc. It is the caller's responsibility to hold the store
// lock and Save doc afterward.
//
// If a directory already occupies the destination — Commit retried
// after a crash, or a concurrent install raced to the same content
// digest — it is displaced to a UUID-suffixed sibling first, so the
// rename into place never has to overwrite an existing directory (the
// one rename Windows refuses to do atomically), and the displaced
// sibling is removed only once the new one is safely in place.
func CommitInstall(doc *Document, stateRoot string, id InstallationID, stagingDir string, rec *InstallationRecord, manifestPath string) error {
	finalDir := filepath.Join(stateRoot, ToolchainsDir, string(id))

	if _, err := os.Stat(finalDir); err == nil {
		displaced := finalDir + "." + uuid.NewString() + ".bak"
		if err := os.Rename(finalDir, displaced); err != nil {
			return fmt.Errorf("state: displacing existing installation %s: %w", id, err)
		}
		if err := os.Rename(stagingDir, finalDir); err != nil {
			_ = os.Rename(displaced, finalDir)
			return fmt.Errorf("state: committing installation %s: %w", id, err)
		}
		if err := os.RemoveAll(displaced); err != nil {
			slog.Warn("failed to remove displaced installation directory", "dir", displaced, "error", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(finalDir), 0o755); err != nil {
			return fmt.Errorf("state: preparing toolchains directory: %w", err)
		}
		if err := os.Rename(stagingDir, finalDir); err != nil {
			return fmt.Errorf("state: committing installation %s: %w", id, err)
		}
	}

	if doc.Installations == nil {
		doc.Installations = make(map[InstallationID]*InstallationRecord)
	}
	if doc.Bindings == nil {
		doc.Bindings = make(map[string]InstallationID)
	}
	doc.Installations[id] = rec
	doc.Bindings[manifestPath] = id
	return nil
}

// Unbind removes the binding for manifestPath. The installation it
// pointed to, if any, is left on disk with a zero refcount until the
// next Collect.
func Unbind(doc *Document, manifestPath string) error {
	if _, ok := doc.Bindings[manifestPath]; !ok {
		return criticalerrors.NewMissingBindingError(manifestPath)
	}
	delete(doc.Bindings, manifestPath)
	return nil
}

// CollectResult reports what Collect did, so the caller can regenerate
// the proxy directory from the binaries that are still reachable.
type CollectResult struct {
	Removed           []InstallationID
	SurvivingBinaries map[string]struct{} // relative file paths exported by surviving installations
}

// Collect removes every installation with no surviving binding: its
// directory under ToolchainsDir and its state-document entry. It
// returns the set of file paths still exported by the installations
// that remain, for the proxy directory to be rebuilt from.
func Collect(doc *Document, stateRoot string) (*CollectResult, error) {
	referenced := make(map[InstallationID]struct{}, len(doc.Bindings))
	for _, id := range doc.Bindings {
		referenced[id] = struct{}{}
	}

	result := &CollectResult{SurvivingBinaries: make(map[string]struct{})}

	for id, rec := range doc.Installations {
		if _, bound := referenced[id]; bound {
			for path := range rec.Files {
				result.SurvivingBinaries[path] = struct{}{}
			}
			continue
		}

		dir := filepath.Join(stateRoot, ToolchainsDir, string(id))
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("state: removing orphaned installation %s: %w", id, err)
		}
		delete(doc.Installations, id)
		result.Removed = append(result.Removed, id)
	}

	return result, nil
}
