package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginInstall_CreatesStagingDirectory(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	dir, err := BeginInstall(root)
	require.NoError(t, err)

	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(root, ToolchainsDir, StagingDir), filepath.Dir(dir))
}

func TestAbandonInstall_RemovesStagingDirectory(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	dir, err := BeginInstall(root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial"), []byte("x"), 0o644))

	require.NoError(t, AbandonInstall(dir))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestCommitInstall_MovesStagingToFinalAndRecordsBinding(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	doc := NewDocument()

	stagingDir, err := BeginInstall(root)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(stagingDir, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stagingDir, "bin", "rustc"), []byte("x"), 0o755))

	rec := &InstallationRecord{
		Product:        "ferrocene",
		Release:        "stable-25.05.0",
		PackageDigests: []string{"sha256:abc"},
		Files:          map[string]string{"bin/rustc": "sha256:def"},
		CreatedAt:      time.Now(),
	}

	id := InstallationID("sha256:abc")
	require.NoError(t, CommitInstall(doc, root, id, stagingDir, rec, "/work/criticalup.toml"))

	finalDir := filepath.Join(root, ToolchainsDir, string(id))
	assert.DirExists(t, finalDir)
	assert.FileExists(t, filepath.Join(finalDir, "bin", "rustc"))
	_, err = os.Stat(stagingDir)
	assert.True(t, os.IsNotExist(err), "staging directory should be renamed away")

	assert.Same(t, rec, doc.Installations[id])
	assert.Equal(t, id, doc.Bindings["/work/criticalup.toml"])
}

func TestCommitInstall_DisplacesExistingFinalDirectory(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	doc := NewDocument()
	id := InstallationID("sha256:abc")

	finalDir := filepath.Join(root, ToolchainsDir, string(id))
	require.NoError(t, os.MkdirAll(finalDir, 0o755))

	stagingDir, err := BeginInstall(root)
	require.NoError(t, err)

	rec := &InstallationRecord{Product: "ferrocene", PackageDigests: []string{"sha256:abc"}}
	require.NoError(t, CommitInstall(doc, root, id, stagingDir, rec, "/work/criticalup.toml"))

	_, err = os.Stat(stagingDir)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, id, doc.Bindings["/work/criticalup.toml"])
}

func TestUnbind_RemovesBindingLeavesInstallation(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	id := InstallationID("sha256:abc")
	doc.Installations[id] = &InstallationRecord{Product: "ferrocene"}
	doc.Bindings["/work/criticalup.toml"] = id

	require.NoError(t, Unbind(doc, "/work/criticalup.toml"))

	assert.NotContains(t, doc.Bindings, "/work/criticalup.toml")
	assert.Contains(t, doc.Installations, id)
}

func TestUnbind_UnknownManifestFails(t *testing.T) {
	t.Parallel()
	doc := NewDocument()

	err := Unbind(doc, "/work/criticalup.toml")
	assert.Error(t, err)
}

func TestCollect_RemovesOrphansKeepsSurvivors(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	doc := NewDocument()

	orphanID := InstallationID("sha256:orphan")
	survivorID := InstallationID("sha256:keep")

	require.NoError(t, os.MkdirAll(filepath.Join(root, ToolchainsDir, string(orphanID)), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ToolchainsDir, string(survivorID)), 0o755))

	doc.Installations[orphanID] = &InstallationRecord{Product: "ferrocene"}
	doc.Installations[survivorID] = &InstallationRecord{
		Product: "ferrocene",
		Files:   map[string]string{"bin/rustc": "sha256:def"},
	}
	doc.Bindings["/work/criticalup.toml"] = survivorID

	result, err := Collect(doc, root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []InstallationID{orphanID}, result.Removed)
	assert.Contains(t, result.SurvivingBinaries, "bin/rustc")

	_, err = os.Stat(filepath.Join(root, ToolchainsDir, string(orphanID)))
	assert.True(t, os.IsNotExist(err))
	assert.DirExists(t, filepath.Join(root, ToolchainsDir, string(survivorID)))

	assert.NotContains(t, doc.Installations, orphanID)
	assert.Contains(t, doc.Installations, survivorID)
}

func TestCollect_NoOrphansIsNoop(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	doc := NewDocument()

	id := InstallationID("sha256:keep")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ToolchainsDir, string(id)), 0o755))
	doc.Installations[id] = &InstallationRecord{Product: "ferrocene"}
	doc.Bindings["/work/criticalup.toml"] = id

	result, err := Collect(doc, root)
	require.NoError(t, err)
	assert.Empty(t, result.Removed)
}
