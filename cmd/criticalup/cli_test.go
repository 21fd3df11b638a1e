package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocCommand_PrintsSchemaReference(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"doc"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "manifest-version")
	assert.Contains(t, out.String(), "CRITICALUP_TOKEN")
}

func TestInitCommand_WritesManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "criticalup.toml")

	root := newRootCommand()
	root.SetArgs([]string{"init", "--release", "stable-25.05.0", "--project", manifestPath})
	require.NoError(t, root.Execute())

	assert.FileExists(t, manifestPath)
}

func TestInitCommand_PrintWritesNoFile(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "criticalup.toml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"init", "--release", "stable-25.05.0", "--project", manifestPath, "--print"})
	require.NoError(t, root.Execute())

	assert.NoFileExists(t, manifestPath)
	assert.Contains(t, out.String(), "stable-25.05.0")
}

func TestBuildCore_FailsWithoutServer(t *testing.T) {
	flags := &globalFlags{stateDir: t.TempDir(), proxyDir: t.TempDir(), rootKey: "unused"}
	_, err := buildCore(flags)
	assert.Error(t, err)
}

func TestBuildCore_FailsWithoutRootKey(t *testing.T) {
	flags := &globalFlags{stateDir: t.TempDir(), proxyDir: t.TempDir(), server: "https://example.invalid"}
	_, err := buildCore(flags)
	assert.Error(t, err)
}

func TestVersionFlag_PrintsVersion(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), version)
}
