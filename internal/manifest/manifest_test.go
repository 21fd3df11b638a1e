package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes_ValidManifest(t *testing.T) {
	t.Parallel()
	data := []byte(`manifest-version = 1

[products.ferrocene]
release = "stable-25.05.0"
packages = ["cargo-${host-triple}", "rustc-${host-triple}"]
`)

	doc, err := ParseBytes("criticalup.toml", data)
	require.NoError(t, err)

	name, product := doc.Product()
	assert.Equal(t, "ferrocene", name)
	assert.Equal(t, "stable-25.05.0", product.Release)
	assert.Equal(t, []string{"cargo-${host-triple}", "rustc-${host-triple}"}, product.Packages)
}

func TestParseBytes_UnsupportedVersionFails(t *testing.T) {
	t.Parallel()
	data := []byte(`manifest-version = 2

[products.ferrocene]
release = "stable-25.05.0"
`)

	_, err := ParseBytes("criticalup.toml", data)
	assert.Error(t, err)
}

func TestParseBytes_MultipleProductsFails(t *testing.T) {
	t.Parallel()
	data := []byte(`manifest-version = 1

[products.ferrocene]
release = "stable-25.05.0"

[products.other]
release = "stable-25.05.0"
`)

	_, err := ParseBytes("criticalup.toml", data)
	assert.Error(t, err)
}

func TestParseBytes_NoProductsFails(t *testing.T) {
	t.Parallel()
	data := []byte(`manifest-version = 1`)

	_, err := ParseBytes("criticalup.toml", data)
	assert.Error(t, err)
}

func TestParse_MissingFileFails(t *testing.T) {
	t.Parallel()
	_, err := Parse(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestInit_SynthesizesSingleProductDocument(t *testing.T) {
	t.Parallel()
	doc := Init("ferrocene", "stable-25.05.0", []string{"cargo-${host-triple}"})

	name, product := doc.Product()
	assert.Equal(t, "ferrocene", name)
	assert.Equal(t, "stable-25.05.0", product.Release)
	assert.NoError(t, doc.Validate("criticalup.toml"))
}

func TestWrite_RoundtripsThroughParse(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "criticalup.toml")

	doc := Init("ferrocene", "stable-25.05.0", []string{"cargo-${host-triple}"})
	require.NoError(t, doc.Write(path))

	loaded, err := Parse(path)
	require.NoError(t, err)
	name, product := loaded.Product()
	assert.Equal(t, "ferrocene", name)
	assert.Equal(t, "stable-25.05.0", product.Release)
}

func TestCanonicalPath_ResolvesSymlinks(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	real := filepath.Join(dir, "criticalup.toml")
	require.NoError(t, os.WriteFile(real, []byte("manifest-version = 1\n"), 0o644))

	link := filepath.Join(dir, "link.toml")
	require.NoError(t, os.Symlink(real, link))

	canon, err := CanonicalPath(link)
	require.NoError(t, err)

	realAbs, err := filepath.Abs(real)
	require.NoError(t, err)
	assert.Equal(t, realAbs, canon)
}
