package installer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ferrocene/criticalup/internal/catalog"
	"github.com/ferrocene/criticalup/internal/state"
)

func TestPlan_StableAcrossPackageOrder(t *testing.T) {
	t.Parallel()

	pkgs := []catalog.PackageEntry{
		{Version: "1.0.0", SHA256: "aaaa"},
		{Version: "1.0.0", SHA256: "bbbb"},
		{Version: "1.0.0", SHA256: "cccc"},
	}
	reversed := []catalog.PackageEntry{pkgs[2], pkgs[1], pkgs[0]}

	require.Equal(t, Plan("ferrocene", "stable-25.05.0", pkgs), Plan("ferrocene", "stable-25.05.0", reversed))
}

func TestPlan_DiffersOnProductOrRelease(t *testing.T) {
	t.Parallel()

	pkgs := []catalog.PackageEntry{{Version: "1.0.0", SHA256: "aaaa"}}
	base := Plan("ferrocene", "stable-25.05.0", pkgs)

	assert.NotEqual(t, base, Plan("ferrocene", "stable-25.06.0", pkgs))
	assert.NotEqual(t, base, Plan("other-product", "stable-25.05.0", pkgs))
}

// Property: any permutation of the same package set yields the same
// installation id, since Plan sorts digests before hashing.
func TestPlan_PermutationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		pkgs := make([]catalog.PackageEntry, n)
		for i := range pkgs {
			pkgs[i] = catalog.PackageEntry{
				Version: rapid.StringN(1, 12, -1).Draw(t, "version"),
				SHA256:  rapid.StringN(8, 8, -1).Draw(t, "digest"),
			}
		}

		shuffled := make([]catalog.PackageEntry, n)
		copy(shuffled, pkgs)
		for i := n - 1; i > 0; i-- {
			j := rapid.IntRange(0, i).Draw(t, fmt.Sprintf("swap_%d", i))
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}

		id1 := Plan("ferrocene", "stable-25.05.0", pkgs)
		id2 := Plan("ferrocene", "stable-25.05.0", shuffled)
		if id1 != id2 {
			t.Fatalf("permutation changed installation id: %s != %s", id1, id2)
		}
	})
}

func TestExisting_ReportsFoundAndMissing(t *testing.T) {
	t.Parallel()

	id := state.InstallationID("sha256:deadbeef")
	doc := state.NewDocument()
	doc.Installations[id] = &state.InstallationRecord{Product: "ferrocene"}

	rec, ok := Existing(doc, id)
	require.True(t, ok)
	assert.Equal(t, "ferrocene", rec.Product)

	_, ok = Existing(doc, state.InstallationID("sha256:missing"))
	assert.False(t, ok)
}
