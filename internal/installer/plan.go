package installer

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/ferrocene/criticalup/internal/catalog"
	"github.com/ferrocene/criticalup/internal/state"
)

// Plan derives the installation id for (product, release, pkgs): the
// sha256 of the three joined by NUL bytes, with package digests sorted
// first so package order in the manifest never changes the id.
func Plan(product, release string, pkgs []catalog.PackageEntry) state.InstallationID {
	digests := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		digests[i] = pkg.Digest()
	}
	sort.Strings(digests)

	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s", product, release, strings.Join(digests, ","))
	return state.InstallationID(fmt.Sprintf("sha256:%x", h.Sum(nil)))
}

// Existing reports whether doc already records an installation under id,
// the check Plan's reuse path relies on before deciding whether
// Acquire/Stage can be skipped entirely. It consults the state document
// only; the installation directory on disk is not checked.
func Existing(doc *state.Document, id state.InstallationID) (*state.InstallationRecord, bool) {
	rec, ok := doc.Installations[id]
	return rec, ok
}
