package installer

import (
	"time"

	"github.com/ferrocene/criticalup/internal/state"
)

// Commit records a freshly staged installation in doc and moves
// stagingDir into its final location. Callers hold the state store lock
// across BeginInstall..Commit..Save.
func Commit(
	doc *state.Document,
	stateRoot string,
	id state.InstallationID,
	stagingDir string,
	product, release string,
	pkgDigests []string,
	files map[string]string,
	manifestPath string,
) error {
	rec := &state.InstallationRecord{
		Product:        product,
		Release:        release,
		PackageDigests: pkgDigests,
		Files:          files,
		CreatedAt:      time.Now(),
	}
	return state.CommitInstall(doc, stateRoot, id, stagingDir, rec, manifestPath)
}
