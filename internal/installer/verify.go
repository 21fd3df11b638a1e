package installer

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
	"github.com/ferrocene/criticalup/internal/state"
)

// Verify re-reads every file recorded in rec's manifest and checks it
// against its recorded digest, catching on-disk tampering or corruption
// independent of network transport.
func Verify(installDir string, rec *state.InstallationRecord) error {
	for rel, expected := range rec.Files {
		path := filepath.Join(installDir, rel)
		data, err := os.ReadFile(path)
		if err != nil {
			return criticalerrors.NewCorruptedInstallationError(path, err)
		}
		sum := sha256.Sum256(data)
		got := hex.EncodeToString(sum[:])
		if got != expected {
			return criticalerrors.NewCorruptedInstallationError(path, criticalerrors.NewDigestMismatchError(path, expected, got))
		}
	}
	return nil
}
