// Package auth manages the bearer credential used to authenticate against
// the artifact download server: an environment variable override plus a
// single 0600-mode file under the state root.
package auth

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvToken is the environment variable checked before any stored
// credential.
const EnvToken = "CRITICALUP_TOKEN"

const credentialFileName = "credentials"

// Load resolves the current bearer token: CRITICALUP_TOKEN takes priority,
// falling back to the stored credential file under stateRoot. Returns ""
// with a nil error if neither is configured.
func Load(stateRoot string) (string, error) {
	if tok := os.Getenv(EnvToken); tok != "" {
		return tok, nil
	}
	data, err := os.ReadFile(filepath.Join(stateRoot, credentialFileName))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes token to the stored credential file, creating stateRoot if
// necessary. The file is written 0600 since it carries a bearer secret.
func Set(stateRoot, token string) error {
	if err := os.MkdirAll(stateRoot, 0o755); err != nil {
		return err
	}
	path := filepath.Join(stateRoot, credentialFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token+"\n"), 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Remove deletes the stored credential file, if any.
func Remove(stateRoot string) error {
	err := os.Remove(filepath.Join(stateRoot, credentialFileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
