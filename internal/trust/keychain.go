package trust

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// keysDocument is the payload shape of an envelope that delegates trust: a
// signed list of Key records for a single role, itself signed by a key
// already trusted for RoleRoot (to add a non-root role) or shipped as the
// single pinned root key (to bootstrap RoleRoot).
type keysDocument struct {
	Role Role  `json:"role"`
	Keys []Key `json:"keys"`
}

// Keychain holds the set of keys currently trusted for each role. It is
// built by starting from a single pinned root key and repeatedly folding in
// any keys-document that verifies against an already-trusted key, until a
// fixed point is reached — the same closure construction a TUF root of
// trust uses, flattened to this catalog's five roles.
type Keychain struct {
	root *Key
	keys map[Role]map[string]*Key // role -> keyID -> Key
}

// NewKeychain starts a keychain trusting only the single pinned root key.
func NewKeychain(root *Key) (*Keychain, error) {
	if root.Role != RoleRoot {
		return nil, fmt.Errorf("trust: pinned key %s is not a root key", root.ID)
	}
	if _, err := root.Parse(); err != nil {
		return nil, err
	}
	kc := &Keychain{
		root: root,
		keys: map[Role]map[string]*Key{
			RoleRoot: {root.ID: root},
		},
	}
	return kc, nil
}

// Trusted reports whether keyID is currently trusted for role.
func (kc *Keychain) Trusted(role Role, keyID string) (*Key, bool) {
	byID, ok := kc.keys[role]
	if !ok {
		return nil, false
	}
	k, ok := byID[keyID]
	return k, ok
}

// Extend attempts to fold a signed keys-document envelope into the
// keychain. The envelope must verify against a key already trusted for
// RoleRoot. It returns true if at least one new key was added, so callers
// can iterate Extend over a batch of envelopes to a fixed point: keep
// looping while any call returns true.
func (kc *Keychain) Extend(env *Envelope, now time.Time) (bool, error) {
	var doc keysDocument
	if err := json.Unmarshal(env.Payload, &doc); err != nil {
		return false, criticalerrors.NewMalformedEnvelopeError(err)
	}
	if !doc.Role.Valid() {
		return false, criticalerrors.NewMalformedEnvelopeError(fmt.Errorf("unknown role %q", doc.Role))
	}

	if _, err := kc.verifyAgainst(RoleRoot, env, now); err != nil {
		return false, err
	}

	byID := kc.keys[doc.Role]
	if byID == nil {
		byID = map[string]*Key{}
		kc.keys[doc.Role] = byID
	}
	added := false
	for i := range doc.Keys {
		k := &doc.Keys[i]
		if k.Role != doc.Role {
			continue
		}
		if _, err := k.Parse(); err != nil {
			continue
		}
		if _, exists := byID[k.ID]; !exists {
			byID[k.ID] = k
			added = true
		}
	}
	return added, nil
}

// Close repeatedly applies Extend over envelopes until no call adds a new
// key, implementing the fixed-point closure described by Extend.
func (kc *Keychain) Close(envelopes []*Envelope, now time.Time) error {
	for {
		changed := false
		for _, env := range envelopes {
			added, err := kc.Extend(env, now)
			if err != nil {
				continue // not yet verifiable; may become so after this pass
			}
			changed = changed || added
		}
		if !changed {
			return nil
		}
	}
}

// Verify checks that env carries at least one signature made by a key
// currently trusted for role, valid at now, and that the signature
// verifies over the envelope's canonical payload. It returns the key that
// verified.
func (kc *Keychain) Verify(env *Envelope, role Role, now time.Time) (*Key, error) {
	return kc.verifyAgainst(role, env, now)
}

func (kc *Keychain) verifyAgainst(role Role, env *Envelope, now time.Time) (*Key, error) {
	canon, err := Canonicalize(env.Payload)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(canon)

	var sawWrongRole *Signature
	var sawExpired *Key
	for i := range env.Signatures {
		sig := &env.Signatures[i]
		if sig.Role != role {
			sawWrongRole = sig
			continue
		}
		key, ok := kc.Trusted(role, sig.KeyID)
		if !ok {
			continue
		}
		if !key.ValidAt(now) {
			if sawExpired == nil {
				sawExpired = key
			}
			continue
		}
		pub, err := key.Parse()
		if err != nil {
			continue
		}
		if ecdsa.VerifyASN1(pub, digest[:], sig.Sig) {
			return key, nil
		}
	}
	if sawExpired != nil {
		return nil, criticalerrors.NewExpiredKeyError(sawExpired.ID)
	}
	if sawWrongRole != nil {
		return nil, criticalerrors.NewRoleMismatchError(sawWrongRole.KeyID, string(role), string(sawWrongRole.Role))
	}
	digestHex := fmt.Sprintf("%x", digest)
	return nil, criticalerrors.NewNoTrustedSignatureError(string(role), digestHex)
}
