// Package trust implements the signed-envelope trust core: a flat,
// role-scoped keychain rooted in a single root key handed to NewKeychain
// by the caller (no root key is compiled into the binary), ECDSA P-256
// signatures over canonical JSON payloads, and a revocation ledger that is
// consulted independently of cache freshness.
package trust

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"sort"
	"time"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// Role identifies which part of the artifact catalog a key is authorized
// to sign. Roles never overlap: a key trusted for one role carries no
// authority over documents belonging to another.
type Role string

const (
	RoleRoot       Role = "root"
	RolePackages   Role = "packages"
	RoleReleases   Role = "releases"
	RoleRevocation Role = "revocation"
	RoleRedirects  Role = "redirects"
)

// Valid reports whether r is one of the five roles the trust core knows
// about.
func (r Role) Valid() bool {
	switch r {
	case RoleRoot, RolePackages, RoleReleases, RoleRevocation, RoleRedirects:
		return true
	default:
		return false
	}
}

// Key is a single ECDSA P-256 public key pinned into, or delegated by, the
// root of trust. A key is only authoritative for the role it is declared
// under, and only within its validity window.
type Key struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	PublicKey []byte    `json:"publicKey"` // PEM-encoded SubjectPublicKeyInfo
	NotBefore time.Time `json:"notBefore"`
	NotAfter  time.Time `json:"notAfter"`

	parsed *ecdsa.PublicKey
}

// Parse decodes and caches the key's PEM-encoded public key.
func (k *Key) Parse() (*ecdsa.PublicKey, error) {
	if k.parsed != nil {
		return k.parsed, nil
	}
	block, _ := pem.Decode(k.PublicKey)
	if block == nil {
		return nil, fmt.Errorf("key %s: not PEM-encoded", k.ID)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", k.ID, err)
	}
	ecKey, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key %s: not an ECDSA key", k.ID)
	}
	if ecKey.Curve != elliptic.P256() {
		return nil, fmt.Errorf("key %s: curve is not P-256", k.ID)
	}
	k.parsed = ecKey
	return ecKey, nil
}

// ValidAt reports whether the key's validity window covers t.
func (k *Key) ValidAt(t time.Time) bool {
	if !k.NotBefore.IsZero() && t.Before(k.NotBefore) {
		return false
	}
	if !k.NotAfter.IsZero() && t.After(k.NotAfter) {
		return false
	}
	return true
}

// Signature is a single ECDSA signature over a canonicalized payload, made
// by the key identified by KeyID acting under Role.
type Signature struct {
	KeyID string `json:"keyId"`
	Role  Role   `json:"role"`
	Sig   []byte `json:"sig"` // ASN.1 DER, as produced by ecdsa.SignASN1
}

// Envelope pairs an opaque JSON payload with the signatures made over its
// canonical form. Payload is kept as raw bytes so Canonicalize and
// signature verification operate on exactly what was signed, independent
// of how the caller later unmarshals it.
type Envelope struct {
	Payload    json.RawMessage `json:"payload"`
	Signatures []Signature     `json:"signatures"`
}

// Digest returns the sha256 digest of the envelope's canonical payload,
// formatted the way the catalog and cache identify content.
func (e *Envelope) Digest() (ociv1.Hash, error) {
	canon, err := Canonicalize(e.Payload)
	if err != nil {
		return ociv1.Hash{}, err
	}
	sum := sha256.Sum256(canon)
	return ociv1.Hash{Algorithm: "sha256", Hex: fmt.Sprintf("%x", sum)}, nil
}

// Canonicalize produces a deterministic JSON serialization of an arbitrary
// JSON value: object keys sorted lexicographically at every level, no
// insignificant whitespace. Both signing and verification operate on this
// form so that unrelated re-encoding (key order, spacing) never changes
// what a signature covers.
func Canonicalize(raw json.RawMessage) ([]byte, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, criticalerrors.NewMalformedEnvelopeError(err)
	}
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

// Sign produces a new Signature over the envelope's current canonical
// payload using signer, attributing it to role.
func Sign(payload json.RawMessage, role Role, signer Signer) (Signature, error) {
	canon, err := Canonicalize(payload)
	if err != nil {
		return Signature{}, err
	}
	digest := sha256.Sum256(canon)
	sig, err := signer.Sign(rand.Reader, digest[:])
	if err != nil {
		return Signature{}, fmt.Errorf("signing under role %s: %w", role, err)
	}
	return Signature{KeyID: signer.KeyID(), Role: role, Sig: sig}, nil
}
