package trust

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
)

// Signer produces ECDSA signatures over a sha256 digest on behalf of a
// single named key. It is deliberately minimal so that production signing
// (an HSM, a cloud KMS) and test signing (an in-memory key) share one
// contract.
type Signer interface {
	// KeyID returns the identifier the resulting signature should be
	// attributed to.
	KeyID() string

	// Sign returns an ASN.1 DER ECDSA signature over digest.
	Sign(rand io.Reader, digest []byte) ([]byte, error)

	// Public returns the signer's public key, for publishing a Key record.
	Public() *ecdsa.PublicKey
}

// MemorySigner is a Signer backed by an in-process ECDSA private key. It is
// the only Signer implementation this module exercises; it is what test
// fixtures use to mint keys and envelopes.
type MemorySigner struct {
	id  string
	key *ecdsa.PrivateKey
}

// NewMemorySigner generates a fresh P-256 key pair for the given key ID.
func NewMemorySigner(keyID string) (*MemorySigner, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key %s: %w", keyID, err)
	}
	return &MemorySigner{id: keyID, key: key}, nil
}

// NewMemorySignerFromKey wraps an already-generated private key.
func NewMemorySignerFromKey(keyID string, key *ecdsa.PrivateKey) *MemorySigner {
	return &MemorySigner{id: keyID, key: key}
}

func (s *MemorySigner) KeyID() string { return s.id }

func (s *MemorySigner) Sign(rand io.Reader, digest []byte) ([]byte, error) {
	return ecdsa.SignASN1(rand, s.key, digest)
}

func (s *MemorySigner) Public() *ecdsa.PublicKey {
	return &s.key.PublicKey
}

// PublicKeyPEM marshals the signer's public key as a PEM-encoded
// SubjectPublicKeyInfo block, the format Key.PublicKey stores.
func (s *MemorySigner) PublicKeyPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(s.Public())
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// KMSSigner is a documented extension point for a cloud KMS or HSM-backed
// signer. criticalup's verify path never constructs one — it only ever
// checks signatures, never makes them — so this type exists for release
// tooling run outside the core, and is left unimplemented here.
type KMSSigner struct {
	id          string
	keyResource string
}

// NewKMSSigner records the identifiers a concrete backend would need; Sign
// is not implemented because no release-signing backend is wired into this
// module (see the design notes for why).
func NewKMSSigner(keyID, keyResource string) *KMSSigner {
	return &KMSSigner{id: keyID, keyResource: keyResource}
}

func (s *KMSSigner) KeyID() string { return s.id }

func (s *KMSSigner) Sign(io.Reader, []byte) ([]byte, error) {
	return nil, fmt.Errorf("trust: KMSSigner backend %q is not wired in this build", s.keyResource)
}

func (s *KMSSigner) Public() *ecdsa.PublicKey {
	return nil
}
