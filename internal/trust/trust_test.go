package trust

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) (*Key, *MemorySigner) {
	t.Helper()
	signer, err := NewMemorySigner("root-1")
	require.NoError(t, err)
	pem, err := signer.PublicKeyPEM()
	require.NoError(t, err)
	return &Key{ID: "root-1", Role: RoleRoot, PublicKey: pem}, signer
}

func sealEnvelope(t *testing.T, payload any, role Role, signer *MemorySigner) *Envelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	sig, err := Sign(raw, role, signer)
	require.NoError(t, err)
	return &Envelope{Payload: raw, Signatures: []Signature{sig}}
}

func TestCanonicalize_KeyOrderIndependent(t *testing.T) {
	t.Parallel()

	a := json.RawMessage(`{"b":1,"a":2}`)
	b := json.RawMessage(`{"a":2,"b":1}`)

	ca, err := Canonicalize(a)
	require.NoError(t, err)
	cb, err := Canonicalize(b)
	require.NoError(t, err)

	assert.Equal(t, ca, cb)
	assert.Equal(t, `{"a":2,"b":1}`, string(ca))
}

func TestKeychain_TrustsRootKeyOnly(t *testing.T) {
	t.Parallel()

	root, _ := newTestRoot(t)
	kc, err := NewKeychain(root)
	require.NoError(t, err)

	_, ok := kc.Trusted(RoleRoot, root.ID)
	assert.True(t, ok)

	_, ok = kc.Trusted(RolePackages, "anything")
	assert.False(t, ok)
}

func TestKeychain_ExtendAddsDelegatedRole(t *testing.T) {
	t.Parallel()

	root, rootSigner := newTestRoot(t)
	kc, err := NewKeychain(root)
	require.NoError(t, err)

	releasesSigner, err := NewMemorySigner("releases-1")
	require.NoError(t, err)
	releasesPEM, err := releasesSigner.PublicKeyPEM()
	require.NoError(t, err)

	doc := keysDocument{
		Role: RoleReleases,
		Keys: []Key{{ID: "releases-1", Role: RoleReleases, PublicKey: releasesPEM}},
	}
	env := sealEnvelope(t, doc, RoleRoot, rootSigner)

	now := time.Now()
	added, err := kc.Extend(env, now)
	require.NoError(t, err)
	assert.True(t, added)

	_, ok := kc.Trusted(RoleReleases, "releases-1")
	assert.True(t, ok)

	added, err = kc.Extend(env, now)
	require.NoError(t, err)
	assert.False(t, added, "re-applying the same envelope adds nothing new")
}

func TestKeychain_ExtendRejectsUntrustedSigner(t *testing.T) {
	t.Parallel()

	root, _ := newTestRoot(t)
	kc, err := NewKeychain(root)
	require.NoError(t, err)

	impostor, err := NewMemorySigner("impostor")
	require.NoError(t, err)

	doc := keysDocument{Role: RoleReleases, Keys: nil}
	env := sealEnvelope(t, doc, RoleRoot, impostor)

	_, err = kc.Extend(env, time.Now())
	assert.Error(t, err)
}

func TestKeychain_VerifyRoleScoped(t *testing.T) {
	t.Parallel()

	root, rootSigner := newTestRoot(t)
	kc, err := NewKeychain(root)
	require.NoError(t, err)

	packagesSigner, err := NewMemorySigner("packages-1")
	require.NoError(t, err)
	packagesPEM, err := packagesSigner.PublicKeyPEM()
	require.NoError(t, err)

	delegation := sealEnvelope(t, keysDocument{
		Role: RolePackages,
		Keys: []Key{{ID: "packages-1", Role: RolePackages, PublicKey: packagesPEM}},
	}, RoleRoot, rootSigner)

	now := time.Now()
	_, err = kc.Extend(delegation, now)
	require.NoError(t, err)

	packageDoc := sealEnvelope(t, map[string]string{"name": "rustc"}, RolePackages, packagesSigner)

	key, err := kc.Verify(packageDoc, RolePackages, now)
	require.NoError(t, err)
	assert.Equal(t, "packages-1", key.ID)

	_, err = kc.Verify(packageDoc, RoleReleases, now)
	assert.Error(t, err, "a packages signature must not verify under a different role")
}

func TestKeychain_VerifyRejectsExpiredKey(t *testing.T) {
	t.Parallel()

	root, rootSigner := newTestRoot(t)
	kc, err := NewKeychain(root)
	require.NoError(t, err)

	expiredSigner, err := NewMemorySigner("releases-expired")
	require.NoError(t, err)
	expiredPEM, err := expiredSigner.PublicKeyPEM()
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	delegation := sealEnvelope(t, keysDocument{
		Role: RoleReleases,
		Keys: []Key{{
			ID:        "releases-expired",
			Role:      RoleReleases,
			PublicKey: expiredPEM,
			NotAfter:  past,
		}},
	}, RoleRoot, rootSigner)

	now := time.Now()
	_, err = kc.Extend(delegation, now)
	require.NoError(t, err)

	releaseDoc := sealEnvelope(t, map[string]string{"version": "1.0.0"}, RoleReleases, expiredSigner)

	_, err = kc.Verify(releaseDoc, RoleReleases, now)
	assert.Error(t, err)
}

func TestRevocationLedger(t *testing.T) {
	t.Parallel()

	root, rootSigner := newTestRoot(t)
	kc, err := NewKeychain(root)
	require.NoError(t, err)

	revocationSigner, err := NewMemorySigner("revocation-1")
	require.NoError(t, err)
	revocationPEM, err := revocationSigner.PublicKeyPEM()
	require.NoError(t, err)

	now := time.Now()
	delegation := sealEnvelope(t, keysDocument{
		Role: RoleRevocation,
		Keys: []Key{{ID: "revocation-1", Role: RoleRevocation, PublicKey: revocationPEM}},
	}, RoleRoot, rootSigner)
	_, err = kc.Extend(delegation, now)
	require.NoError(t, err)

	ledgerEnv := sealEnvelope(t, revocationDocument{
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
		Entries: []RevocationEntry{
			{Digest: "sha256:deadbeef", Reason: "compromised signing key"},
		},
	}, RoleRevocation, revocationSigner)

	ledger, err := NewRevocationLedger(kc, ledgerEnv, now)
	require.NoError(t, err)

	_, revoked := ledger.IsRevoked("sha256:deadbeef")
	assert.True(t, revoked)

	_, revoked = ledger.IsRevoked("sha256:cafef00d")
	assert.False(t, revoked)

	assert.False(t, ledger.Stale(now))
	assert.True(t, ledger.Stale(now.Add(2*time.Hour)))
}
