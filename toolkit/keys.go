package toolkit

import (
	"crypto/ed25519"
	"encoding/hex"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

// Ed25519PrivateKey wraps a notary/signatory key. The engine never touches
// key material itself; it hands this to the signing and derivation helpers.
type Ed25519PrivateKey struct {
	key ed25519.PrivateKey
}

func NewPrivateKeyFromSeed(seed []byte) (key *Ed25519PrivateKey, err error) {
	if len(seed) != ed25519.SeedSize {
		err = errors.Errorf("expected %d byte seed, got %d bytes", ed25519.SeedSize, len(seed))
		return
	}
	key = &Ed25519PrivateKey{key: ed25519.NewKeyFromSeed(seed)}
	return
}

func NewPrivateKeyFromSeedHex(seedHex string) (key *Ed25519PrivateKey, err error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		err = errors.Wrap(err, "invalid seed hex")
		return
	}
	return NewPrivateKeyFromSeed(seed)
}

func (k *Ed25519PrivateKey) PublicKey() []byte {
	return k.key.Public().(ed25519.PublicKey)
}

func (k *Ed25519PrivateKey) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey())
}

func (k *Ed25519PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(k.key, message)
}

// ExpandEd25519PrivateKey appends the public half to a bare 32 byte scalar so
// the stdlib signer accepts keys exported in their pre clamped form.
func ExpandEd25519PrivateKey(private *ed25519.PrivateKey) {
	if len(*private) == 32 {
		var scalar edwards25519.Scalar
		_, _ = scalar.SetBytesWithClamping(*private)
		var p edwards25519.Point
		p.ScalarBaseMult(&scalar)
		*private = append(*private, p.Bytes()...)
	}
}
