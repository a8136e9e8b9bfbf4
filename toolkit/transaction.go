package toolkit

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// DeterministicCborEncoder produces the canonical byte form hashes and
// signatures are computed over. Compilation must be stable across processes,
// so the core deterministic sort is required.
var DeterministicCborEncoder, _ = cbor.EncOptions{
	Sort: cbor.SortCoreDeterministic,
}.EncMode()

type TransactionHeader struct {
	NetworkId           uint8  `cbor:"1,keyasint"`
	StartEpochInclusive uint64 `cbor:"2,keyasint"`
	EndEpochExclusive   uint64 `cbor:"3,keyasint"`
	Nonce               uint32 `cbor:"4,keyasint"`
	NotaryPublicKey     []byte `cbor:"5,keyasint"`
	NotaryIsSignatory   bool   `cbor:"6,keyasint"`
	TipPercentage       uint16 `cbor:"7,keyasint"`
}

type TransactionIntent struct {
	Header   TransactionHeader `cbor:"1,keyasint"`
	Manifest string            `cbor:"2,keyasint"`
}

type SignedIntent struct {
	Intent           TransactionIntent `cbor:"1,keyasint"`
	IntentSignatures [][]byte          `cbor:"2,keyasint"`
}

type NotarizedTransaction struct {
	Signed          SignedIntent `cbor:"1,keyasint"`
	NotarySignature []byte       `cbor:"2,keyasint"`
}

// RandomNonce draws a fresh header nonce from the system entropy source.
func RandomNonce() uint32 {
	nonceBytes := make([]byte, 4)
	_, _ = rand.Read(nonceBytes)
	return binary.BigEndian.Uint32(nonceBytes)
}

func compileHash(v any) (compiled []byte, hash []byte, err error) {
	compiled, err = DeterministicCborEncoder.Marshal(v)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	sum := blake2b.Sum256(compiled)
	hash = sum[:]

	return
}

func (i *TransactionIntent) Compile() (compiled []byte, err error) {
	compiled, _, err = compileHash(i)
	return
}

// Hash is the intent hash: blake2b-256 over the compiled intent. It doubles
// as the transaction id once bech32 encoded.
func (i *TransactionIntent) Hash() (hash []byte, err error) {
	_, hash, err = compileHash(i)
	return
}

// Sign appends the key's signature over the intent hash. The submission path
// uses a single signatory, but the structure carries any number.
func (i *TransactionIntent) Sign(key *Ed25519PrivateKey) (signed *SignedIntent, err error) {
	hash, err := i.Hash()
	if err != nil {
		return
	}

	signed = &SignedIntent{
		Intent:           *i,
		IntentSignatures: [][]byte{key.Sign(hash)},
	}

	return
}

func (s *SignedIntent) Hash() (hash []byte, err error) {
	_, hash, err = compileHash(s)
	return
}

// Notarize finalizes the signed intent with the notary's signature over the
// signed intent hash.
func (s *SignedIntent) Notarize(key *Ed25519PrivateKey) (notarized *NotarizedTransaction, err error) {
	hash, err := s.Hash()
	if err != nil {
		return
	}

	notarized = &NotarizedTransaction{
		Signed:          *s,
		NotarySignature: key.Sign(hash),
	}

	return
}

func (n *NotarizedTransaction) Compile() (compiled []byte, err error) {
	compiled, _, err = compileHash(n)
	return
}

// CompileHex is the submission payload form the gateway accepts.
func (n *NotarizedTransaction) CompileHex() (compiledHex string, err error) {
	compiled, err := n.Compile()
	if err != nil {
		return
	}
	compiledHex = hex.EncodeToString(compiled)
	return
}
