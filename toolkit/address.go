package toolkit

import (
	"crypto/ed25519"

	ogbech "github.com/btcsuite/btcutil/bech32"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// virtualAccountEntityType is the leading byte of a virtual account backed by
// an ed25519 key. The remaining 29 bytes are the tail of the blake2b-256 hash
// of the public key.
const virtualAccountEntityType = 0xd1

const addressDataLength = 30

// DeriveVirtualAccountAddress computes the virtual account address owned by
// an ed25519 public key, bech32 encoded with the network's account prefix.
func DeriveVirtualAccountAddress(publicKey []byte, accountHrp string) (address string, err error) {
	if len(publicKey) != ed25519.PublicKeySize {
		err = errors.Errorf("expected %d byte public key, got %d bytes", ed25519.PublicKeySize, len(publicKey))
		return
	}

	hash := blake2b.Sum256(publicKey)

	data := make([]byte, 0, addressDataLength)
	data = append(data, virtualAccountEntityType)
	data = append(data, hash[len(hash)-(addressDataLength-1):]...)

	address, err = bech32.ConvertAndEncode(accountHrp, data)
	err = errors.WithStack(err)

	return
}

// DecodeAddress splits a bech32 address into its prefix and 8 bit data. The
// first data byte is the entity type.
func DecodeAddress(address string) (hrp string, data []byte, err error) {
	hrp, fiveBit, err := ogbech.Decode(address)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	data, err = ogbech.ConvertBits(fiveBit, 5, 8, false)
	err = errors.WithStack(err)

	return
}

// EncodeTransactionId encodes an intent hash with the network's transaction
// prefix, producing the id the gateway expects in status and details lookups.
func EncodeTransactionId(intentHash []byte, transactionHrp string) (id string, err error) {
	id, err = bech32.ConvertAndEncode(transactionHrp, intentHash)
	err = errors.WithStack(err)
	return
}
