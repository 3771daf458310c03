// Package testbed holds small vulnerable and fixed contract state machines
// that show each vulnerability class in running code.
package testbed

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Address is a 32-byte account key, as on Solana and NEAR.
type Address [32]byte

// AddressOf returns an address with every byte set to b.
func AddressOf(b byte) Address {
	var a Address
	for i := range a {
		a[i] = b
	}
	return a
}

// PubkeyAddress derives the address owned by pub: keccak-256 of the
// uncompressed key without its 0x04 prefix.
func PubkeyAddress(pub *ecdsa.PublicKey) Address {
	var a Address
	copy(a[:], crypto.Keccak256(crypto.FromECDSAPub(pub)[1:]))
	return a
}

func (a Address) String() string {
	return hexutil.Encode(a[:])
}
