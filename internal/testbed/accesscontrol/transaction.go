package accesscontrol

import (
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"rscanner/internal/testbed"
)

// Transaction is a signed call. Caller is only trusted once Valid confirms
// the signature was made by the key behind it.
type Transaction struct {
	Caller    testbed.Address
	Nonce     uint64
	Signature []byte
}

func (tx *Transaction) Hash() []byte {
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], tx.Nonce)
	return crypto.Keccak256(tx.Caller[:], nonce[:])
}

// Valid recovers the signer and compares it with Caller.
func (tx *Transaction) Valid() bool {
	if tx == nil || len(tx.Signature) != crypto.SignatureLength {
		return false
	}
	pub, err := crypto.SigToPub(tx.Hash(), tx.Signature)
	if err != nil {
		return false
	}
	return testbed.PubkeyAddress(pub) == tx.Caller
}

// SignTransaction builds a transaction from the address of key.
func SignTransaction(key *ecdsa.PrivateKey, nonce uint64) (*Transaction, error) {
	tx := &Transaction{
		Caller: testbed.PubkeyAddress(&key.PublicKey),
		Nonce:  nonce,
	}
	sig, err := crypto.Sign(tx.Hash(), key)
	if err != nil {
		return nil, errors.Wrap(err, "Sign")
	}
	tx.Signature = sig
	return tx, nil
}
