package chain

import (
	"golang.org/x/crypto/sha3"
)

// Keccak256Hasher commits answers with legacy Keccak-256, the hash the
// ledger exposes to contracts.
type Keccak256Hasher struct{}

func (Keccak256Hasher) Hash(data []byte) []byte {
	d := sha3.NewLegacyKeccak256()
	d.Write(data)
	return d.Sum(nil)
}
