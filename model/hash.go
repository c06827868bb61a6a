package model

import (
	"math/big"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// HashToBig interprets a hash as a 256-bit unsigned little-endian number, the
// same way proof-of-work hashes are compared against targets.
func HashToBig(hash *chainhash.Hash) *big.Int {
	return new(big.Int).SetBytes(bt.ReverseBytes(hash[:]))
}

// BigToHash is the inverse of HashToBig. Values wider than 256 bits keep only
// their low 256 bits, negative values use their magnitude.
func BigToHash(n *big.Int) *chainhash.Hash {
	var hash chainhash.Hash

	b := n.Bytes()
	if len(b) > chainhash.HashSize {
		b = b[len(b)-chainhash.HashSize:]
	}

	// big-endian bytes go in reversed, starting at the least significant byte
	for i, v := range b {
		hash[len(b)-1-i] = v
	}

	return &hash
}

// CompareHashes compares a and b as 256-bit numbers and returns -1, 0 or 1.
func CompareHashes(a, b *chainhash.Hash) int {
	for i := chainhash.HashSize - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}

	return 0
}

func IsZeroHash(hash *chainhash.Hash) bool {
	return hash == nil || *hash == chainhash.Hash{}
}
