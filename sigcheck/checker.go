package sigcheck

import (
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/script"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Checker verifies signatures for one input of a transaction.
type Checker struct {
	provider hashing.Provider
	tx       *model.Transaction
	idx      int
}

// Factory creates the signature checker for an input.
type Factory func(tx *model.Transaction, idx int) script.SignatureChecker

// NewFactory returns a Factory producing ECDSA checkers that hash with provider.
func NewFactory(provider hashing.Provider) Factory {
	return func(tx *model.Transaction, idx int) script.SignatureChecker {
		return NewChecker(provider, tx, idx)
	}
}

func NewChecker(provider hashing.Provider, tx *model.Transaction, idx int) *Checker {
	return &Checker{
		provider: provider,
		tx:       tx,
		idx:      idx,
	}
}

// CheckSig verifies a DER signature with a trailing sighash byte against a
// serialized secp256k1 public key. Anything that does not parse is an invalid signature.
func (c *Checker) CheckSig(sig, pubKey, subscript []byte) bool {
	if len(sig) < 2 || len(pubKey) == 0 {
		return false
	}

	hashType := SigHashType(sig[len(sig)-1])

	hash, err := CalcSignatureHash(c.provider, subscript, hashType, c.tx, c.idx)
	if err != nil {
		return false
	}

	key, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}

	signature, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return false
	}

	return signature.Verify(hash, key)
}

// Sign creates the signature for input idx, with the sighash byte appended.
func Sign(provider hashing.Provider, key *btcec.PrivateKey, subscript []byte, hashType SigHashType, tx *model.Transaction, idx int) ([]byte, error) {
	hash, err := CalcSignatureHash(provider, subscript, hashType, tx, idx)
	if err != nil {
		return nil, err
	}

	sig := ecdsa.Sign(key, hash)

	return append(sig.Serialize(), byte(hashType)), nil
}
