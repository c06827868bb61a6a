// Package sigcheck verifies transaction signatures for the script engine: it builds
// the legacy signature hash of an input and checks secp256k1 ECDSA signatures
// against it.
package sigcheck

import (
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/sighash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/script"
)

// SigHashType is the trailing byte of a signature selecting which parts of the
// transaction are signed.
type SigHashType uint32

const (
	SigHashAll          SigHashType = 0x01
	SigHashNone         SigHashType = 0x02
	SigHashSingle       SigHashType = 0x03
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

// oneHash is what the legacy algorithm signs when SIGHASH_SINGLE has no matching
// output, or the input index is out of range.
var oneHash = func() []byte {
	h := make([]byte, 32)
	h[0] = 0x01

	return h
}()

// CalcSignatureHash returns the legacy signature hash for input idx of tx, signing
// subscript as the script code. OP_CODESEPARATORs are removed from the subscript.
func CalcSignatureHash(provider hashing.Provider, subscript []byte, hashType SigHashType, tx *model.Transaction, idx int) ([]byte, error) {
	if tx == nil {
		return nil, errors.NewInvalidArgumentError("nil transaction")
	}

	if idx < 0 || idx >= len(tx.Inputs) {
		return oneHash, nil
	}

	if hashType&sigHashMask == SigHashSingle && idx >= len(tx.Outputs) {
		return oneHash, nil
	}

	scriptCode, err := removeCodeSeparators(subscript)
	if err != nil {
		return nil, err
	}

	btTx, err := bt.NewTxFromBytes(tx.Bytes())
	if err != nil {
		return nil, errors.NewProcessingError("failed to convert transaction %s", tx.TxID(), err)
	}

	btTx.Inputs[idx].PreviousTxScript = bscript.NewFromBytes(scriptCode)

	preimage, err := btTx.CalcInputPreimageLegacy(uint32(idx), sighash.Flag(hashType)) //nolint:gosec // idx is checked above
	if err != nil {
		return nil, errors.NewProcessingError("failed to build preimage for input %d", idx, err)
	}

	return hashing.Sum(provider, hashing.DoubleSHA256, preimage)
}

func removeCodeSeparators(subscript []byte) ([]byte, error) {
	ops, err := script.Parse(subscript)
	if err != nil {
		return nil, err
	}

	kept := ops[:0]

	for _, op := range ops {
		if op.Opcode != script.OpCODESEPARATOR {
			kept = append(kept, op)
		}
	}

	b := script.Unparse(kept)
	if b == nil {
		b = []byte{}
	}

	return b, nil
}
