package model

import (
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/codec"
	"github.com/bsv-blockchain/litenode/errors"
)

// SatoshisPerCoin is the number of minor units in one whole coin.
const SatoshisPerCoin = 100_000_000

// Input spends an output of a previous transaction. An all-zero PreviousTxID
// marks a coinbase input.
type Input struct {
	PreviousTxID       chainhash.Hash
	PreviousTxOutIndex uint32
	UnlockingScript    []byte
	SequenceNumber     uint32
}

func (i *Input) IsCoinbase() bool {
	return IsZeroHash(&i.PreviousTxID)
}

type Output struct {
	Satoshis      int64
	LockingScript []byte
}

// Amount formats the output value as a decimal number of coins with 8 decimals.
func (o *Output) Amount() string {
	v := o.Satoshis
	sign := ""

	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%08d", sign, v/SatoshisPerCoin, v%SatoshisPerCoin)
}

type Transaction struct {
	Version  uint32
	Inputs   []*Input
	Outputs  []*Output
	LockTime uint32
}

func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	r := codec.NewReader(b)

	tx, err := NewTransactionFromReader(r)
	if err != nil {
		return nil, err
	}

	if r.Remaining() != 0 {
		return nil, errors.NewMalformedInputError("%d trailing bytes after transaction", r.Remaining())
	}

	return tx, nil
}

func NewTransactionFromString(s string) (*Transaction, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("error decoding hex string to bytes", err)
	}

	return NewTransactionFromBytes(b)
}

// NewTransactionFromReader decodes one transaction starting at the reader's offset.
func NewTransactionFromReader(r *codec.Reader) (*Transaction, error) {
	var (
		tx  Transaction
		err error
	)

	if tx.Version, err = r.Uint32(); err != nil {
		return nil, err
	}

	// every input takes at least 41 bytes, which bounds the allocation below
	inputCount, err := readCount(r, 41, "input")
	if err != nil {
		return nil, err
	}

	tx.Inputs = make([]*Input, 0, inputCount)

	for i := 0; i < inputCount; i++ {
		input := &Input{}

		if input.PreviousTxID, err = r.Hash(); err != nil {
			return nil, err
		}

		if input.PreviousTxOutIndex, err = r.Uint32(); err != nil {
			return nil, err
		}

		if input.UnlockingScript, err = r.VarBytes(); err != nil {
			return nil, err
		}

		if input.SequenceNumber, err = r.Uint32(); err != nil {
			return nil, err
		}

		tx.Inputs = append(tx.Inputs, input)
	}

	// 8 byte value plus at least one byte of script length
	outputCount, err := readCount(r, 9, "output")
	if err != nil {
		return nil, err
	}

	tx.Outputs = make([]*Output, 0, outputCount)

	for i := 0; i < outputCount; i++ {
		output := &Output{}

		if output.Satoshis, err = r.Int64(); err != nil {
			return nil, err
		}

		if output.LockingScript, err = r.VarBytes(); err != nil {
			return nil, err
		}

		tx.Outputs = append(tx.Outputs, output)
	}

	if tx.LockTime, err = r.Uint32(); err != nil {
		return nil, err
	}

	return &tx, nil
}

// readCount reads an element count and rejects counts that can not fit in the
// rest of the buffer given the minimum encoded size of one element.
func readCount(r *codec.Reader, minSize int, what string) (int, error) {
	count, err := r.Length()
	if err != nil {
		return 0, err
	}

	if count > r.Remaining()/minSize {
		return 0, errors.NewMalformedInputError("%s count %d exceeds remaining %d bytes", what, count, r.Remaining())
	}

	return count, nil
}

func (tx *Transaction) Bytes() []byte {
	b := make([]byte, 0, tx.Size())
	b = codec.AppendUint32(b, tx.Version)

	b = codec.AppendCompactSize(b, uint64(len(tx.Inputs)))
	for _, input := range tx.Inputs {
		b = codec.AppendHash(b, &input.PreviousTxID)
		b = codec.AppendUint32(b, input.PreviousTxOutIndex)
		b = codec.AppendVarBytes(b, input.UnlockingScript)
		b = codec.AppendUint32(b, input.SequenceNumber)
	}

	b = codec.AppendCompactSize(b, uint64(len(tx.Outputs)))
	for _, output := range tx.Outputs {
		b = codec.AppendInt64(b, output.Satoshis)
		b = codec.AppendVarBytes(b, output.LockingScript)
	}

	return codec.AppendUint32(b, tx.LockTime)
}

// Size returns the length of the serialized transaction.
func (tx *Transaction) Size() int {
	size := 4 + codec.CompactSizeLen(uint64(len(tx.Inputs)))

	for _, input := range tx.Inputs {
		size += 32 + 4 + codec.CompactSizeLen(uint64(len(input.UnlockingScript))) + len(input.UnlockingScript) + 4
	}

	size += codec.CompactSizeLen(uint64(len(tx.Outputs)))

	for _, output := range tx.Outputs {
		size += 8 + codec.CompactSizeLen(uint64(len(output.LockingScript))) + len(output.LockingScript)
	}

	return size + 4
}

// TxID returns the double SHA-256 of the serialized transaction.
func (tx *Transaction) TxID() *chainhash.Hash {
	hash := chainhash.DoubleHashH(tx.Bytes())
	return &hash
}

// IsCoinbase reports whether tx has a single input without a previous output.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].IsCoinbase()
}

func (tx *Transaction) String() string {
	return hex.EncodeToString(tx.Bytes())
}
