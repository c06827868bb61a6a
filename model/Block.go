package model

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/codec"
	"github.com/bsv-blockchain/litenode/errors"
)

// Block is a header plus the derived height and, when known, its transactions.
// Header-only contexts leave Transactions nil.
type Block struct {
	Header       *BlockHeader
	Height       uint32
	Transactions []*Transaction
}

func NewBlock(header *BlockHeader, height uint32, transactions []*Transaction) *Block {
	return &Block{
		Header:       header,
		Height:       height,
		Transactions: transactions,
	}
}

// NewBlockFromBytes decodes the 80 byte header form. The merkle root is kept as
// the single known node of the transaction tree.
func NewBlockFromBytes(b []byte) (*Block, error) {
	header, err := NewBlockHeaderFromBytes(b)
	if err != nil {
		return nil, err
	}

	return &Block{Header: header}, nil
}

// NewBlockFromFullBytes decodes a header followed by a compact size
// transaction count and the transactions, the block message payload.
func NewBlockFromFullBytes(b []byte) (*Block, error) {
	r := codec.NewReader(b)

	header, err := NewBlockHeaderFromReader(r)
	if err != nil {
		return nil, err
	}

	// the smallest transaction is 10 bytes
	txCount, err := readCount(r, 10, "transaction")
	if err != nil {
		return nil, err
	}

	block := &Block{
		Header:       header,
		Transactions: make([]*Transaction, 0, txCount),
	}

	for i := 0; i < txCount; i++ {
		tx, err := NewTransactionFromReader(r)
		if err != nil {
			return nil, errors.NewDecodeError("error reading transaction %d", i, err)
		}

		block.Transactions = append(block.Transactions, tx)
	}

	if r.Remaining() != 0 {
		return nil, errors.NewMalformedInputError("%d trailing bytes after block", r.Remaining())
	}

	return block, nil
}

func (b *Block) Hash() *chainhash.Hash {
	return b.Header.Hash()
}

// Bytes returns the header bytes, the preimage of the block hash.
func (b *Block) Bytes() []byte {
	return b.Header.Bytes()
}

func (b *Block) FullBytes() []byte {
	buf := b.Header.Bytes()
	buf = codec.AppendCompactSize(buf, uint64(len(b.Transactions)))

	for _, tx := range b.Transactions {
		buf = append(buf, tx.Bytes()...)
	}

	return buf
}

// CalculateMerkleRoot builds the merkle root of the block transactions, duplicating
// the last hash of a level with an odd number of entries.
func (b *Block) CalculateMerkleRoot() *chainhash.Hash {
	if len(b.Transactions) == 0 {
		return &chainhash.Hash{}
	}

	hashes := make([]chainhash.Hash, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		hashes = append(hashes, *tx.TxID())
	}

	for len(hashes) > 1 {
		if len(hashes)%2 != 0 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}

		next := make([]chainhash.Hash, 0, len(hashes)/2)

		for i := 0; i < len(hashes); i += 2 {
			var pair [64]byte

			copy(pair[:32], hashes[i][:])
			copy(pair[32:], hashes[i+1][:])

			next = append(next, chainhash.DoubleHashH(pair[:]))
		}

		hashes = next
	}

	return &hashes[0]
}
