package model

import (
	"encoding/hex"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/codec"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
)

const BlockHeaderSize = 80

type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version uint32

	// Hash of the previous block header in the blockchain.
	HashPrevBlock *chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	HashMerkleRoot *chainhash.Hash

	// Time the block was created in unix time.
	Timestamp uint32

	// Difficulty target for the block.
	Bits NBit

	// Nonce used to generate the block.
	Nonce uint32
}

// NewBlockHeaderFromBytes decodes exactly one 80 byte header.
func NewBlockHeaderFromBytes(headerBytes []byte) (*BlockHeader, error) {
	r := codec.NewReader(headerBytes)

	header, err := NewBlockHeaderFromReader(r)
	if err != nil {
		return nil, err
	}

	if r.Remaining() != 0 {
		return nil, errors.NewMalformedInputError("block header should be %d bytes long, got %d", BlockHeaderSize, len(headerBytes))
	}

	return header, nil
}

// NewBlockHeaderFromReader decodes the next 80 bytes of r as a header.
func NewBlockHeaderFromReader(r *codec.Reader) (*BlockHeader, error) {
	if r.Remaining() < BlockHeaderSize {
		return nil, errors.NewTruncatedInputError("block header needs %d bytes, have %d", BlockHeaderSize, r.Remaining())
	}

	// the length check above makes the reads below infallible
	version, _ := r.Uint32()
	prev, _ := r.Hash()
	merkleRoot, _ := r.Hash()
	timestamp, _ := r.Uint32()
	bits, _ := r.Uint32()
	nonce, _ := r.Uint32()

	return &BlockHeader{
		Version:        version,
		HashPrevBlock:  &prev,
		HashMerkleRoot: &merkleRoot,
		Timestamp:      timestamp,
		Bits:           NewNBitFromUint32(bits),
		Nonce:          nonce,
	}, nil
}

func NewBlockHeaderFromString(headerHex string) (*BlockHeader, error) {
	headerBytes, err := hex.DecodeString(headerHex)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("error decoding hex string to bytes", err)
	}

	return NewBlockHeaderFromBytes(headerBytes)
}

// Hash returns the identifier of the block, the double SHA-256 of the header bytes.
func (bh *BlockHeader) Hash() *chainhash.Hash {
	hash := chainhash.DoubleHashH(bh.Bytes())
	return &hash
}

// PowHash hashes the header with the proof-of-work algorithm of the provider.
func (bh *BlockHeader) PowHash(p hashing.Provider) (*chainhash.Hash, error) {
	hash, err := hashing.SumHash(p, hashing.BlockHash, bh.Bytes())
	if err != nil {
		return nil, err
	}

	return &hash, nil
}

// Valid reports whether the proof-of-work hash is below the target in Bits.
func (bh *BlockHeader) Valid(p hashing.Provider) bool {
	hash, err := bh.PowHash(p)
	if err != nil {
		return false
	}

	target := bh.Bits.CalculateTarget()
	if target.Sign() <= 0 {
		return false
	}

	return HashToBig(hash).Cmp(target) < 0
}

func (bh *BlockHeader) Bytes() []byte {
	b := make([]byte, 0, BlockHeaderSize)
	b = codec.AppendUint32(b, bh.Version)
	b = codec.AppendHash(b, bh.HashPrevBlock)
	b = codec.AppendHash(b, bh.HashMerkleRoot)
	b = codec.AppendUint32(b, bh.Timestamp)
	b = append(b, bh.Bits[:]...)
	b = codec.AppendUint32(b, bh.Nonce)

	return b
}

func (bh *BlockHeader) String() string {
	return hex.EncodeToString(bh.Bytes())
}

// Equal compares the serialized form of two headers.
func (bh *BlockHeader) Equal(other *BlockHeader) bool {
	if bh == nil || other == nil {
		return bh == other
	}

	return *bh.Hash() == *other.Hash()
}
