package model

// BlockHeaderMeta is what the chain stores keep next to a header.
type BlockHeaderMeta struct {
	ID          uint64 `json:"id"`            // ID of the block in the store, 0 when the store has no row ids.
	Height      uint32 `json:"height"`        // Height of the block in the blockchain.
	TxCount     uint64 `json:"tx_count"`      // Number of transactions in the block.
	SizeInBytes uint64 `json:"size_in_bytes"` // Size of the full block in bytes.
}

func NewBlockHeaderMeta(block *Block) *BlockHeaderMeta {
	return &BlockHeaderMeta{
		Height:      block.Height,
		TxCount:     uint64(len(block.Transactions)),
		SizeInBytes: uint64(len(block.FullBytes())),
	}
}
