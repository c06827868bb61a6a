// Package blockchain defines the chain index and chain store the validators read
// from, and the URL based factory for the storage backends.
package blockchain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/model"
)

// ChainIndex resolves block heights and the canonical chain.
type ChainIndex interface {
	// GetBlockHeight returns the height of a stored block, or an error wrapping
	// errors.ErrBlockNotFound.
	GetBlockHeight(ctx context.Context, blockHash *chainhash.Hash) (uint32, error)

	// GetBlockHashAtHeight returns the hash of the block on the canonical chain at height.
	GetBlockHashAtHeight(ctx context.Context, height uint32) (*chainhash.Hash, error)
}

// ChainStore gives read access to stored blocks and transactions.
type ChainStore interface {
	GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error)
	GetBlockHeader(ctx context.Context, blockHash *chainhash.Hash) (*model.BlockHeader, *model.BlockHeaderMeta, error)
	GetBlockExists(ctx context.Context, blockHash *chainhash.Hash) (bool, error)
	GetTransaction(ctx context.Context, txHash *chainhash.Hash) (*model.Transaction, error)
	GetTransactionExists(ctx context.Context, txHash *chainhash.Hash) (bool, error)
}

type Store interface {
	ChainIndex
	ChainStore

	// GetBestBlockHeader returns the header at the greatest height of the canonical chain.
	GetBestBlockHeader(ctx context.Context) (*model.BlockHeader, *model.BlockHeaderMeta, error)

	// StoreBlock stores the block and its transactions and makes it the canonical
	// block at height. Storing a block twice returns an error wrapping errors.ErrBlockExists.
	StoreBlock(ctx context.Context, block *model.Block, height uint32) error

	StoreTransaction(ctx context.Context, tx *model.Transaction) error

	Close() error
}
