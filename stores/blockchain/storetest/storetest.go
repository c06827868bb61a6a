// Package storetest holds the behaviour every chain store backend is tested against.
package storetest

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/stores/blockchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Chain builds n linked blocks starting from an all-zero previous hash. Each
// block carries a single coinbase transaction unique to the block.
func Chain(n int) []*model.Block {
	return Fork(&chainhash.Hash{}, 0, n, 0)
}

// Fork builds n linked blocks on top of prev, the first one at height start.
// Blocks with a different salt never collide with each other.
func Fork(prev *chainhash.Hash, start uint32, n int, salt byte) []*model.Block {
	blocks := make([]*model.Block, 0, n)

	for i := 0; i < n; i++ {
		height := start + uint32(i) //nolint:gosec // test data

		coinbase := &model.Transaction{
			Version: 1,
			Inputs: []*model.Input{{
				PreviousTxOutIndex: 0xffffffff,
				UnlockingScript:    []byte{0x04, byte(height), byte(height >> 8), salt, 0x00},
				SequenceNumber:     0xffffffff,
			}},
			Outputs: []*model.Output{{
				Satoshis:      50 * model.SatoshisPerCoin,
				LockingScript: []byte{0x51},
			}},
		}

		block := &model.Block{
			Header: &model.BlockHeader{
				Version:       1,
				HashPrevBlock: prev,
				Timestamp:     1296688602 + height*600,
				Bits:          model.NewNBitFromUint32(0x207fffff),
				Nonce:         uint32(salt),
			},
			Height:       height,
			Transactions: []*model.Transaction{coinbase},
		}
		block.Header.HashMerkleRoot = block.CalculateMerkleRoot()

		blocks = append(blocks, block)
		prev = block.Hash()
	}

	return blocks
}

// Run exercises a freshly created, empty store.
func Run(t *testing.T, store blockchain.Store) {
	ctx := context.Background()
	blocks := Chain(4)

	t.Run("empty", func(t *testing.T) {
		_, _, err := store.GetBestBlockHeader(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockNotFound))

		_, err = store.GetBlockHeight(ctx, blocks[0].Hash())
		assert.True(t, errors.Is(err, errors.ErrBlockNotFound))

		_, err = store.GetBlockHashAtHeight(ctx, 0)
		assert.True(t, errors.Is(err, errors.ErrBlockNotFound))

		exists, err := store.GetBlockExists(ctx, blocks[0].Hash())
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = store.GetTransaction(ctx, blocks[0].Transactions[0].TxID())
		assert.True(t, errors.Is(err, errors.ErrTxNotFound))
	})

	for i, block := range blocks {
		require.NoError(t, store.StoreBlock(ctx, block, uint32(i))) //nolint:gosec // test data
	}

	t.Run("blocks", func(t *testing.T) {
		for i, block := range blocks {
			height, err := store.GetBlockHeight(ctx, block.Hash())
			require.NoError(t, err)
			assert.Equal(t, uint32(i), height) //nolint:gosec // test data

			hash, err := store.GetBlockHashAtHeight(ctx, height)
			require.NoError(t, err)
			assert.Equal(t, block.Hash(), hash)

			got, err := store.GetBlock(ctx, block.Hash())
			require.NoError(t, err)
			assert.Equal(t, block.FullBytes(), got.FullBytes())
			assert.Equal(t, height, got.Height)

			header, meta, err := store.GetBlockHeader(ctx, block.Hash())
			require.NoError(t, err)
			assert.True(t, block.Header.Equal(header))
			assert.Equal(t, height, meta.Height)
			assert.Equal(t, uint64(1), meta.TxCount)
			assert.Equal(t, uint64(len(block.FullBytes())), meta.SizeInBytes)

			exists, err := store.GetBlockExists(ctx, block.Hash())
			require.NoError(t, err)
			assert.True(t, exists)
		}
	})

	t.Run("best block", func(t *testing.T) {
		header, meta, err := store.GetBestBlockHeader(ctx)
		require.NoError(t, err)
		assert.Equal(t, blocks[3].Hash(), header.Hash())
		assert.Equal(t, uint32(3), meta.Height)
	})

	t.Run("block transactions", func(t *testing.T) {
		for _, block := range blocks {
			txID := block.Transactions[0].TxID()

			exists, err := store.GetTransactionExists(ctx, txID)
			require.NoError(t, err)
			assert.True(t, exists)

			tx, err := store.GetTransaction(ctx, txID)
			require.NoError(t, err)
			assert.Equal(t, block.Transactions[0].Bytes(), tx.Bytes())
		}
	})

	t.Run("duplicate block", func(t *testing.T) {
		err := store.StoreBlock(ctx, blocks[1], 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockExists))
	})

	t.Run("transaction", func(t *testing.T) {
		tx := &model.Transaction{
			Version: 1,
			Inputs: []*model.Input{{
				PreviousTxID:    *blocks[0].Transactions[0].TxID(),
				UnlockingScript: []byte{0x51},
				SequenceNumber:  0xffffffff,
			}},
			Outputs: []*model.Output{{Satoshis: 1000, LockingScript: []byte{0x51}}},
		}

		require.NoError(t, store.StoreTransaction(ctx, tx))
		// storing the same transaction again is not an error
		require.NoError(t, store.StoreTransaction(ctx, tx))

		got, err := store.GetTransaction(ctx, tx.TxID())
		require.NoError(t, err)
		assert.Equal(t, tx.Bytes(), got.Bytes())
	})

	t.Run("reorg replaces canonical hash", func(t *testing.T) {
		fork := Fork(blocks[1].Hash(), 2, 3, 1)

		for _, block := range fork {
			require.NoError(t, store.StoreBlock(ctx, block, block.Height))
		}

		hash, err := store.GetBlockHashAtHeight(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, fork[0].Hash(), hash)

		// the old block is still stored with its own height
		height, err := store.GetBlockHeight(ctx, blocks[2].Hash())
		require.NoError(t, err)
		assert.Equal(t, uint32(2), height)

		header, meta, err := store.GetBestBlockHeader(ctx)
		require.NoError(t, err)
		assert.Equal(t, fork[2].Hash(), header.Hash())
		assert.Equal(t, uint32(4), meta.Height)
	})
}
