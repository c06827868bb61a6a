// Package memory is an in-process chain store, used by tests and the memory:// store URL.
package memory

import (
	"context"
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/dolthub/swiss"
)

type storedBlock struct {
	block *model.Block
	meta  *model.BlockHeaderMeta
}

type Memory struct {
	mu         sync.RWMutex
	blocks     *swiss.Map[chainhash.Hash, storedBlock]
	chain      *swiss.Map[uint32, chainhash.Hash]
	txs        *swiss.Map[chainhash.Hash, *model.Transaction]
	bestHeight uint32
	hasBest    bool
}

func New(size int) *Memory {
	if size <= 0 {
		size = 1024
	}

	n := uint32(size) //nolint:gosec // checked above

	return &Memory{
		blocks: swiss.NewMap[chainhash.Hash, storedBlock](n),
		chain:  swiss.NewMap[uint32, chainhash.Hash](n),
		txs:    swiss.NewMap[chainhash.Hash, *model.Transaction](n),
	}
}

func (m *Memory) GetBlockHeight(_ context.Context, blockHash *chainhash.Hash) (uint32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sb, ok := m.blocks.Get(*blockHash)
	if !ok {
		return 0, errors.NewBlockNotFoundError("block %s not found", blockHash)
	}

	return sb.meta.Height, nil
}

func (m *Memory) GetBlockHashAtHeight(_ context.Context, height uint32) (*chainhash.Hash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hash, ok := m.chain.Get(height)
	if !ok {
		return nil, errors.NewBlockNotFoundError("no block at height %d", height)
	}

	return &hash, nil
}

func (m *Memory) GetBlock(_ context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sb, ok := m.blocks.Get(*blockHash)
	if !ok {
		return nil, errors.NewBlockNotFoundError("block %s not found", blockHash)
	}

	block := *sb.block

	return &block, nil
}

func (m *Memory) GetBlockHeader(_ context.Context, blockHash *chainhash.Hash) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sb, ok := m.blocks.Get(*blockHash)
	if !ok {
		return nil, nil, errors.NewBlockNotFoundError("block %s not found", blockHash)
	}

	meta := *sb.meta

	return sb.block.Header, &meta, nil
}

func (m *Memory) GetBlockExists(_ context.Context, blockHash *chainhash.Hash) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.blocks.Has(*blockHash), nil
}

func (m *Memory) GetTransaction(_ context.Context, txHash *chainhash.Hash) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.txs.Get(*txHash)
	if !ok {
		return nil, errors.NewTxNotFoundError("transaction %s not found", txHash)
	}

	return tx, nil
}

func (m *Memory) GetTransactionExists(_ context.Context, txHash *chainhash.Hash) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.txs.Has(*txHash), nil
}

func (m *Memory) GetBestBlockHeader(ctx context.Context) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	m.mu.RLock()

	if !m.hasBest {
		m.mu.RUnlock()
		return nil, nil, errors.NewBlockNotFoundError("store is empty")
	}

	hash, _ := m.chain.Get(m.bestHeight)
	m.mu.RUnlock()

	return m.GetBlockHeader(ctx, &hash)
}

func (m *Memory) StoreBlock(_ context.Context, block *model.Block, height uint32) error {
	if block == nil || block.Header == nil {
		return errors.NewInvalidArgumentError("block is nil")
	}

	hash := block.Hash()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blocks.Has(*hash) {
		return errors.NewBlockExistsError("block %s already stored", hash)
	}

	stored := *block
	stored.Height = height

	m.blocks.Put(*hash, storedBlock{
		block: &stored,
		meta:  model.NewBlockHeaderMeta(&stored),
	})
	m.chain.Put(height, *hash)

	for _, tx := range block.Transactions {
		m.txs.Put(*tx.TxID(), tx)
	}

	if !m.hasBest || height >= m.bestHeight {
		m.bestHeight = height
		m.hasBest = true
	}

	return nil
}

func (m *Memory) StoreTransaction(_ context.Context, tx *model.Transaction) error {
	if tx == nil {
		return errors.NewInvalidArgumentError("transaction is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.txs.Put(*tx.TxID(), tx)

	return nil
}

func (m *Memory) Close() error {
	return nil
}
