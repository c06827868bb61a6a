package blockchain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/stretchr/testify/mock"
)

// MockStore implements Store for testing purposes
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetBlockHeight(ctx context.Context, blockHash *chainhash.Hash) (uint32, error) {
	args := m.Called(ctx, blockHash)

	return args.Get(0).(uint32), args.Error(1)
}

func (m *MockStore) GetBlockHashAtHeight(ctx context.Context, height uint32) (*chainhash.Hash, error) {
	args := m.Called(ctx, height)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*chainhash.Hash), args.Error(1)
}

func (m *MockStore) GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	args := m.Called(ctx, blockHash)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Block), args.Error(1)
}

func (m *MockStore) GetBlockHeader(ctx context.Context, blockHash *chainhash.Hash) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	args := m.Called(ctx, blockHash)

	if args.Error(2) != nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).(*model.BlockHeader), args.Get(1).(*model.BlockHeaderMeta), args.Error(2)
}

func (m *MockStore) GetBlockExists(ctx context.Context, blockHash *chainhash.Hash) (bool, error) {
	args := m.Called(ctx, blockHash)

	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetTransaction(ctx context.Context, txHash *chainhash.Hash) (*model.Transaction, error) {
	args := m.Called(ctx, txHash)

	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockStore) GetTransactionExists(ctx context.Context, txHash *chainhash.Hash) (bool, error) {
	args := m.Called(ctx, txHash)

	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetBestBlockHeader(ctx context.Context) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	args := m.Called(ctx)

	if args.Error(2) != nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).(*model.BlockHeader), args.Get(1).(*model.BlockHeaderMeta), args.Error(2)
}

func (m *MockStore) StoreBlock(ctx context.Context, block *model.Block, height uint32) error {
	args := m.Called(ctx, block, height)

	return args.Error(0)
}

func (m *MockStore) StoreTransaction(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)

	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()

	return args.Error(0)
}
