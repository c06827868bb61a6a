package blockchain

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/jellydator/ttlcache/v3"
)

type cachedHeader struct {
	header *model.BlockHeader
	meta   model.BlockHeaderMeta
}

// CachedStore keeps recently read blocks, headers and transactions in memory
// for ttl. Stored data is immutable once written, except for the canonical
// hash at a height, which is dropped from the cache whenever a block is stored
// at that height.
type CachedStore struct {
	store     Store
	blocks    *ttlcache.Cache[chainhash.Hash, *model.Block]
	headers   *ttlcache.Cache[chainhash.Hash, cachedHeader]
	heights   *ttlcache.Cache[uint32, chainhash.Hash]
	txs       *ttlcache.Cache[chainhash.Hash, *model.Transaction]
	closeOnce sync.Once
}

func NewCachedStore(store Store, ttl time.Duration) *CachedStore {
	c := &CachedStore{
		store: store,
		blocks: ttlcache.New[chainhash.Hash, *model.Block](
			ttlcache.WithTTL[chainhash.Hash, *model.Block](ttl),
			ttlcache.WithDisableTouchOnHit[chainhash.Hash, *model.Block](),
		),
		headers: ttlcache.New[chainhash.Hash, cachedHeader](
			ttlcache.WithTTL[chainhash.Hash, cachedHeader](ttl),
			ttlcache.WithDisableTouchOnHit[chainhash.Hash, cachedHeader](),
		),
		heights: ttlcache.New[uint32, chainhash.Hash](
			ttlcache.WithTTL[uint32, chainhash.Hash](ttl),
			ttlcache.WithDisableTouchOnHit[uint32, chainhash.Hash](),
		),
		txs: ttlcache.New[chainhash.Hash, *model.Transaction](
			ttlcache.WithTTL[chainhash.Hash, *model.Transaction](ttl),
			ttlcache.WithDisableTouchOnHit[chainhash.Hash, *model.Transaction](),
		),
	}

	go c.blocks.Start()
	go c.headers.Start()
	go c.heights.Start()
	go c.txs.Start()

	return c
}

func (c *CachedStore) GetBlockHeight(ctx context.Context, blockHash *chainhash.Hash) (uint32, error) {
	if item := c.headers.Get(*blockHash); item != nil {
		return item.Value().meta.Height, nil
	}

	_, meta, err := c.GetBlockHeader(ctx, blockHash)
	if err != nil {
		return 0, err
	}

	return meta.Height, nil
}

func (c *CachedStore) GetBlockHashAtHeight(ctx context.Context, height uint32) (*chainhash.Hash, error) {
	if item := c.heights.Get(height); item != nil {
		hash := item.Value()
		return &hash, nil
	}

	hash, err := c.store.GetBlockHashAtHeight(ctx, height)
	if err != nil {
		return nil, err
	}

	c.heights.Set(height, *hash, ttlcache.DefaultTTL)

	return hash, nil
}

func (c *CachedStore) GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	if item := c.blocks.Get(*blockHash); item != nil {
		block := *item.Value()
		return &block, nil
	}

	block, err := c.store.GetBlock(ctx, blockHash)
	if err != nil {
		return nil, err
	}

	cached := *block
	c.blocks.Set(*blockHash, &cached, ttlcache.DefaultTTL)

	return block, nil
}

func (c *CachedStore) GetBlockHeader(ctx context.Context, blockHash *chainhash.Hash) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	if item := c.headers.Get(*blockHash); item != nil {
		v := item.Value()
		meta := v.meta

		return v.header, &meta, nil
	}

	header, meta, err := c.store.GetBlockHeader(ctx, blockHash)
	if err != nil {
		return nil, nil, err
	}

	c.headers.Set(*blockHash, cachedHeader{header: header, meta: *meta}, ttlcache.DefaultTTL)

	return header, meta, nil
}

func (c *CachedStore) GetBlockExists(ctx context.Context, blockHash *chainhash.Hash) (bool, error) {
	if c.headers.Has(*blockHash) || c.blocks.Has(*blockHash) {
		return true, nil
	}

	// misses are not cached, the block may be stored at any time
	return c.store.GetBlockExists(ctx, blockHash)
}

func (c *CachedStore) GetTransaction(ctx context.Context, txHash *chainhash.Hash) (*model.Transaction, error) {
	if item := c.txs.Get(*txHash); item != nil {
		return item.Value(), nil
	}

	tx, err := c.store.GetTransaction(ctx, txHash)
	if err != nil {
		return nil, err
	}

	c.txs.Set(*txHash, tx, ttlcache.DefaultTTL)

	return tx, nil
}

func (c *CachedStore) GetTransactionExists(ctx context.Context, txHash *chainhash.Hash) (bool, error) {
	if c.txs.Has(*txHash) {
		return true, nil
	}

	return c.store.GetTransactionExists(ctx, txHash)
}

func (c *CachedStore) GetBestBlockHeader(ctx context.Context) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	return c.store.GetBestBlockHeader(ctx)
}

func (c *CachedStore) StoreBlock(ctx context.Context, block *model.Block, height uint32) error {
	err := c.store.StoreBlock(ctx, block, height)

	c.heights.Delete(height)

	return err
}

func (c *CachedStore) StoreTransaction(ctx context.Context, tx *model.Transaction) error {
	return c.store.StoreTransaction(ctx, tx)
}

func (c *CachedStore) Close() error {
	c.closeOnce.Do(func() {
		c.blocks.Stop()
		c.headers.Stop()
		c.heights.Stop()
		c.txs.Stop()
	})

	return c.store.Close()
}
