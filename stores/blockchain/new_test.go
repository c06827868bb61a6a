package blockchain_test

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/bsv-blockchain/litenode/chaincfg"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/settings"
	"github.com/bsv-blockchain/litenode/stores/blockchain"
	"github.com/bsv-blockchain/litenode/stores/blockchain/leveldb"
	"github.com/bsv-blockchain/litenode/stores/blockchain/memory"
	"github.com/bsv-blockchain/litenode/stores/blockchain/sql"
	"github.com/bsv-blockchain/litenode/stores/blockchain/storetest"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ blockchain.Store = (*memory.Memory)(nil)
	_ blockchain.Store = (*leveldb.LevelDB)(nil)
	_ blockchain.Store = (*sql.SQL)(nil)
	_ blockchain.Store = (*blockchain.CachedStore)(nil)
	_ blockchain.Store = (*blockchain.MockStore)(nil)
)

func TestNewStoreSchemes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		storeURL string
	}{
		{"memory", "memory://"},
		{"memory cached", "memory://?cacheTTL=1m"},
		{"leveldb", "leveldb://" + filepath.Join(dir, "leveldb")},
		{"leveldb memory", "leveldb://memory"},
		{"sqlite", "sqlite://" + filepath.Join(dir, "chain.db")},
		{"sqlitememory", "sqlitememory:///chain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			storeURL, err := url.Parse(tt.storeURL)
			require.NoError(t, err)

			store, err := blockchain.NewStore(ctx, ulogger.TestLogger{}, storeURL, &chaincfg.RegressionNetParams)
			require.NoError(t, err)

			defer func() {
				_ = store.Close()
			}()

			height, err := store.GetBlockHeight(ctx, chaincfg.RegressionNetParams.GenesisHash)
			require.NoError(t, err)
			assert.Equal(t, uint32(0), height)

			hash, err := store.GetBlockHashAtHeight(ctx, 0)
			require.NoError(t, err)
			assert.Equal(t, chaincfg.RegressionNetParams.GenesisHash, hash)

			coinbase := chaincfg.RegressionNetParams.GenesisBlock.Transactions[0]
			exists, err := store.GetTransactionExists(ctx, coinbase.TxID())
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestNewStoreGenesisOnlyOnce(t *testing.T) {
	ctx := context.Background()
	storeURL := &url.URL{Scheme: "leveldb", Path: filepath.Join(t.TempDir(), "chain")}

	store, err := blockchain.NewStore(ctx, ulogger.TestLogger{}, storeURL, &chaincfg.MainNetParams)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = blockchain.NewStore(ctx, ulogger.TestLogger{}, storeURL, &chaincfg.MainNetParams)
	require.NoError(t, err)

	defer func() {
		_ = store.Close()
	}()

	header, _, err := store.GetBestBlockHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, chaincfg.MainNetParams.GenesisHash, header.Hash())
}

func TestNewStoreErrors(t *testing.T) {
	ctx := context.Background()

	_, err := blockchain.NewStore(ctx, ulogger.TestLogger{}, nil, nil)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	_, err = blockchain.NewStore(ctx, ulogger.TestLogger{}, &url.URL{Scheme: "aerospike"}, nil)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	storeURL, err := url.Parse("memory://?cacheTTL=soon")
	require.NoError(t, err)

	_, err = blockchain.NewStore(ctx, ulogger.TestLogger{}, storeURL, nil)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestNewStoreFromSettings(t *testing.T) {
	storeURL, err := url.Parse("memory://")
	require.NoError(t, err)

	tSettings := &settings.Settings{
		ChainCfgParams: &chaincfg.RegressionNetParams,
		BlockChain: settings.BlockChainSettings{
			StoreURL: storeURL,
			CacheTTL: time.Minute,
		},
	}

	store, err := blockchain.NewStoreFromSettings(context.Background(), ulogger.TestLogger{}, tSettings)
	require.NoError(t, err)

	defer func() {
		_ = store.Close()
	}()

	_, ok := store.(*blockchain.CachedStore)
	assert.True(t, ok)

	// the configured URL is left untouched
	assert.Empty(t, storeURL.RawQuery)
}

func TestCachedStoreBehavesLikeAStore(t *testing.T) {
	store := blockchain.NewCachedStore(memory.New(0), time.Minute)

	defer func() {
		_ = store.Close()
	}()

	storetest.Run(t, store)
}
