package sql_test

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/bsv-blockchain/litenode/stores/blockchain/sql"
	"github.com/bsv-blockchain/litenode/stores/blockchain/storetest"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/bsv-blockchain/litenode/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteMemoryStore(t *testing.T) {
	storeURL, err := url.Parse("sqlitememory:///chain")
	require.NoError(t, err)

	store, err := sql.New(ulogger.TestLogger{}, storeURL)
	require.NoError(t, err)

	defer func() {
		_ = store.Close()
	}()

	assert.Equal(t, util.SqliteMemory, store.GetDBEngine())

	storetest.Run(t, store)
}

func TestSQLiteFileStore(t *testing.T) {
	ctx := context.Background()
	storeURL := &url.URL{Scheme: "sqlite", Path: filepath.Join(t.TempDir(), "chain.db")}
	blocks := storetest.Chain(3)

	store, err := sql.New(ulogger.TestLogger{}, storeURL)
	require.NoError(t, err)

	for _, block := range blocks {
		require.NoError(t, store.StoreBlock(ctx, block, block.Height))
	}

	require.NoError(t, store.Close())

	// the schema is created only when missing
	store, err = sql.New(ulogger.TestLogger{}, storeURL)
	require.NoError(t, err)

	defer func() {
		_ = store.Close()
	}()

	header, meta, err := store.GetBestBlockHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, blocks[2].Hash(), header.Hash())
	assert.Equal(t, uint32(2), meta.Height)
	assert.NotZero(t, meta.ID)
}
