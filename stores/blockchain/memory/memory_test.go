package memory_test

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/litenode/stores/blockchain/memory"
	"github.com/bsv-blockchain/litenode/stores/blockchain/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, memory.New(0))
}

func TestMemoryGetBlockReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := memory.New(16)

	block := storetest.Chain(1)[0]
	require.NoError(t, store.StoreBlock(ctx, block, 7))

	got, err := store.GetBlock(ctx, block.Hash())
	require.NoError(t, err)

	got.Height = 99

	again, err := store.GetBlock(ctx, block.Hash())
	require.NoError(t, err)
	assert.Equal(t, uint32(7), again.Height)
}
