package blockchain

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/chaincfg"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
	blockchain_store "github.com/bsv-blockchain/litenode/stores/blockchain"
	"github.com/bsv-blockchain/litenode/stores/blockchain/memory"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chainBuilder struct {
	t     *testing.T
	store *memory.Memory
	nonce uint32
}

func newChainBuilder(t *testing.T) *chainBuilder {
	return &chainBuilder{t: t, store: memory.New(0)}
}

// add stores a header with the given time and bits at height. Headers do not
// need to link up, the retarget only looks blocks up by height.
func (c *chainBuilder) add(height uint32, timestamp uint32, bits uint32) *model.BlockHeader {
	c.nonce++

	header := &model.BlockHeader{
		Version:        1,
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: &chainhash.Hash{},
		Timestamp:      timestamp,
		Bits:           model.NewNBitFromUint32(bits),
		Nonce:          c.nonce,
	}

	require.NoError(c.t, c.store.StoreBlock(context.Background(), &model.Block{Header: header}, height))

	return header
}

func (c *chainBuilder) difficulty(params *chaincfg.Params) *Difficulty {
	d, err := NewDifficulty(c.store, ulogger.TestLogger{}, params)
	require.NoError(c.t, err)

	return d
}

func nextBits(t *testing.T, d *Difficulty, prev *model.BlockHeader, prevHeight uint32, timestamp uint32) uint32 {
	bits, err := d.CalcNextWorkRequired(context.Background(), prev, prevHeight, timestamp)
	require.NoError(t, err)

	return bits.ToUint32()
}

func TestNewDifficulty(t *testing.T) {
	store := memory.New(0)

	_, err := NewDifficulty(nil, ulogger.TestLogger{}, &chaincfg.MainNetParams)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	_, err = NewDifficulty(store, ulogger.TestLogger{}, nil)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	params := chaincfg.MainNetParams
	params.Retarget = chaincfg.RetargetPolicy{Name: "broken"}
	_, err = NewDifficulty(store, ulogger.TestLogger{}, &params)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	params.Retarget = chaincfg.RetargetPolicy{
		Name: "zero interval",
		Eras: []chaincfg.RetargetEra{{Interval: 0, TargetTimespan: chaincfg.StandardRetarget.Eras[0].TargetTimespan}},
	}
	_, err = NewDifficulty(store, ulogger.TestLogger{}, &params)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestStandardRetarget(t *testing.T) {
	const (
		bits     = 0x1b0404cb
		start    = 1262152739
		timespan = 14 * 24 * 60 * 60
	)

	tests := []struct {
		name     string
		actual   uint32
		expected uint32
	}{
		{"on time", timespan, 0x1b0404cb},
		{"too fast is clamped to a quarter", 24 * 60 * 60, 0x1b010132},
		{"too slow is clamped to four times", 100 * 24 * 60 * 60, 0x1b10132c},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChainBuilder(t)
			c.add(2016, start, bits)
			prev := c.add(4031, start+tt.actual, bits)

			d := c.difficulty(&chaincfg.MainNetParams)
			assert.Equal(t, tt.expected, nextBits(t, d, prev, 4031, prev.Timestamp+600))
		})
	}
}

func TestStandardRetargetMainnetBlock32256(t *testing.T) {
	c := newChainBuilder(t)
	c.add(30240, 1261130161, 0x1d00ffff)
	prev := c.add(32255, 1262152739, 0x1d00ffff)

	d := c.difficulty(&chaincfg.MainNetParams)
	assert.Equal(t, uint32(0x1d00d86a), nextBits(t, d, prev, 32255, 1262153464))
}

func TestStandardRetargetCappedAtPowLimit(t *testing.T) {
	c := newChainBuilder(t)
	c.add(2016, 1262152739, 0x1d00ffff)
	prev := c.add(4031, 1262152739+100*24*60*60, 0x1d00ffff)

	d := c.difficulty(&chaincfg.MainNetParams)
	assert.Equal(t, uint32(0x1d00ffff), nextBits(t, d, prev, 4031, prev.Timestamp+600))
}

func TestStandardNoRetargetBetweenBoundaries(t *testing.T) {
	c := newChainBuilder(t)
	prev := c.add(4032, 1262152739, 0x1b0404cb)

	d := c.difficulty(&chaincfg.MainNetParams)

	// a slow block outside the testnet rules changes nothing
	assert.Equal(t, uint32(0x1b0404cb), nextBits(t, d, prev, 4032, prev.Timestamp+7200))
}

func TestMissingRetargetWindowStart(t *testing.T) {
	c := newChainBuilder(t)
	prev := c.add(4031, 1262152739, 0x1b0404cb)

	d := c.difficulty(&chaincfg.MainNetParams)

	_, err := d.CalcNextWorkRequired(context.Background(), prev, 4031, prev.Timestamp+600)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBlockNotFound))
}

func TestTestNetMinDifficulty(t *testing.T) {
	const normalBits = 0x1c0ffff0

	powLimitBits := chaincfg.TestNet3Params.PowLimitBits

	t.Run("slow block may use the pow limit", func(t *testing.T) {
		c := newChainBuilder(t)
		prev := c.add(4040, 1300000000, normalBits)

		d := c.difficulty(&chaincfg.TestNet3Params)
		assert.Equal(t, powLimitBits, nextBits(t, d, prev, 4040, prev.Timestamp+20*60+1))
		// exactly twice the spacing is not enough
		assert.Equal(t, uint32(normalBits), nextBits(t, d, prev, 4040, prev.Timestamp+20*60))
	})

	t.Run("scan past min difficulty blocks", func(t *testing.T) {
		c := newChainBuilder(t)
		c.add(4033, 1300000000, normalBits)
		c.add(4034, 1300002000, powLimitBits)
		prev := c.add(4035, 1300004000, powLimitBits)

		d := c.difficulty(&chaincfg.TestNet3Params)
		assert.Equal(t, uint32(normalBits), nextBits(t, d, prev, 4035, prev.Timestamp+60))
	})

	t.Run("scan stops at the retarget boundary", func(t *testing.T) {
		c := newChainBuilder(t)
		c.add(4032, 1300000000, powLimitBits)
		prev := c.add(4033, 1300002000, powLimitBits)

		d := c.difficulty(&chaincfg.TestNet3Params)
		assert.Equal(t, powLimitBits, nextBits(t, d, prev, 4033, prev.Timestamp+60))
	})

	t.Run("retarget height uses the window", func(t *testing.T) {
		c := newChainBuilder(t)
		c.add(2016, 1300000000, normalBits)
		prev := c.add(4031, 1300000000+14*24*60*60, normalBits)

		d := c.difficulty(&chaincfg.TestNet3Params)
		// a late block does not get minimum difficulty on a retarget height
		assert.Equal(t, uint32(normalBits), nextBits(t, d, prev, 4031, prev.Timestamp+3600))
	})
}

func TestRegtestNeverRetargets(t *testing.T) {
	c := newChainBuilder(t)
	prev := c.add(2015, 1296688602, 0x207fffff)

	d := c.difficulty(&chaincfg.RegressionNetParams)
	assert.Equal(t, uint32(0x207fffff), nextBits(t, d, prev, 2015, prev.Timestamp+1))
}

func TestDogecoinEras(t *testing.T) {
	const (
		bits     = 0x1d00ffff
		start    = 1390000000
		timespan = 4 * 60 * 60
	)

	tests := []struct {
		name     string
		height   uint32
		actual   uint32
		expected uint32
	}{
		{"first era on time", 2400, timespan, 0x1d00ffff},
		{"first era too fast is clamped to a sixteenth", 2400, 60, 0x1c0ffff0},
		{"first era too slow is clamped to four times", 2400, 10 * timespan, 0x1d03fffc},
		{"second era too fast is clamped to an eighth", 7200, 60, 0x1c1fffe0},
		{"second era too slow", 7200, 10 * timespan, 0x1d03fffc},
		{"third era too fast is clamped to a quarter", 12000, 60, 0x1c3fffc0},
		{"third era on time", 12000, timespan, 0x1d00ffff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChainBuilder(t)
			// the window starts one block before the previous retarget
			c.add(tt.height-240-1, start, bits)
			prev := c.add(tt.height-1, start+tt.actual, bits)

			d := c.difficulty(&chaincfg.DogecoinParams)
			assert.Equal(t, tt.expected, nextBits(t, d, prev, tt.height-1, prev.Timestamp+60))
		})
	}
}

func TestDogecoinFirstRetargetWindow(t *testing.T) {
	c := newChainBuilder(t)
	c.add(0, 1390000000, 0x1d00ffff)
	prev := c.add(239, 1390000000+4*60*60, 0x1d00ffff)

	d := c.difficulty(&chaincfg.DogecoinParams)
	assert.Equal(t, uint32(0x1d00ffff), nextBits(t, d, prev, 239, prev.Timestamp+60))
}

func TestDogecoinDigishield(t *testing.T) {
	const start = 1400000000

	tests := []struct {
		name     string
		actual   int64
		expected uint32
	}{
		{"on time", 60, 0x1d00ffff},
		{"fast block is dampened", 0, 0x1d00e221},
		{"backwards timestamp is clamped", -200, 0x1d00bfff},
		{"slow block is clamped", 1000, 0x1d017ffe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChainBuilder(t)
			c.add(149998, start, 0x1d00ffff)
			prev := c.add(149999, uint32(start+tt.actual), 0x1d00ffff)

			d := c.difficulty(&chaincfg.DogecoinParams)
			assert.Equal(t, tt.expected, nextBits(t, d, prev, 149999, prev.Timestamp+60))
		})
	}
}

func TestDogecoinTestNetMinDifficulty(t *testing.T) {
	powLimitBits := chaincfg.DogecoinTestNetParams.PowLimitBits

	c := newChainBuilder(t)
	c.add(1000, 1400000000, 0x1d00ffff)
	prev := c.add(1001, 1400000060, powLimitBits)

	d := c.difficulty(&chaincfg.DogecoinTestNetParams)

	// no scan back, the min difficulty bits of the parent are kept
	assert.Equal(t, powLimitBits, nextBits(t, d, prev, 1001, prev.Timestamp+60))

	// and a late block may use the limit
	prev = c.add(1002, 1400000120, 0x1d00ffff)
	assert.Equal(t, powLimitBits, nextBits(t, d, prev, 1002, prev.Timestamp+121))
	assert.Equal(t, uint32(0x1d00ffff), nextBits(t, d, prev, 1002, prev.Timestamp+120))
}

func TestDifficultyWithMockStore(t *testing.T) {
	store := &blockchain_store.MockStore{}

	first := &model.BlockHeader{
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: &chainhash.Hash{},
		Timestamp:      1261130161,
		Bits:           model.NewNBitFromUint32(0x1d00ffff),
	}
	prev := &model.BlockHeader{
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: &chainhash.Hash{},
		Timestamp:      1262152739,
		Bits:           model.NewNBitFromUint32(0x1d00ffff),
	}

	store.On("GetBlockHashAtHeight", context.Background(), uint32(30240)).Return(first.Hash(), nil).Once()
	store.On("GetBlockHeader", context.Background(), first.Hash()).Return(first, &model.BlockHeaderMeta{Height: 30240}, nil).Once()

	d, err := NewDifficulty(store, ulogger.TestLogger{}, &chaincfg.MainNetParams)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x1d00d86a), nextBits(t, d, prev, 32255, prev.Timestamp+600))
	store.AssertExpectations(t)
}
