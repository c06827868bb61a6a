package script

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/litenode/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeNum(t *testing.T) {
	tests := []struct {
		n    int64
		want []byte
	}{
		{0, []byte{}},
		{1, []byte{0x01}},
		{-1, []byte{0xff}},
		{16, []byte{0x10}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x00}},
		{-128, []byte{0x80}},
		{-129, []byte{0x7f, 0xff}},
		{255, []byte{0xff, 0x00}},
		{256, []byte{0x00, 0x01}},
		{-256, []byte{0x00, 0xff}},
		{32767, []byte{0xff, 0x7f}},
		{32768, []byte{0x00, 0x80, 0x00}},
		{-32768, []byte{0x00, 0x80}},
	}

	for _, tt := range tests {
		got := EncodeInt64(tt.n)
		assert.Equal(t, tt.want, got, "encode %d", tt.n)

		n, err := DecodeNum(got, 0)
		require.NoError(t, err)
		assert.Equal(t, tt.n, n.Int64(), "decode %x", got)
	}
}

func TestNumRoundTrip(t *testing.T) {
	for v := int64(-70000); v <= 70000; v += 7 {
		n, err := DecodeNum(EncodeInt64(v), 0)
		require.NoError(t, err)
		require.Equal(t, v, n.Int64())
	}

	huge, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	n, err := DecodeNum(EncodeNum(huge), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, huge.Cmp(n))
}

func TestDecodeNumLimit(t *testing.T) {
	_, err := DecodeNum(make([]byte, 5), 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrScriptLimit))

	n, err := DecodeNum(make([]byte, 4), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n.Int64())
}

func TestAsBool(t *testing.T) {
	assert.False(t, AsBool(nil))
	assert.False(t, AsBool([]byte{}))
	assert.False(t, AsBool([]byte{0, 0, 0}))
	assert.True(t, AsBool([]byte{0, 0, 1}))
	assert.True(t, AsBool([]byte{0x80}))
}
