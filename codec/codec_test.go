package codec

import (
	"bytes"
	"math"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactSizeRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 252, 253, 65535, 65536, math.MaxUint32, math.MaxUint32 + 1, math.MaxUint64}

	for _, v := range values {
		b := AppendCompactSize(nil, v)
		require.Len(t, b, CompactSizeLen(v))

		offset := 0
		got, err := ReadCompactSize(b, &offset)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(b), offset)

		offset = 0
		got, err = ReadCompactSizeStrict(b, &offset)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestCompactSizeLen(t *testing.T) {
	tests := []struct {
		name string
		v    uint64
		want int
	}{
		{"zero", 0, 1},
		{"max single byte", 0xfc, 1},
		{"min 3 bytes", 0xfd, 3},
		{"max 3 bytes", 0xffff, 3},
		{"min 5 bytes", 0x10000, 5},
		{"max 5 bytes", 0xffffffff, 5},
		{"min 9 bytes", 0x100000000, 9},
		{"max 9 bytes", math.MaxUint64, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompactSizeLen(tt.v))
			assert.Len(t, AppendCompactSize(nil, tt.v), tt.want)
		})
	}
}

func TestCompactSizeEncoding(t *testing.T) {
	assert.Equal(t, []byte{0xfc}, AppendCompactSize(nil, 252))
	assert.Equal(t, []byte{0xfd, 0xfd, 0x00}, AppendCompactSize(nil, 253))
	assert.Equal(t, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}, AppendCompactSize(nil, 65536))
	assert.Equal(t, []byte{0xff, 0, 0, 0, 0, 1, 0, 0, 0}, AppendCompactSize(nil, math.MaxUint32+1))
}

func TestCompactSizeNonCanonical(t *testing.T) {
	b := []byte{0xfd, 0x05, 0x00}

	offset := 0
	v, err := ReadCompactSize(b, &offset)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	offset = 0
	_, err = ReadCompactSizeStrict(b, &offset)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedInput))
	assert.Equal(t, 0, offset)
}

func TestTruncatedReads(t *testing.T) {
	tests := []struct {
		name string
		read func(b []byte, offset *int) error
		buf  []byte
	}{
		{"uint8", func(b []byte, o *int) error { _, err := ReadUint8(b, o); return err }, nil},
		{"uint16", func(b []byte, o *int) error { _, err := ReadUint16(b, o); return err }, []byte{1}},
		{"uint32", func(b []byte, o *int) error { _, err := ReadUint32(b, o); return err }, []byte{1, 2, 3}},
		{"uint64", func(b []byte, o *int) error { _, err := ReadUint64(b, o); return err }, []byte{1, 2, 3, 4, 5, 6, 7}},
		{"hash", func(b []byte, o *int) error { _, err := ReadHash(b, o); return err }, make([]byte, 31)},
		{"compact16", func(b []byte, o *int) error { _, err := ReadCompactSize(b, o); return err }, []byte{0xfd, 1}},
		{"compact32", func(b []byte, o *int) error { _, err := ReadCompactSize(b, o); return err }, []byte{0xfe, 1, 2}},
		{"compact64", func(b []byte, o *int) error { _, err := ReadCompactSize(b, o); return err }, []byte{0xff, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := 0
			err := tt.read(tt.buf, &offset)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrTruncatedInput))
			assert.Equal(t, 0, offset)
		})
	}
}

func TestReadVarBytes(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 300)
	b := AppendVarBytes(nil, payload)

	offset := 0
	got, err := ReadVarBytes(b, &offset)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, len(b), offset)

	t.Run("length exceeds buffer", func(t *testing.T) {
		offset := 0
		_, err := ReadVarBytes([]byte{0x05, 1, 2}, &offset)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMalformedInput))
		assert.Equal(t, 0, offset)
	})

	t.Run("length exceeds int32", func(t *testing.T) {
		offset := 0
		_, err := ReadVarBytes(AppendCompactSize(nil, math.MaxInt32+1), &offset)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMalformedInput))
	})
}

func TestFixedWidthLittleEndian(t *testing.T) {
	var b []byte
	b = AppendUint16(b, 0x0102)
	b = AppendUint32(b, 0x01020304)
	b = AppendUint64(b, 0x0102030405060708)
	b = AppendInt64(b, -1)

	assert.Equal(t, []byte{0x02, 0x01}, b[:2])
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b[2:6])

	r := NewReader(b)

	v16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v16)

	v32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v32)

	v64, err := r.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), v64)

	i64, err := r.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i64)

	assert.Equal(t, 0, r.Remaining())
	assert.Equal(t, len(b), r.Offset())
}

func TestHashAndReverse(t *testing.T) {
	h := chainhash.DoubleHashH([]byte("litenode"))
	b := AppendHash(nil, &h)

	r := NewReader(b)
	got, err := r.Hash()
	require.NoError(t, err)
	assert.Equal(t, h, got)

	assert.Equal(t, make([]byte, 32), AppendHash(nil, nil))
	assert.Equal(t, []byte{3, 2, 1}, ReverseBytes([]byte{1, 2, 3}))
}

func TestInvalidOffset(t *testing.T) {
	_, err := ReadUint8([]byte{1}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}
