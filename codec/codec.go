// Package codec implements the little-endian fixed width integer and compact-size
// primitives that every wire structure is built from.
//
// Readers take the buffer and a pointer to the current offset, and advance the
// offset only when the read succeeds. A read that runs past the end of the buffer
// returns an error wrapping errors.ErrTruncatedInput, a declared length that can
// not be satisfied returns an error wrapping errors.ErrMalformedInput.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
)

const (
	// compact size markers for the 2, 4 and 8 byte forms
	compactSize16 = 0xfd
	compactSize32 = 0xfe
	compactSize64 = 0xff

	// MaxLength is the largest length prefix that is accepted for a byte slice or
	// an element count.
	MaxLength = math.MaxInt32
)

func need(buf []byte, offset *int, n int) error {
	if offset == nil || *offset < 0 {
		return errors.NewInvalidArgumentError("invalid offset")
	}

	if len(buf)-*offset < n {
		return errors.NewTruncatedInputError("need %d bytes at offset %d, have %d", n, *offset, len(buf)-*offset)
	}

	return nil
}

func ReadUint8(buf []byte, offset *int) (uint8, error) {
	if err := need(buf, offset, 1); err != nil {
		return 0, err
	}

	v := buf[*offset]
	*offset++

	return v, nil
}

func ReadUint16(buf []byte, offset *int) (uint16, error) {
	if err := need(buf, offset, 2); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint16(buf[*offset:])
	*offset += 2

	return v, nil
}

func ReadUint32(buf []byte, offset *int) (uint32, error) {
	if err := need(buf, offset, 4); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint32(buf[*offset:])
	*offset += 4

	return v, nil
}

func ReadUint64(buf []byte, offset *int) (uint64, error) {
	if err := need(buf, offset, 8); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint64(buf[*offset:])
	*offset += 8

	return v, nil
}

func ReadInt64(buf []byte, offset *int) (int64, error) {
	v, err := ReadUint64(buf, offset)
	if err != nil {
		return 0, err
	}

	return int64(v), nil //nolint:gosec // two's complement reinterpretation
}

// ReadHash reads 32 bytes verbatim. The bytes are kept in their wire (little-endian) order.
func ReadHash(buf []byte, offset *int) (chainhash.Hash, error) {
	var h chainhash.Hash

	if err := need(buf, offset, chainhash.HashSize); err != nil {
		return h, err
	}

	copy(h[:], buf[*offset:*offset+chainhash.HashSize])
	*offset += chainhash.HashSize

	return h, nil
}

// ReadBytes returns a copy of the next n bytes.
func ReadBytes(buf []byte, offset *int, n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.NewMalformedInputError("negative length %d", n)
	}

	if err := need(buf, offset, n); err != nil {
		return nil, err
	}

	b := make([]byte, n)
	copy(b, buf[*offset:*offset+n])
	*offset += n

	return b, nil
}

// ReadCompactSize reads a compact size integer. Non-minimal encodings are accepted.
func ReadCompactSize(buf []byte, offset *int) (uint64, error) {
	return readCompactSize(buf, offset, false)
}

// ReadCompactSizeStrict reads a compact size integer and rejects encodings that
// are longer than necessary for their value.
func ReadCompactSizeStrict(buf []byte, offset *int) (uint64, error) {
	return readCompactSize(buf, offset, true)
}

func readCompactSize(buf []byte, offset *int, strict bool) (uint64, error) {
	start := 0
	if offset != nil {
		start = *offset
	}

	marker, err := ReadUint8(buf, offset)
	if err != nil {
		return 0, err
	}

	var (
		v   uint64
		min uint64
	)

	switch marker {
	case compactSize16:
		var v16 uint16

		v16, err = ReadUint16(buf, offset)
		v, min = uint64(v16), compactSize16
	case compactSize32:
		var v32 uint32

		v32, err = ReadUint32(buf, offset)
		v, min = uint64(v32), 0x10000
	case compactSize64:
		v, err = ReadUint64(buf, offset)
		min = 0x100000000
	default:
		return uint64(marker), nil
	}

	if err != nil {
		*offset = start
		return 0, err
	}

	if strict && v < min {
		*offset = start
		return 0, errors.NewMalformedInputError("non-canonical compact size 0x%x with marker 0x%02x", v, marker)
	}

	return v, nil
}

// ReadLength reads a compact size that is used as a length or count and
// checks it against MaxLength.
func ReadLength(buf []byte, offset *int) (int, error) {
	start := 0
	if offset != nil {
		start = *offset
	}

	v, err := ReadCompactSize(buf, offset)
	if err != nil {
		return 0, err
	}

	if v > MaxLength {
		*offset = start
		return 0, errors.NewMalformedInputError("length %d exceeds maximum %d", v, MaxLength)
	}

	return int(v), nil
}

// ReadVarBytes reads a compact size length followed by that many bytes. A length
// that is larger than the remaining buffer is reported as malformed input.
func ReadVarBytes(buf []byte, offset *int) ([]byte, error) {
	start := 0
	if offset != nil {
		start = *offset
	}

	n, err := ReadLength(buf, offset)
	if err != nil {
		return nil, err
	}

	if n > len(buf)-*offset {
		*offset = start
		return nil, errors.NewMalformedInputError("declared length %d exceeds remaining %d bytes", n, len(buf)-*offset)
	}

	return ReadBytes(buf, offset, n)
}

func AppendUint16(dst []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, v)
}

func AppendUint32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func AppendUint64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

func AppendInt64(dst []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(v)) //nolint:gosec // two's complement reinterpretation
}

func AppendHash(dst []byte, h *chainhash.Hash) []byte {
	if h == nil {
		return append(dst, make([]byte, chainhash.HashSize)...)
	}

	return append(dst, h[:]...)
}

// AppendCompactSize appends the shortest compact size encoding of v.
func AppendCompactSize(dst []byte, v uint64) []byte {
	return append(dst, bt.VarInt(v).Bytes()...)
}

func AppendVarBytes(dst []byte, b []byte) []byte {
	dst = AppendCompactSize(dst, uint64(len(b)))
	return append(dst, b...)
}

// CompactSizeLen returns the number of bytes AppendCompactSize writes for v: 1, 3, 5 or 9.
func CompactSizeLen(v uint64) int {
	return bt.VarInt(v).Length()
}

// ReverseBytes returns a reversed copy of b, used to switch between the wire
// byte order and the display order of hashes.
func ReverseBytes(b []byte) []byte {
	return bt.ReverseBytes(b)
}
