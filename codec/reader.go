package codec

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Reader is a cursor over a byte slice that wraps the offset based read functions.
type Reader struct {
	buf    []byte
	offset int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.offset
}

func (r *Reader) Uint8() (uint8, error) {
	return ReadUint8(r.buf, &r.offset)
}

func (r *Reader) Uint16() (uint16, error) {
	return ReadUint16(r.buf, &r.offset)
}

func (r *Reader) Uint32() (uint32, error) {
	return ReadUint32(r.buf, &r.offset)
}

func (r *Reader) Uint64() (uint64, error) {
	return ReadUint64(r.buf, &r.offset)
}

func (r *Reader) Int64() (int64, error) {
	return ReadInt64(r.buf, &r.offset)
}

func (r *Reader) Hash() (chainhash.Hash, error) {
	return ReadHash(r.buf, &r.offset)
}

func (r *Reader) Bytes(n int) ([]byte, error) {
	return ReadBytes(r.buf, &r.offset, n)
}

func (r *Reader) CompactSize() (uint64, error) {
	return ReadCompactSize(r.buf, &r.offset)
}

func (r *Reader) Length() (int, error) {
	return ReadLength(r.buf, &r.offset)
}

func (r *Reader) VarBytes() ([]byte, error) {
	return ReadVarBytes(r.buf, &r.offset)
}
