package script

import (
	"encoding/binary"

	"github.com/bsv-blockchain/litenode/errors"
)

const defaultScriptAlloc = 500

// Builder assembles scripts using the shortest push for every data element.
// The first error stops further additions and is returned by Script.
//
//	script, err := NewBuilder().AddOp(OpDUP).AddOp(OpHASH160).
//		AddData(pubKeyHash).AddOp(OpEQUALVERIFY).AddOp(OpCHECKSIG).Script()
type Builder struct {
	script  []byte
	maxSize int
	err     error
}

func NewBuilder() *Builder {
	return &Builder{
		script: make([]byte, 0, defaultScriptAlloc),
	}
}

// WithMaxSize limits the size of the built script, zero means unlimited.
func (b *Builder) WithMaxSize(n int) *Builder {
	b.maxSize = n
	return b
}

func (b *Builder) fits(n int) bool {
	if b.maxSize > 0 && len(b.script)+n > b.maxSize {
		b.err = errors.NewScriptLimitError("adding %d bytes would exceed the maximum script size of %d", n, b.maxSize)
		return false
	}

	return true
}

func (b *Builder) AddOp(op byte) *Builder {
	if b.err != nil || !b.fits(1) {
		return b
	}

	b.script = append(b.script, op)

	return b
}

func (b *Builder) AddOps(ops ...byte) *Builder {
	if b.err != nil || !b.fits(len(ops)) {
		return b
	}

	b.script = append(b.script, ops...)

	return b
}

// canonicalDataSize returns the number of bytes AddData writes for data.
func canonicalDataSize(data []byte) int {
	dataLen := len(data)

	switch {
	case dataLen == 0:
		return 1
	case dataLen == 1 && ((data[0] >= 1 && data[0] <= 16) || data[0] == 0xff):
		return 1
	case dataLen < int(OpPUSHDATA1):
		return 1 + dataLen
	case dataLen <= 0xff:
		return 2 + dataLen
	case dataLen <= 0xffff:
		return 3 + dataLen
	}

	return 5 + dataLen
}

// AddData pushes data with the smallest opcode that produces the same stack item.
// Single bytes 1 to 16 and 0xff, the encoding of -1, use the small number opcodes.
func (b *Builder) AddData(data []byte) *Builder {
	if b.err != nil || !b.fits(canonicalDataSize(data)) {
		return b
	}

	dataLen := len(data)

	switch {
	case dataLen == 0:
		b.script = append(b.script, Op0)
		return b
	case dataLen == 1 && data[0] >= 1 && data[0] <= 16:
		b.script = append(b.script, Op1-1+data[0])
		return b
	case dataLen == 1 && data[0] == 0xff:
		b.script = append(b.script, Op1NEGATE)
		return b
	}

	switch {
	case dataLen < int(OpPUSHDATA1):
		b.script = append(b.script, byte(dataLen))
	case dataLen <= 0xff:
		b.script = append(b.script, OpPUSHDATA1, byte(dataLen))
	case dataLen <= 0xffff:
		b.script = append(b.script, OpPUSHDATA2)
		b.script = binary.LittleEndian.AppendUint16(b.script, uint16(dataLen))
	default:
		b.script = append(b.script, OpPUSHDATA4)
		b.script = binary.LittleEndian.AppendUint32(b.script, uint32(dataLen)) //nolint:gosec // slice length
	}

	b.script = append(b.script, data...)

	return b
}

// AddInt64 pushes val as a number.
func (b *Builder) AddInt64(val int64) *Builder {
	if b.err != nil {
		return b
	}

	if val == 0 {
		return b.AddOp(Op0)
	}

	if val == -1 || (val >= 1 && val <= 16) {
		return b.AddOp(byte(int64(Op1-1) + val))
	}

	return b.AddData(EncodeInt64(val))
}

func (b *Builder) Reset() *Builder {
	b.script = b.script[:0]
	b.err = nil

	return b
}

func (b *Builder) Script() ([]byte, error) {
	return b.script, b.err
}
