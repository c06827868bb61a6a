package script

import (
	"math/big"

	"github.com/bsv-blockchain/litenode/errors"
)

// Numbers on the stack are minimal two's complement little-endian byte strings.
// Zero is the empty string.

// EncodeNum returns the minimal encoding of n.
func EncodeNum(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{}
	}

	var be []byte

	if n.Sign() > 0 {
		be = n.Bytes()
		if be[0]&0x80 != 0 {
			be = append([]byte{0x00}, be...)
		}
	} else {
		size := len(new(big.Int).Neg(n).Bytes()) + 1

		// shrink while the value still fits in size-1 bytes
		for size > 1 {
			lower := new(big.Int).Lsh(big.NewInt(1), uint(8*(size-1)-1))
			if n.Cmp(new(big.Int).Neg(lower)) < 0 {
				break
			}

			size--
		}

		twos := new(big.Int).Add(n, new(big.Int).Lsh(big.NewInt(1), uint(8*size)))
		be = twos.FillBytes(make([]byte, size))
	}

	return reverse(be)
}

// EncodeInt64 returns the minimal encoding of v.
func EncodeInt64(v int64) []byte {
	return EncodeNum(big.NewInt(v))
}

// DecodeNum decodes b as a number. A maxLen greater than zero limits the
// number of bytes accepted.
func DecodeNum(b []byte, maxLen int) (*big.Int, error) {
	if maxLen > 0 && len(b) > maxLen {
		return nil, errors.NewScriptLimitError("number of %d bytes exceeds the limit of %d", len(b), maxLen)
	}

	n := new(big.Int)
	if len(b) == 0 {
		return n, nil
	}

	n.SetBytes(reverse(b))

	if b[len(b)-1]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}

	return n, nil
}

// AsBool returns false for an item that is empty or made only of zero bytes.
func AsBool(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return true
		}
	}

	return false
}

func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}

	return []byte{}
}

func reverse(b []byte) []byte {
	r := make([]byte, len(b))
	for i, v := range b {
		r[len(b)-1-i] = v
	}

	return r
}
