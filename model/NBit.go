package model

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/litenode/errors"
)

var (
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)

	// difficulty 1 target, 0x1d00ffff expanded
	bdiff1 = CompactToBig(0x1d00ffff)
)

// NBit is the compact difficulty target of a block header, kept in wire (little-endian) byte order.
type NBit [4]byte

func NewNBitFromUint32(compact uint32) NBit {
	var n NBit
	binary.LittleEndian.PutUint32(n[:], compact)

	return n
}

// NewNBitFromSlice creates an NBit from 4 bytes in wire order.
func NewNBitFromSlice(b []byte) (*NBit, error) {
	if len(b) != 4 {
		return nil, errors.NewInvalidArgumentError("nBit should be 4 bytes long, got %d", len(b))
	}

	var n NBit

	copy(n[:], b)

	return &n, nil
}

// NewNBitFromString parses the big-endian hex form, e.g. "1d00ffff".
func NewNBitFromString(s string) (*NBit, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid nBit hex %q", s, err)
	}

	return NewNBitFromSlice(bt.ReverseBytes(b))
}

func (n NBit) ToUint32() uint32 {
	return binary.LittleEndian.Uint32(n[:])
}

func (n NBit) String() string {
	return hex.EncodeToString(bt.ReverseBytes(n[:]))
}

func (n NBit) CloneBytes() []byte {
	b := make([]byte, 4)
	copy(b, n[:])

	return b
}

func (n NBit) CalculateTarget() *big.Int {
	return CompactToBig(n.ToUint32())
}

// CalculateDifficulty returns the difficulty relative to the 0x1d00ffff target.
func (n NBit) CalculateDifficulty() *big.Float {
	target := n.CalculateTarget()
	if target.Sign() <= 0 {
		return new(big.Float)
	}

	return new(big.Float).Quo(new(big.Float).SetInt(bdiff1), new(big.Float).SetInt(target))
}

// CompactToBig converts a compact representation of a whole number N to a big
// integer. The representation is similar to IEEE754 floating point numbers.
//
// Like IEEE754 floating point, there are three basic components: the sign,
// the exponent, and the mantissa. They are broken out as follows:
//
//   - the most significant 8 bits represent the unsigned base 256 exponent
//
//   - bit 23 (the 24th bit) represents the sign bit
//
//   - the least significant 23 bits represent the mantissa
//
//     -------------------------------------------------
//     |   Exponent     |    Sign    |    Mantissa     |
//     -------------------------------------------------
//     | 8 bits [31-24] | 1 bit [23] | 23 bits [22-00] |
//     -------------------------------------------------
//
// The formula to calculate N is:
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int

	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number. The compact representation only provides 23 bits
// of precision, so values larger than (2^23 - 1) only encode the most
// significant digits of the number. See CompactToBig for details.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes. So, shift the number right or left
	// accordingly. This is equivalent to:
	// mantissa = mantissa / 256^(exponent-3)
	var mantissa uint32

	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		//nolint:gosec // at most 3 bytes
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Abs(n)
		//nolint:gosec // at most 3 bytes after the shift
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// When the mantissa already has the sign bit set, the number is too
	// large to fit into the available 23-bits, so divide the number by 256
	// and increment the exponent accordingly.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	//nolint:gosec // exponent fits in a byte for 256-bit targets
	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}

	return compact
}

// RoundTripTarget passes a target through its compact form, dropping the
// precision the compact form can not hold.
func RoundTripTarget(n *big.Int) *big.Int {
	return CompactToBig(BigToCompact(n))
}

// CalcWork calculates a work value from difficulty bits. Since a lower
// target equates to higher difficulty, the work is the inverse of the target:
// (1 << 256) / (target + 1).
func CalcWork(bits uint32) *big.Int {
	difficultyNum := CompactToBig(bits)
	if difficultyNum.Sign() <= 0 {
		return big.NewInt(0)
	}

	denominator := new(big.Int).Add(difficultyNum, bigOne)

	return new(big.Int).Div(oneLsh256, denominator)
}
