package script

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/bsv-blockchain/litenode/errors"
)

// Operation is a single parsed opcode with the data it pushes, if any.
type Operation struct {
	Opcode byte
	Data   []byte
}

// Parse walks the raw script bytes and returns the flat list of operations.
// A push that declares more bytes than remain in the script is an error.
func Parse(script []byte) ([]Operation, error) {
	ops := make([]Operation, 0, len(script))

	for i := 0; i < len(script); {
		op := script[i]
		i++

		var n int

		switch {
		case op >= OpDATA1 && op <= OpDATA75:
			n = int(op)
		case op == OpPUSHDATA1:
			if len(script)-i < 1 {
				return nil, errors.NewScriptInvalidError("OP_PUSHDATA1 at offset %d is missing its length", i-1)
			}

			n = int(script[i])
			i++
		case op == OpPUSHDATA2:
			if len(script)-i < 2 {
				return nil, errors.NewScriptInvalidError("OP_PUSHDATA2 at offset %d is missing its length", i-1)
			}

			n = int(binary.LittleEndian.Uint16(script[i:]))
			i += 2
		case op == OpPUSHDATA4:
			if len(script)-i < 4 {
				return nil, errors.NewScriptInvalidError("OP_PUSHDATA4 at offset %d is missing its length", i-1)
			}

			l := binary.LittleEndian.Uint32(script[i:])
			if uint64(l) > uint64(len(script)-i-4) {
				return nil, errors.NewScriptInvalidError("push of %d bytes at offset %d exceeds script length", l, i-1)
			}

			n = int(l)
			i += 4
		default:
			ops = append(ops, Operation{Opcode: op})
			continue
		}

		if n > len(script)-i {
			return nil, errors.NewScriptInvalidError("push of %d bytes at offset %d exceeds script length", n, i-1)
		}

		ops = append(ops, Operation{Opcode: op, Data: script[i : i+n]})
		i += n
	}

	return ops, nil
}

// Bytes returns the serialized form of the operation.
func (o Operation) Bytes() []byte {
	b := []byte{o.Opcode}

	switch o.Opcode {
	case OpPUSHDATA1:
		b = append(b, byte(len(o.Data)))
	case OpPUSHDATA2:
		b = binary.LittleEndian.AppendUint16(b, uint16(len(o.Data))) //nolint:gosec // length bounded by the parser
	case OpPUSHDATA4:
		b = binary.LittleEndian.AppendUint32(b, uint32(len(o.Data))) //nolint:gosec // length bounded by the parser
	}

	return append(b, o.Data...)
}

// IsPush reports whether the operation only pushes data.
func (o Operation) IsPush() bool {
	return isPush(o.Opcode)
}

func (o Operation) String() string {
	if o.Opcode > Op0 && o.Opcode <= OpPUSHDATA4 {
		return hex.EncodeToString(o.Data)
	}

	return OpcodeName(o.Opcode)
}

// Unparse serializes ops back into script bytes.
func Unparse(ops []Operation) []byte {
	var b []byte

	for _, op := range ops {
		b = append(b, op.Bytes()...)
	}

	return b
}

// Disassemble returns the script as a space separated list of opcode names and
// hex encoded pushes.
func Disassemble(script []byte) (string, error) {
	ops, err := Parse(script)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}

	return strings.Join(parts, " "), nil
}

// IsPushOnly reports whether the script parses and contains nothing but pushes.
func IsPushOnly(script []byte) bool {
	ops, err := Parse(script)
	if err != nil {
		return false
	}

	for _, op := range ops {
		if !op.IsPush() {
			return false
		}
	}

	return true
}
