// Package script implements the stack based transaction script language: a
// parser that flattens raw script bytes into operations, and an engine that
// executes them in a single linear pass over a main and an alternate stack.
package script

import (
	"fmt"
)

// Opcode values. Pushes of 1 to 75 bytes use the length itself as the opcode.
const (
	Op0                   byte = 0x00
	OpFALSE               byte = 0x00
	OpDATA1               byte = 0x01
	OpDATA75              byte = 0x4b
	OpPUSHDATA1           byte = 0x4c
	OpPUSHDATA2           byte = 0x4d
	OpPUSHDATA4           byte = 0x4e
	Op1NEGATE             byte = 0x4f
	OpRESERVED            byte = 0x50
	Op1                   byte = 0x51
	OpTRUE                byte = 0x51
	Op2                   byte = 0x52
	Op3                   byte = 0x53
	Op16                  byte = 0x60
	OpNOP                 byte = 0x61
	OpVER                 byte = 0x62
	OpIF                  byte = 0x63
	OpNOTIF               byte = 0x64
	OpVERIF               byte = 0x65
	OpVERNOTIF            byte = 0x66
	OpELSE                byte = 0x67
	OpENDIF               byte = 0x68
	OpVERIFY              byte = 0x69
	OpRETURN              byte = 0x6a
	OpTOALTSTACK          byte = 0x6b
	OpFROMALTSTACK        byte = 0x6c
	Op2DROP               byte = 0x6d
	Op2DUP                byte = 0x6e
	Op3DUP                byte = 0x6f
	Op2OVER               byte = 0x70
	Op2ROT                byte = 0x71
	Op2SWAP               byte = 0x72
	OpIFDUP               byte = 0x73
	OpDEPTH               byte = 0x74
	OpDROP                byte = 0x75
	OpDUP                 byte = 0x76
	OpNIP                 byte = 0x77
	OpOVER                byte = 0x78
	OpPICK                byte = 0x79
	OpROLL                byte = 0x7a
	OpROT                 byte = 0x7b
	OpSWAP                byte = 0x7c
	OpTUCK                byte = 0x7d
	OpCAT                 byte = 0x7e
	OpSUBSTR              byte = 0x7f
	OpLEFT                byte = 0x80
	OpRIGHT               byte = 0x81
	OpSIZE                byte = 0x82
	OpINVERT              byte = 0x83
	OpAND                 byte = 0x84
	OpOR                  byte = 0x85
	OpXOR                 byte = 0x86
	OpEQUAL               byte = 0x87
	OpEQUALVERIFY         byte = 0x88
	OpRESERVED1           byte = 0x89
	OpRESERVED2           byte = 0x8a
	Op1ADD                byte = 0x8b
	Op1SUB                byte = 0x8c
	Op2MUL                byte = 0x8d
	Op2DIV                byte = 0x8e
	OpNEGATE              byte = 0x8f
	OpABS                 byte = 0x90
	OpNOT                 byte = 0x91
	Op0NOTEQUAL           byte = 0x92
	OpADD                 byte = 0x93
	OpSUB                 byte = 0x94
	OpMUL                 byte = 0x95
	OpDIV                 byte = 0x96
	OpMOD                 byte = 0x97
	OpLSHIFT              byte = 0x98
	OpRSHIFT              byte = 0x99
	OpBOOLAND             byte = 0x9a
	OpBOOLOR              byte = 0x9b
	OpNUMEQUAL            byte = 0x9c
	OpNUMEQUALVERIFY      byte = 0x9d
	OpNUMNOTEQUAL         byte = 0x9e
	OpLESSTHAN            byte = 0x9f
	OpGREATERTHAN         byte = 0xa0
	OpLESSTHANOREQUAL     byte = 0xa1
	OpGREATERTHANOREQUAL  byte = 0xa2
	OpMIN                 byte = 0xa3
	OpMAX                 byte = 0xa4
	OpWITHIN              byte = 0xa5
	OpRIPEMD160           byte = 0xa6
	OpSHA1                byte = 0xa7
	OpSHA256              byte = 0xa8
	OpHASH160             byte = 0xa9
	OpHASH256             byte = 0xaa
	OpCODESEPARATOR       byte = 0xab
	OpCHECKSIG            byte = 0xac
	OpCHECKSIGVERIFY      byte = 0xad
	OpCHECKMULTISIG       byte = 0xae
	OpCHECKMULTISIGVERIFY byte = 0xaf
	OpNOP1                byte = 0xb0
	OpNOP2                byte = 0xb1
	OpNOP3                byte = 0xb2
	OpNOP10               byte = 0xb9
	OpINVALIDOPCODE       byte = 0xff
)

var opcodeNames = map[byte]string{
	Op0:                   "OP_0",
	OpPUSHDATA1:           "OP_PUSHDATA1",
	OpPUSHDATA2:           "OP_PUSHDATA2",
	OpPUSHDATA4:           "OP_PUSHDATA4",
	Op1NEGATE:             "OP_1NEGATE",
	OpRESERVED:            "OP_RESERVED",
	OpNOP:                 "OP_NOP",
	OpVER:                 "OP_VER",
	OpIF:                  "OP_IF",
	OpNOTIF:               "OP_NOTIF",
	OpVERIF:               "OP_VERIF",
	OpVERNOTIF:            "OP_VERNOTIF",
	OpELSE:                "OP_ELSE",
	OpENDIF:               "OP_ENDIF",
	OpVERIFY:              "OP_VERIFY",
	OpRETURN:              "OP_RETURN",
	OpTOALTSTACK:          "OP_TOALTSTACK",
	OpFROMALTSTACK:        "OP_FROMALTSTACK",
	Op2DROP:               "OP_2DROP",
	Op2DUP:                "OP_2DUP",
	Op3DUP:                "OP_3DUP",
	Op2OVER:               "OP_2OVER",
	Op2ROT:                "OP_2ROT",
	Op2SWAP:               "OP_2SWAP",
	OpIFDUP:               "OP_IFDUP",
	OpDEPTH:               "OP_DEPTH",
	OpDROP:                "OP_DROP",
	OpDUP:                 "OP_DUP",
	OpNIP:                 "OP_NIP",
	OpOVER:                "OP_OVER",
	OpPICK:                "OP_PICK",
	OpROLL:                "OP_ROLL",
	OpROT:                 "OP_ROT",
	OpSWAP:                "OP_SWAP",
	OpTUCK:                "OP_TUCK",
	OpCAT:                 "OP_CAT",
	OpSUBSTR:              "OP_SUBSTR",
	OpLEFT:                "OP_LEFT",
	OpRIGHT:               "OP_RIGHT",
	OpSIZE:                "OP_SIZE",
	OpINVERT:              "OP_INVERT",
	OpAND:                 "OP_AND",
	OpOR:                  "OP_OR",
	OpXOR:                 "OP_XOR",
	OpEQUAL:               "OP_EQUAL",
	OpEQUALVERIFY:         "OP_EQUALVERIFY",
	OpRESERVED1:           "OP_RESERVED1",
	OpRESERVED2:           "OP_RESERVED2",
	Op1ADD:                "OP_1ADD",
	Op1SUB:                "OP_1SUB",
	Op2MUL:                "OP_2MUL",
	Op2DIV:                "OP_2DIV",
	OpNEGATE:              "OP_NEGATE",
	OpABS:                 "OP_ABS",
	OpNOT:                 "OP_NOT",
	Op0NOTEQUAL:           "OP_0NOTEQUAL",
	OpADD:                 "OP_ADD",
	OpSUB:                 "OP_SUB",
	OpMUL:                 "OP_MUL",
	OpDIV:                 "OP_DIV",
	OpMOD:                 "OP_MOD",
	OpLSHIFT:              "OP_LSHIFT",
	OpRSHIFT:              "OP_RSHIFT",
	OpBOOLAND:             "OP_BOOLAND",
	OpBOOLOR:              "OP_BOOLOR",
	OpNUMEQUAL:            "OP_NUMEQUAL",
	OpNUMEQUALVERIFY:      "OP_NUMEQUALVERIFY",
	OpNUMNOTEQUAL:         "OP_NUMNOTEQUAL",
	OpLESSTHAN:            "OP_LESSTHAN",
	OpGREATERTHAN:         "OP_GREATERTHAN",
	OpLESSTHANOREQUAL:     "OP_LESSTHANOREQUAL",
	OpGREATERTHANOREQUAL:  "OP_GREATERTHANOREQUAL",
	OpMIN:                 "OP_MIN",
	OpMAX:                 "OP_MAX",
	OpWITHIN:              "OP_WITHIN",
	OpRIPEMD160:           "OP_RIPEMD160",
	OpSHA1:                "OP_SHA1",
	OpSHA256:              "OP_SHA256",
	OpHASH160:             "OP_HASH160",
	OpHASH256:             "OP_HASH256",
	OpCODESEPARATOR:       "OP_CODESEPARATOR",
	OpCHECKSIG:            "OP_CHECKSIG",
	OpCHECKSIGVERIFY:      "OP_CHECKSIGVERIFY",
	OpCHECKMULTISIG:       "OP_CHECKMULTISIG",
	OpCHECKMULTISIGVERIFY: "OP_CHECKMULTISIGVERIFY",
	OpINVALIDOPCODE:       "OP_INVALIDOPCODE",
}

// opcodeArity is the number of main stack items an opcode needs before it can run.
var opcodeArity = map[byte]int{
	OpIF:                  1,
	OpNOTIF:               1,
	OpVERIFY:              1,
	OpTOALTSTACK:          1,
	Op2DROP:               2,
	Op2DUP:                2,
	Op3DUP:                3,
	Op2OVER:               4,
	Op2ROT:                6,
	Op2SWAP:               4,
	OpIFDUP:               1,
	OpDROP:                1,
	OpDUP:                 1,
	OpNIP:                 2,
	OpOVER:                2,
	OpPICK:                1,
	OpROLL:                1,
	OpROT:                 3,
	OpSWAP:                2,
	OpTUCK:                2,
	OpSIZE:                1,
	OpEQUAL:               2,
	OpEQUALVERIFY:         2,
	Op1ADD:                1,
	Op1SUB:                1,
	OpNEGATE:              1,
	OpABS:                 1,
	OpNOT:                 1,
	Op0NOTEQUAL:           1,
	OpADD:                 2,
	OpSUB:                 2,
	OpBOOLAND:             2,
	OpBOOLOR:              2,
	OpNUMEQUAL:            2,
	OpNUMEQUALVERIFY:      2,
	OpNUMNOTEQUAL:         2,
	OpLESSTHAN:            2,
	OpGREATERTHAN:         2,
	OpLESSTHANOREQUAL:     2,
	OpGREATERTHANOREQUAL:  2,
	OpMIN:                 2,
	OpMAX:                 2,
	OpWITHIN:              3,
	OpRIPEMD160:           1,
	OpSHA1:                1,
	OpSHA256:              1,
	OpHASH160:             1,
	OpHASH256:             1,
	OpCHECKSIG:            2,
	OpCHECKSIGVERIFY:      2,
	OpCHECKMULTISIG:       1,
	OpCHECKMULTISIGVERIFY: 1,
}

// OpcodeName returns the display name of op, OP_<n> for small numbers and
// OP_NOP<n> for the expansion nops.
func OpcodeName(op byte) string {
	switch {
	case op >= OpDATA1 && op <= OpDATA75:
		return fmt.Sprintf("OP_DATA_%d", op)
	case op >= Op1 && op <= Op16:
		return fmt.Sprintf("OP_%d", op-Op1+1)
	case op >= OpNOP1 && op <= OpNOP10:
		return fmt.Sprintf("OP_NOP%d", op-OpNOP1+1)
	}

	if name, ok := opcodeNames[op]; ok {
		return name
	}

	return fmt.Sprintf("OP_UNKNOWN%d", op)
}

// IsDisabled reports whether op is permanently disabled. A script that contains
// a disabled opcode fails even when the opcode sits in a branch that is not taken.
func IsDisabled(op byte) bool {
	switch op {
	case OpCAT, OpSUBSTR, OpLEFT, OpRIGHT, OpINVERT, OpAND, OpOR, OpXOR,
		Op2MUL, Op2DIV, OpMUL, OpDIV, OpMOD, OpLSHIFT, OpRSHIFT:
		return true
	}

	return false
}

// IsReserved reports whether op fails the script when it is executed.
// Reserved opcodes are harmless inside a branch that is not taken.
func IsReserved(op byte) bool {
	switch op {
	case OpRESERVED, OpVER, OpRESERVED1, OpRESERVED2:
		return true
	}

	return op > OpNOP10
}

// IsNop reports whether op has no effect on either stack.
func IsNop(op byte) bool {
	return op == OpNOP || (op >= OpNOP1 && op <= OpNOP10)
}

// isPush reports whether op only pushes data. Pushes do not count towards the
// operation limit.
func isPush(op byte) bool {
	return op <= Op16 && op != OpRESERVED
}

func isConditional(op byte) bool {
	return op >= OpIF && op <= OpENDIF
}
