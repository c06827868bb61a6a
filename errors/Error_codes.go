package errors

import "strconv"

//nolint:revive,stylecheck // error codes keep the upper snake case naming used across the node
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 3
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5
	ERR_CONTEXT_CANCELED ERR = 7
	ERR_ERROR            ERR = 9

	// decoding of untrusted bytes
	ERR_DECODE            ERR = 20
	ERR_TRUNCATED_INPUT   ERR = 21
	ERR_MALFORMED_INPUT   ERR = 22
	ERR_SCRIPT_INVALID    ERR = 23
	ERR_SCRIPT_UNDERFLOW  ERR = 24
	ERR_SCRIPT_DISABLED   ERR = 25
	ERR_SCRIPT_LIMIT      ERR = 26
	ERR_SIGNATURE_INVALID ERR = 27

	ERR_BLOCK_NOT_FOUND ERR = 10
	ERR_BLOCK_INVALID   ERR = 11
	ERR_BLOCK_EXISTS    ERR = 12
	ERR_BLOCK_ERROR     ERR = 13

	ERR_TX_NOT_FOUND      ERR = 30
	ERR_TX_INVALID        ERR = 31
	ERR_TX_ALREADY_EXISTS ERR = 33
	ERR_TX_ERROR          ERR = 34

	ERR_STORAGE_UNAVAILABLE ERR = 60
	ERR_STORAGE_ERROR       ERR = 62
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	3:  "NOT_FOUND",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	7:  "CONTEXT_CANCELED",
	9:  "ERROR",
	10: "BLOCK_NOT_FOUND",
	11: "BLOCK_INVALID",
	12: "BLOCK_EXISTS",
	13: "BLOCK_ERROR",
	20: "DECODE",
	21: "TRUNCATED_INPUT",
	22: "MALFORMED_INPUT",
	23: "SCRIPT_INVALID",
	24: "SCRIPT_UNDERFLOW",
	25: "SCRIPT_DISABLED",
	26: "SCRIPT_LIMIT",
	27: "SIGNATURE_INVALID",
	30: "TX_NOT_FOUND",
	31: "TX_INVALID",
	33: "TX_ALREADY_EXISTS",
	34: "TX_ERROR",
	60: "STORAGE_UNAVAILABLE",
	62: "STORAGE_ERROR",
}

// Enum returns the symbolic name of the code, or the number when it is not registered.
func (x ERR) Enum() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return "ERR_" + strconv.Itoa(int(x))
}

func (x ERR) String() string {
	return x.Enum()
}
