package wire

import (
	"fmt"
)

// BitcoinNet represents which network a message belongs to.
type BitcoinNet uint32

// Constants used to indicate the message network.  They can also be
// used to seek to the next message when a stream's state is unknown.
const (
	// MainNet represents the main bitcoin network.
	MainNet BitcoinNet = 0xd9b4bef9

	// TestNet represents the regression test network.
	TestNet BitcoinNet = 0xdab5bffa

	// TestNet3 represents the test network (version 3).
	TestNet3 BitcoinNet = 0x0709110b

	// DogecoinMainNet represents the main dogecoin network.
	DogecoinMainNet BitcoinNet = 0xc0c0c0c0

	// DogecoinTestNet represents the dogecoin test network.
	DogecoinTestNet BitcoinNet = 0xdcb7c1fc
)

// bnStrings is a map of networks back to their constant names for
// pretty printing.
var bnStrings = map[BitcoinNet]string{
	MainNet:         "MainNet",
	TestNet:         "TestNet",
	TestNet3:        "TestNet3",
	DogecoinMainNet: "DogecoinMainNet",
	DogecoinTestNet: "DogecoinTestNet",
}

// String returns the BitcoinNet in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown BitcoinNet (%d)", uint32(n))
}

// Commands used in message headers which describe the type of message.
const (
	CmdBlock = "block"
	CmdTx    = "tx"
)
