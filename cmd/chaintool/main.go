// Command chaintool decodes and checks chain data from the command line.
//
// Usage:
//
//	chaintool decode-header <header hex>
//	chaintool decode-tx <transaction hex>
//	chaintool run-script --sig <unlocking script hex> --pubkey <locking script hex>
//	chaintool bits <compact bits hex | target hex>
//	chaintool checkblock [--store <url>] <block hash | header hex | block hex>
//
// The network is taken from the settings unless --network is given.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.App {
	return &cli.App{
		Name:      "chaintool",
		Usage:     "decode and check blocks, transactions and scripts",
		Writer:    w,
		ErrWriter: w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "network name, mainnet, testnet, regtest, dogecoin or dogecoin-testnet",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level",
				Value: "WARN",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "decode-header",
				Usage:     "decode an 80 byte block header",
				ArgsUsage: "<header hex>",
				Action:    decodeHeader,
			},
			{
				Name:      "decode-tx",
				Usage:     "decode a transaction",
				ArgsUsage: "<transaction hex>",
				Action:    decodeTx,
			},
			{
				Name:   "run-script",
				Usage:  "run an unlocking script followed by a locking script",
				Action: runScript,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sig",
						Usage: "unlocking script (scriptSig) in hex",
					},
					&cli.StringFlag{
						Name:     "pubkey",
						Usage:    "locking script (scriptPubKey) in hex",
						Required: true,
					},
				},
			},
			{
				Name:      "bits",
				Usage:     "convert between compact difficulty bits and the full target",
				ArgsUsage: "<bits hex | target hex>",
				Action:    bits,
			},
			{
				Name:      "checkblock",
				Usage:     "validate a block against a chain store",
				ArgsUsage: "<block hash | header hex | block hex>",
				Action:    checkBlock,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "store",
						Usage: "chain store URL, defaults to the chainstore setting",
					},
				},
			},
		},
	}
}
