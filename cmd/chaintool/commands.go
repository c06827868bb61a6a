package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"github.com/bsv-blockchain/litenode/chaincfg"
	"github.com/bsv-blockchain/litenode/cmd/checkblock"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/script"
	"github.com/bsv-blockchain/litenode/settings"
	blockchain_store "github.com/bsv-blockchain/litenode/stores/blockchain"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
)

// loadSettings reads the settings and applies the global flags.
func loadSettings(c *cli.Context) (*settings.Settings, ulogger.Logger, error) {
	tSettings := settings.NewSettings()

	if network := c.String("network"); network != "" {
		params, err := chaincfg.GetChainParams(network)
		if err != nil {
			return nil, nil, err
		}

		tSettings.ChainCfgParams = params
	}

	logger := ulogger.New("chaintool", ulogger.WithLevel(c.String("log-level")), ulogger.WithWriter(c.App.ErrWriter))

	return tSettings, logger, nil
}

func firstArg(c *cli.Context, what string) (string, error) {
	if c.NArg() != 1 {
		return "", errors.NewInvalidArgumentError("expected exactly one argument: %s", what)
	}

	return strings.TrimSpace(c.Args().First()), nil
}

func decodeHeader(c *cli.Context) error {
	arg, err := firstArg(c, "header hex")
	if err != nil {
		return err
	}

	tSettings, _, err := loadSettings(c)
	if err != nil {
		return err
	}

	header, err := model.NewBlockHeaderFromString(arg)
	if err != nil {
		return err
	}

	w := c.App.Writer

	_, _ = fmt.Fprintf(w, "hash:       %s\n", header.Hash())
	_, _ = fmt.Fprintf(w, "prev:       %s\n", header.HashPrevBlock)
	_, _ = fmt.Fprintf(w, "merkleroot: %s\n", header.HashMerkleRoot)
	_, _ = fmt.Fprintf(w, "bits:       %s (difficulty %s)\n", header.Bits, header.Bits.CalculateDifficulty().Text('f', 8))
	_, _ = fmt.Fprintf(w, "pow:        %t on %s\n", header.Valid(tSettings.ChainCfgParams.HashProvider()), tSettings.ChainCfgParams.Name)

	spew.Fdump(w, header)

	return nil
}

func decodeTx(c *cli.Context) error {
	arg, err := firstArg(c, "transaction hex")
	if err != nil {
		return err
	}

	tx, err := model.NewTransactionFromString(arg)
	if err != nil {
		return err
	}

	w := c.App.Writer

	_, _ = fmt.Fprintf(w, "txid: %s\n", tx.TxID())
	_, _ = fmt.Fprintf(w, "size: %d\n", tx.Size())

	for i, input := range tx.Inputs {
		asm, _ := script.Disassemble(input.UnlockingScript)
		_, _ = fmt.Fprintf(w, "in  %d: %s:%d %s\n", i, input.PreviousTxID, input.PreviousTxOutIndex, asm)
	}

	for i, output := range tx.Outputs {
		asm, _ := script.Disassemble(output.LockingScript)
		_, _ = fmt.Fprintf(w, "out %d: %s %s\n", i, output.Amount(), asm)
	}

	spew.Fdump(w, tx)

	return nil
}

// runScript runs the scripts without transaction context, signature checks always fail.
func runScript(c *cli.Context) error {
	unlocking, err := hex.DecodeString(c.String("sig"))
	if err != nil {
		return errors.NewInvalidArgumentError("sig is not valid hex", err)
	}

	locking, err := hex.DecodeString(c.String("pubkey"))
	if err != nil {
		return errors.NewInvalidArgumentError("pubkey is not valid hex", err)
	}

	tSettings, _, err := loadSettings(c)
	if err != nil {
		return err
	}

	engine, err := script.NewEngine(tSettings.ChainCfgParams.HashProvider(), script.OptionsFromPolicy(tSettings.Policy))
	if err != nil {
		return err
	}

	w := c.App.Writer

	for _, s := range []struct {
		name   string
		script []byte
	}{{"sig", unlocking}, {"pubkey", locking}} {
		asm, disErr := script.Disassemble(s.script)
		if disErr != nil {
			asm = fmt.Sprintf("%s (%v)", asm, disErr)
		}

		_, _ = fmt.Fprintf(w, "%-6s %s\n", s.name+":", asm)
	}

	res := engine.Verify(unlocking, locking, nil)

	for i := len(res.Stack) - 1; i >= 0; i-- {
		_, _ = fmt.Fprintf(w, "stack[%d]: %x\n", len(res.Stack)-1-i, res.Stack[i])
	}

	if !res.Success {
		return errors.NewScriptInvalidError("script failed: %s", res.Reason())
	}

	_, _ = fmt.Fprintln(w, "success")

	return nil
}

// bits converts 8 hex digits as compact bits to the target, anything longer as
// a target to compact bits.
func bits(c *cli.Context) error {
	arg, err := firstArg(c, "bits or target hex")
	if err != nil {
		return err
	}

	arg = strings.TrimPrefix(arg, "0x")
	w := c.App.Writer

	if len(arg) <= 8 {
		compact, err := strconv.ParseUint(arg, 16, 32)
		if err != nil {
			return errors.NewInvalidArgumentError("invalid bits %s", arg, err)
		}

		nBit := model.NewNBitFromUint32(uint32(compact))

		_, _ = fmt.Fprintf(w, "bits:       %s\n", nBit)
		_, _ = fmt.Fprintf(w, "target:     %064x\n", nBit.CalculateTarget())
		_, _ = fmt.Fprintf(w, "difficulty: %s\n", nBit.CalculateDifficulty().Text('f', 8))

		return nil
	}

	target, ok := new(big.Int).SetString(arg, 16)
	if !ok {
		return errors.NewInvalidArgumentError("invalid target %s", arg)
	}

	compact := model.BigToCompact(target)

	_, _ = fmt.Fprintf(w, "bits:       %08x\n", compact)
	_, _ = fmt.Fprintf(w, "target:     %064x\n", model.CompactToBig(compact))

	return nil
}

func checkBlock(c *cli.Context) error {
	arg, err := firstArg(c, "block hash, header hex or block hex")
	if err != nil {
		return err
	}

	tSettings, logger, err := loadSettings(c)
	if err != nil {
		return err
	}

	if s := c.String("store"); s != "" {
		if tSettings.BlockChain.StoreURL, err = url.Parse(s); err != nil {
			return errors.NewInvalidArgumentError("invalid store URL %s", s, err)
		}
	}

	ctx := context.Background()

	store, err := blockchain_store.NewStoreFromSettings(ctx, logger, tSettings)
	if err != nil {
		return err
	}

	defer func() {
		_ = store.Close()
	}()

	block, result, err := checkblock.CheckBlock(ctx, logger, tSettings, store, arg)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.App.Writer, "block %s: %s\n", block.Hash(), result)

	if !result.OK() {
		return errors.NewBlockInvalidError("block %s is invalid: %s", block.Hash(), result.Reason)
	}

	_, _ = fmt.Fprintf(c.App.Writer, "height: %d\n", block.Height)

	return nil
}
