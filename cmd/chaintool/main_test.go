package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/litenode/chaincfg"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	err := newApp(&buf).Run(append([]string{"chaintool"}, args...))

	return buf.String(), err
}

func TestBits(t *testing.T) {
	out, err := run(t, "bits", "1d00ffff")
	require.NoError(t, err)
	assert.Contains(t, out, "00000000ffff0000000000000000000000000000000000000000000000000000")
	assert.Contains(t, out, "difficulty: 1.00000000")

	out, err = run(t, "bits", "0x00000000ffff0000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.Contains(t, out, "bits:       1d00ffff")

	_, err = run(t, "bits", "xyz")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = run(t, "bits")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestDecodeHeader(t *testing.T) {
	header := hex.EncodeToString(chaincfg.MainNetParams.GenesisBlock.Header.Bytes())

	out, err := run(t, "--network", "mainnet", "decode-header", header)
	require.NoError(t, err)
	assert.Contains(t, out, "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f")
	assert.Contains(t, out, "pow:        true on mainnet")

	_, err = run(t, "decode-header", "00")
	assert.True(t, errors.Is(err, errors.ErrTruncatedInput))
}

func TestDecodeTx(t *testing.T) {
	coinbase := chaincfg.MainNetParams.GenesisBlock.Transactions[0]

	out, err := run(t, "decode-tx", hex.EncodeToString(coinbase.Bytes()))
	require.NoError(t, err)
	assert.Contains(t, out, "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	assert.Contains(t, out, "out 0: 50.00000000 ")
}

func TestRunScript(t *testing.T) {
	out, err := run(t, "run-script", "--sig", "51", "--pubkey", "5187")
	require.NoError(t, err)
	assert.Contains(t, out, "success")

	out, err = run(t, "run-script", "--sig", "52", "--pubkey", "5187")
	assert.True(t, errors.Is(err, errors.ErrScriptInvalid))
	assert.Contains(t, out, "stack[0]: ")

	_, err = run(t, "run-script", "--sig", "zz", "--pubkey", "51")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestCheckBlock(t *testing.T) {
	genesis := chaincfg.RegressionNetParams.GenesisHash.String()

	out, err := run(t, "--network", "regtest", "checkblock", "--store", "memory://", genesis)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
	assert.Contains(t, out, "height: 0")

	_, err = run(t, "--network", "nonet", "checkblock", genesis)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}
