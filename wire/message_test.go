package wire

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/litenode/codec"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genesisCoinbase = "01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"

func TestMessageHeaderLayout(t *testing.T) {
	p := hashing.NewRegistry()

	msg, err := EncodeMessage(p, MainNet, "verack", nil)
	require.NoError(t, err)

	// the empty payload checksum is 5df6e0e2, the start of double-SHA256("")
	assert.Equal(t, "f9beb4d976657261636b000000000000000000005df6e0e2", hex.EncodeToString(msg))

	header, err := NewMessageHeaderFromBytes(msg)
	require.NoError(t, err)
	assert.Equal(t, MainNet, header.Magic)
	assert.Equal(t, "verack", header.Command)
	assert.Equal(t, uint32(0), header.Length)
	assert.Equal(t, msg, header.Bytes())
}

func TestTxMessageRoundTrip(t *testing.T) {
	p := hashing.NewRegistry()

	tx, err := model.NewTransactionFromString(genesisCoinbase)
	require.NoError(t, err)

	var buf bytes.Buffer

	msg, err := EncodeTxMessage(p, TestNet3, tx)
	require.NoError(t, err)

	n, err := buf.Write(msg)
	require.NoError(t, err)
	assert.Equal(t, MessageHeaderSize+tx.Size(), n)

	header, payload, err := ReadMessage(&buf, p, TestNet3, MaxMessagePayload)
	require.NoError(t, err)
	assert.Equal(t, CmdTx, header.Command)
	assert.Equal(t, tx.Bytes(), payload)

	decoded, err := DecodePayload(header.Command, payload)
	require.NoError(t, err)
	assert.Equal(t, tx.TxID(), decoded.(*model.Transaction).TxID())
}

func TestWriteAndReadBlockMessage(t *testing.T) {
	p := hashing.NewRegistry()

	tx, err := model.NewTransactionFromString(genesisCoinbase)
	require.NoError(t, err)

	header, err := model.NewBlockHeaderFromString("0100000000000000000000000000000000000000000000000000000000000000000000003ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a29ab5f49ffff001d1dac2b7c")
	require.NoError(t, err)

	block := model.NewBlock(header, 0, []*model.Transaction{tx})

	var buf bytes.Buffer

	msg, err := EncodeBlockMessage(p, MainNet, block)
	require.NoError(t, err)

	_, err = WriteMessage(&buf, p, MainNet, CmdBlock, block.FullBytes())
	require.NoError(t, err)
	assert.Equal(t, msg, buf.Bytes())

	h, payload, err := ReadMessage(&buf, p, MainNet, MaxMessagePayload)
	require.NoError(t, err)
	assert.Equal(t, CmdBlock, h.Command)

	decoded, err := DecodePayload(h.Command, payload)
	require.NoError(t, err)
	assert.Equal(t, "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f", decoded.(*model.Block).Hash().String())
}

func TestReadMessageErrors(t *testing.T) {
	p := hashing.NewRegistry()

	msg, err := EncodeMessage(p, MainNet, CmdTx, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	t.Run("wrong network", func(t *testing.T) {
		_, _, err := ReadMessage(bytes.NewReader(msg), p, TestNet3, MaxMessagePayload)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMalformedInput))
	})

	t.Run("bad checksum", func(t *testing.T) {
		bad := append([]byte{}, msg...)
		bad[len(bad)-1] ^= 0xff

		_, _, err := ReadMessage(bytes.NewReader(bad), p, MainNet, MaxMessagePayload)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMalformedInput))
	})

	t.Run("payload too large", func(t *testing.T) {
		_, _, err := ReadMessage(bytes.NewReader(msg), p, MainNet, 3)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMalformedInput))
	})

	t.Run("short header", func(t *testing.T) {
		_, _, err := ReadMessage(bytes.NewReader(msg[:10]), p, MainNet, MaxMessagePayload)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrTruncatedInput))
	})

	t.Run("short payload", func(t *testing.T) {
		_, _, err := ReadMessage(bytes.NewReader(msg[:len(msg)-1]), p, MainNet, MaxMessagePayload)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrTruncatedInput))
	})

	t.Run("command not zero padded", func(t *testing.T) {
		bad := append([]byte{}, msg...)
		bad[4+CommandSize-1] = 'x'

		_, err := NewMessageHeaderFromBytes(bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMalformedInput))
	})
}

func TestEncodeMessageRejectsLongCommand(t *testing.T) {
	_, err := EncodeMessage(hashing.NewRegistry(), MainNet, "averyverylongcommand", nil)
	require.Error(t, err)
}

func TestDecodePayloadRejectsNonCanonicalCount(t *testing.T) {
	payload := make([]byte, model.BlockHeaderSize)
	payload = append(payload, 0xfd, 0x00, 0x00)

	_, err := DecodePayload(CmdBlock, payload)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedInput))

	// the same count in canonical form decodes
	payload = codec.AppendCompactSize(payload[:model.BlockHeaderSize], 0)
	_, err = DecodePayload(CmdBlock, payload)
	require.NoError(t, err)

	_, err = DecodePayload("ping", nil)
	require.Error(t, err)
}

func TestBitcoinNetString(t *testing.T) {
	assert.Equal(t, "MainNet", MainNet.String())
	assert.Equal(t, "Unknown BitcoinNet (1)", BitcoinNet(1).String())
}
