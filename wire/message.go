package wire

import (
	"bytes"
	"io"

	"github.com/bsv-blockchain/litenode/codec"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/bsv-blockchain/litenode/model"
)

const (
	// MessageHeaderSize is the number of bytes in a message header.
	// network (magic) 4 bytes + command 12 bytes + payload length 4 bytes +
	// checksum 4 bytes.
	MessageHeaderSize = 24

	// CommandSize is the fixed size of all commands in the common message
	// header.  Shorter commands must be zero padded.
	CommandSize = 12

	// ChecksumSize is the number of payload hash bytes carried in the header.
	ChecksumSize = 4

	// MaxMessagePayload is the default maximum payload accepted by ReadMessage.
	MaxMessagePayload = 32 * 1024 * 1024
)

// MessageHeader defines the header structure for all protocol messages.
type MessageHeader struct {
	Magic    BitcoinNet
	Command  string
	Length   uint32
	Checksum [ChecksumSize]byte
}

func (h *MessageHeader) Bytes() []byte {
	b := make([]byte, 0, MessageHeaderSize)
	b = codec.AppendUint32(b, uint32(h.Magic))

	var command [CommandSize]byte

	copy(command[:], h.Command)

	b = append(b, command[:]...)
	b = codec.AppendUint32(b, h.Length)

	return append(b, h.Checksum[:]...)
}

// NewMessageHeaderFromBytes decodes a 24 byte header. The command must be
// printable ASCII followed only by NUL padding.
func NewMessageHeaderFromBytes(b []byte) (*MessageHeader, error) {
	if len(b) < MessageHeaderSize {
		return nil, errors.NewTruncatedInputError("message header needs %d bytes, have %d", MessageHeaderSize, len(b))
	}

	r := codec.NewReader(b[:MessageHeaderSize])

	magic, _ := r.Uint32()
	rawCommand, _ := r.Bytes(CommandSize)
	length, _ := r.Uint32()
	checksum, _ := r.Bytes(ChecksumSize)

	command, err := parseCommand(rawCommand)
	if err != nil {
		return nil, err
	}

	h := &MessageHeader{
		Magic:   BitcoinNet(magic),
		Command: command,
		Length:  length,
	}

	copy(h.Checksum[:], checksum)

	return h, nil
}

func parseCommand(raw []byte) (string, error) {
	end := bytes.IndexByte(raw, 0)
	if end < 0 {
		end = len(raw)
	}

	for i, c := range raw {
		if i < end && (c < 0x20 || c > 0x7e) {
			return "", errors.NewMalformedInputError("command contains non printable byte 0x%02x", c)
		}

		if i >= end && c != 0 {
			return "", errors.NewMalformedInputError("command is not zero padded")
		}
	}

	return string(raw[:end]), nil
}

// Checksum returns the first 4 bytes of the double SHA-256 of payload.
func Checksum(p hashing.Provider, payload []byte) ([ChecksumSize]byte, error) {
	var checksum [ChecksumSize]byte

	hash, err := hashing.Sum(p, hashing.DoubleSHA256, payload)
	if err != nil {
		return checksum, err
	}

	copy(checksum[:], hash[:ChecksumSize])

	return checksum, nil
}

// EncodeMessage frames payload with a message header.
func EncodeMessage(p hashing.Provider, magic BitcoinNet, command string, payload []byte) ([]byte, error) {
	if len(command) > CommandSize {
		return nil, errors.NewInvalidArgumentError("command %q is longer than %d bytes", command, CommandSize)
	}

	if _, err := parseCommand([]byte(command)); err != nil {
		return nil, err
	}

	if uint64(len(payload)) > uint64(^uint32(0)) {
		return nil, errors.NewInvalidArgumentError("payload of %d bytes does not fit a message", len(payload))
	}

	checksum, err := Checksum(p, payload)
	if err != nil {
		return nil, err
	}

	header := &MessageHeader{
		Magic:    magic,
		Command:  command,
		Length:   uint32(len(payload)), //nolint:gosec // checked above
		Checksum: checksum,
	}

	return append(header.Bytes(), payload...), nil
}

// WriteMessage writes a framed message to w.
func WriteMessage(w io.Writer, p hashing.Provider, magic BitcoinNet, command string, payload []byte) (int, error) {
	msg, err := EncodeMessage(p, magic, command, payload)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(msg)
	if err != nil {
		return n, errors.NewProcessingError("failed to write %s message", command, err)
	}

	return n, nil
}

// ReadMessage reads one framed message from r, checking the network magic,
// the payload size against maxPayload and the checksum.
func ReadMessage(r io.Reader, p hashing.Provider, magic BitcoinNet, maxPayload uint32) (*MessageHeader, []byte, error) {
	var headerBytes [MessageHeaderSize]byte

	if _, err := io.ReadFull(r, headerBytes[:]); err != nil {
		return nil, nil, readError("message header", err)
	}

	header, err := NewMessageHeaderFromBytes(headerBytes[:])
	if err != nil {
		return nil, nil, err
	}

	if header.Magic != magic {
		return nil, nil, errors.NewMalformedInputError("message from other network [%v]", header.Magic)
	}

	if header.Length > maxPayload {
		return nil, nil, errors.NewMalformedInputError("message payload is too large - header indicates %d bytes, but max message payload is %d bytes", header.Length, maxPayload)
	}

	payload := make([]byte, header.Length)

	if _, err = io.ReadFull(r, payload); err != nil {
		return nil, nil, readError(header.Command+" payload", err)
	}

	checksum, err := Checksum(p, payload)
	if err != nil {
		return nil, nil, err
	}

	if checksum != header.Checksum {
		return nil, nil, errors.NewMalformedInputError("payload checksum failed - header indicates %x, but actual checksum is %x", header.Checksum, checksum)
	}

	return header, payload, nil
}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewTruncatedInputError("short read of %s", what)
	}

	return errors.NewProcessingError("failed to read %s", what, err)
}

// EncodeBlockMessage frames the full serialization of block as a block message.
func EncodeBlockMessage(p hashing.Provider, magic BitcoinNet, block *model.Block) ([]byte, error) {
	return EncodeMessage(p, magic, CmdBlock, block.FullBytes())
}

// EncodeTxMessage frames the serialization of tx as a tx message.
func EncodeTxMessage(p hashing.Provider, magic BitcoinNet, tx *model.Transaction) ([]byte, error) {
	return EncodeMessage(p, magic, CmdTx, tx.Bytes())
}

// DecodePayload decodes the payload of a block or tx message.
func DecodePayload(command string, payload []byte) (interface{}, error) {
	switch command {
	case CmdBlock:
		// peers must send the transaction count in its shortest form
		offset := model.BlockHeaderSize
		if len(payload) > offset {
			if _, err := codec.ReadCompactSizeStrict(payload, &offset); err != nil {
				return nil, err
			}
		}

		return model.NewBlockFromFullBytes(payload)
	case CmdTx:
		return model.NewTransactionFromBytes(payload)
	default:
		return nil, errors.NewInvalidArgumentError("unsupported command %q", command)
	}
}
