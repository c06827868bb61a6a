// Package checkblock validates a block against the chain in a chain store. The
// block is given as a block hash of a stored block, an 80 byte header in hex, or
// a full block (header, transaction count and transactions) in hex.
package checkblock

import (
	"context"
	"encoding/hex"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/services/blockvalidation"
	"github.com/bsv-blockchain/litenode/services/validator"
	"github.com/bsv-blockchain/litenode/settings"
	blockchain_store "github.com/bsv-blockchain/litenode/stores/blockchain"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/dolthub/swiss"
)

// CheckBlock parses blockStr, validates the header and then every transaction of
// the block. Transactions may spend outputs of earlier transactions in the same block.
//
// The returned error is only set when the block could not be parsed or loaded,
// an invalid block is reported through the validation result.
func CheckBlock(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings, store blockchain_store.Store, blockStr string) (*model.Block, *model.ValidationResult, error) {
	if blockStr == "" {
		return nil, nil, errors.NewInvalidArgumentError("empty block string")
	}

	block, err := parseBlock(ctx, store, blockStr)
	if err != nil {
		return nil, nil, err
	}

	hashProvider := tSettings.ChainCfgParams.HashProvider()

	bv, err := blockvalidation.New(logger, tSettings, store, hashProvider)
	if err != nil {
		return block, nil, err
	}

	result := bv.ValidateBlock(ctx, block)
	if !result.OK() {
		return block, result, nil
	}

	if block.Height, err = bv.BlockHeight(ctx, block); err != nil {
		return block, nil, err
	}

	if len(block.Transactions) == 0 {
		return block, result, nil
	}

	overlay := newBlockOverlay(store, len(block.Transactions))

	txValidator, err := validator.New(logger, tSettings, overlay, hashProvider)
	if err != nil {
		return block, nil, err
	}

	for _, tx := range block.Transactions {
		if txResult := txValidator.ValidateTransaction(ctx, tx); !txResult.OK() {
			return block, model.NewInvalidResult("transaction %s: %s", tx.TxID(), txResult.Reason), nil
		}

		overlay.add(tx)
	}

	return block, result, nil
}

func parseBlock(ctx context.Context, store blockchain_store.Store, blockStr string) (*model.Block, error) {
	if len(blockStr) == 2*chainhash.HashSize {
		blockHash, err := chainhash.NewHashFromStr(blockStr)
		if err != nil {
			return nil, errors.NewInvalidArgumentError("invalid block hash", err)
		}

		return store.GetBlock(ctx, blockHash)
	}

	b, err := hex.DecodeString(blockStr)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("block is not valid hex", err)
	}

	if len(b) == model.BlockHeaderSize {
		return model.NewBlockFromBytes(b)
	}

	return model.NewBlockFromFullBytes(b)
}

// blockOverlay makes the transactions of the block that were already checked
// visible as previous transactions, so a transaction can only spend outputs of
// earlier ones. Existence checks still go to the store, so the transactions of
// the block itself are not treated as already validated.
type blockOverlay struct {
	blockchain_store.ChainStore
	txs *swiss.Map[chainhash.Hash, *model.Transaction]
}

func newBlockOverlay(store blockchain_store.ChainStore, size int) *blockOverlay {
	return &blockOverlay{
		ChainStore: store,
		txs:        swiss.NewMap[chainhash.Hash, *model.Transaction](uint32(size)), //nolint:gosec
	}
}

func (o *blockOverlay) add(tx *model.Transaction) {
	o.txs.Put(*tx.TxID(), tx)
}

func (o *blockOverlay) GetTransaction(ctx context.Context, txHash *chainhash.Hash) (*model.Transaction, error) {
	if tx, ok := o.txs.Get(*txHash); ok {
		return tx, nil
	}

	return o.ChainStore.GetTransaction(ctx, txHash)
}
