package sql

import (
	"context"

	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/util/usql"
)

const insertTransaction = `
	INSERT INTO transactions (hash, tx)
	VALUES ($1, $2)
	ON CONFLICT (hash) DO NOTHING
`

func (s *SQL) StoreBlock(ctx context.Context, block *model.Block, height uint32) error {
	if block == nil || block.Header == nil {
		return errors.NewInvalidArgumentError("block is nil")
	}

	exists, err := s.GetBlockExists(ctx, block.Hash())
	if err != nil {
		return err
	}

	if exists {
		return errors.NewBlockExistsError("block %s already stored", block.Hash())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin transaction", err)
	}

	if err = s.storeBlock(ctx, tx, block, height); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit block %s", block.Hash(), err)
	}

	s.logger.Debugf("stored block %s at height %d", block.Hash(), height)

	return nil
}

func (s *SQL) storeBlock(ctx context.Context, tx *usql.Tx, block *model.Block, height uint32) error {
	hash := block.Hash()
	blockData := block.FullBytes()

	q := `
		INSERT INTO blocks (
		 hash
		,previous_hash
		,height
		,block_time
		,n_bits
		,tx_count
		,size_in_bytes
		,header
		,block_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id uint64
	if err := tx.QueryRowContext(ctx, q,
		hash[:],
		block.Header.HashPrevBlock[:],
		height,
		block.Header.Timestamp,
		block.Header.Bits.CloneBytes(),
		len(block.Transactions),
		len(blockData),
		block.Header.Bytes(),
		blockData,
	).Scan(&id); err != nil {
		return errors.NewStorageError("failed to insert block %s", hash, err)
	}

	q = `
		INSERT INTO chain (height, block_id)
		VALUES ($1, $2)
		ON CONFLICT (height) DO UPDATE SET block_id = excluded.block_id
	`

	if _, err := tx.ExecContext(ctx, q, height, id); err != nil {
		return errors.NewStorageError("failed to set block %s at height %d", hash, height, err)
	}

	for _, t := range block.Transactions {
		if _, err := tx.ExecContext(ctx, insertTransaction, t.TxID()[:], t.Bytes()); err != nil {
			return errors.NewStorageError("failed to insert transaction %s", t.TxID(), err)
		}
	}

	return nil
}

func (s *SQL) StoreTransaction(ctx context.Context, tx *model.Transaction) error {
	if tx == nil {
		return errors.NewInvalidArgumentError("transaction is nil")
	}

	if _, err := s.db.ExecContext(ctx, insertTransaction, tx.TxID()[:], tx.Bytes()); err != nil {
		return errors.NewStorageError("failed to insert transaction %s", tx.TxID(), err)
	}

	return nil
}
