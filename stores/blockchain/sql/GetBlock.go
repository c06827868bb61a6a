package sql

import (
	"context"
	"database/sql"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
)

func (s *SQL) GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	q := `
		SELECT
		 b.height
		,b.block_data
		FROM blocks b
		WHERE b.hash = $1
	`

	var (
		height    uint32
		blockData []byte
	)

	if err := s.db.QueryRowContext(ctx, q, blockHash[:]).Scan(
		&height,
		&blockData,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewBlockNotFoundError("block %s not found", blockHash)
		}

		return nil, errors.NewStorageError("failed to get block %s", blockHash, err)
	}

	block, err := model.NewBlockFromFullBytes(blockData)
	if err != nil {
		return nil, errors.NewStorageError("failed to decode block %s", blockHash, err)
	}

	block.Height = height

	return block, nil
}

func (s *SQL) GetBlockHeader(ctx context.Context, blockHash *chainhash.Hash) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	q := `
		SELECT
		 b.id
		,b.height
		,b.tx_count
		,b.size_in_bytes
		,b.header
		FROM blocks b
		WHERE b.hash = $1
	`

	return s.queryBlockHeader(ctx, q, blockHash[:])
}

func (s *SQL) queryBlockHeader(ctx context.Context, q string, args ...interface{}) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	var (
		meta        model.BlockHeaderMeta
		headerBytes []byte
	)

	if err := s.db.QueryRowContext(ctx, q, args...).Scan(
		&meta.ID,
		&meta.Height,
		&meta.TxCount,
		&meta.SizeInBytes,
		&headerBytes,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, errors.NewBlockNotFoundError("block header not found")
		}

		return nil, nil, errors.NewStorageError("failed to get block header", err)
	}

	header, err := model.NewBlockHeaderFromBytes(headerBytes)
	if err != nil {
		return nil, nil, errors.NewStorageError("failed to decode block header", err)
	}

	return header, &meta, nil
}

func (s *SQL) GetBlockExists(ctx context.Context, blockHash *chainhash.Hash) (bool, error) {
	q := `
		SELECT
		 b.height
		FROM blocks b
		WHERE b.hash = $1
	`

	var height uint32
	if err := s.db.QueryRowContext(ctx, q, blockHash[:]).Scan(
		&height,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, errors.NewStorageError("failed to check block %s", blockHash, err)
	}

	return true, nil
}
