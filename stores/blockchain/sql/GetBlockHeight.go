package sql

import (
	"context"
	"database/sql"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
)

func (s *SQL) GetBlockHeight(ctx context.Context, blockHash *chainhash.Hash) (uint32, error) {
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
			return 0, errors.NewBlockNotFoundError("block %s not found", blockHash)
		}

		return 0, errors.NewStorageError("failed to get height of block %s", blockHash, err)
	}

	return height, nil
}

func (s *SQL) GetBlockHashAtHeight(ctx context.Context, height uint32) (*chainhash.Hash, error) {
	q := `
		SELECT
		 b.hash
		FROM chain c
		INNER JOIN blocks b ON b.id = c.block_id
		WHERE c.height = $1
	`

	var hashBytes []byte
	if err := s.db.QueryRowContext(ctx, q, height).Scan(
		&hashBytes,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewBlockNotFoundError("no block at height %d", height)
		}

		return nil, errors.NewStorageError("failed to get block at height %d", height, err)
	}

	return chainhash.NewHash(hashBytes)
}

func (s *SQL) GetBestBlockHeader(ctx context.Context) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	q := `
		SELECT
		 b.id
		,b.height
		,b.tx_count
		,b.size_in_bytes
		,b.header
		FROM chain c
		INNER JOIN blocks b ON b.id = c.block_id
		ORDER BY c.height DESC
		LIMIT 1
	`

	header, meta, err := s.queryBlockHeader(ctx, q)
	if err != nil && errors.Is(err, errors.ErrBlockNotFound) {
		return nil, nil, errors.NewBlockNotFoundError("store is empty")
	}

	return header, meta, err
}
