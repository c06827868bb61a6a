package sql

import (
	"context"
	"database/sql"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
)

func (s *SQL) GetTransaction(ctx context.Context, txHash *chainhash.Hash) (*model.Transaction, error) {
	q := `
		SELECT
		 t.tx
		FROM transactions t
		WHERE t.hash = $1
	`

	var txBytes []byte
	if err := s.db.QueryRowContext(ctx, q, txHash[:]).Scan(
		&txBytes,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewTxNotFoundError("transaction %s not found", txHash)
		}

		return nil, errors.NewStorageError("failed to get transaction %s", txHash, err)
	}

	tx, err := model.NewTransactionFromBytes(txBytes)
	if err != nil {
		return nil, errors.NewStorageError("failed to decode transaction %s", txHash, err)
	}

	return tx, nil
}

func (s *SQL) GetTransactionExists(ctx context.Context, txHash *chainhash.Hash) (bool, error) {
	q := `
		SELECT
		 COUNT(*)
		FROM transactions t
		WHERE t.hash = $1
	`

	var count int
	if err := s.db.QueryRowContext(ctx, q, txHash[:]).Scan(
		&count,
	); err != nil {
		return false, errors.NewStorageError("failed to check transaction %s", txHash, err)
	}

	return count > 0, nil
}
