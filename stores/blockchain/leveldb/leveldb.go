// Package leveldb is a chain store on top of goleveldb.
//
// Keys are prefixed by record type:
//
//	b<hash>   height (4 bytes LE) followed by the full block bytes
//	h<height> block hash of the canonical chain, height big endian so keys sort by height
//	t<txid>   transaction bytes
package leveldb

import (
	"context"
	"encoding/binary"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/codec"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/btcsuite/goleveldb/leveldb"
	"github.com/btcsuite/goleveldb/leveldb/storage"
	"github.com/btcsuite/goleveldb/leveldb/util"
)

const (
	prefixBlock  = 'b'
	prefixHeight = 'h'
	prefixTx     = 't'
)

type LevelDB struct {
	logger ulogger.Logger
	db     *leveldb.DB
}

// New opens, or creates, the database in the folder at path.
func New(logger ulogger.Logger, path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.NewStorageError("failed to open leveldb at %s", path, err)
	}

	logger.Infof("Using leveldb chain store: %s", path)

	return &LevelDB{logger: logger, db: db}, nil
}

// NewInMemory creates a database backed by goleveldb's memory storage.
func NewInMemory(logger ulogger.Logger) (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.NewStorageError("failed to open in-memory leveldb", err)
	}

	return &LevelDB{logger: logger, db: db}, nil
}

func blockKey(hash *chainhash.Hash) []byte {
	return append([]byte{prefixBlock}, hash[:]...)
}

func heightKey(height uint32) []byte {
	return binary.BigEndian.AppendUint32([]byte{prefixHeight}, height)
}

func txKey(hash *chainhash.Hash) []byte {
	return append([]byte{prefixTx}, hash[:]...)
}

func (l *LevelDB) get(key []byte) ([]byte, bool, error) {
	value, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, errors.NewStorageError("failed to read key %x", key, err)
	}

	return value, true, nil
}

func (l *LevelDB) getBlockRecord(blockHash *chainhash.Hash) (uint32, []byte, error) {
	value, ok, err := l.get(blockKey(blockHash))
	if err != nil {
		return 0, nil, err
	}

	if !ok {
		return 0, nil, errors.NewBlockNotFoundError("block %s not found", blockHash)
	}

	if len(value) < 4+model.BlockHeaderSize {
		return 0, nil, errors.NewStorageError("block record %s is %d bytes", blockHash, len(value))
	}

	return binary.LittleEndian.Uint32(value), value[4:], nil
}

func (l *LevelDB) GetBlockHeight(_ context.Context, blockHash *chainhash.Hash) (uint32, error) {
	height, _, err := l.getBlockRecord(blockHash)
	return height, err
}

func (l *LevelDB) GetBlockHashAtHeight(_ context.Context, height uint32) (*chainhash.Hash, error) {
	value, ok, err := l.get(heightKey(height))
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errors.NewBlockNotFoundError("no block at height %d", height)
	}

	return chainhash.NewHash(value)
}

func (l *LevelDB) GetBlock(_ context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	height, data, err := l.getBlockRecord(blockHash)
	if err != nil {
		return nil, err
	}

	block, err := model.NewBlockFromFullBytes(data)
	if err != nil {
		return nil, errors.NewStorageError("failed to decode block %s", blockHash, err)
	}

	block.Height = height

	return block, nil
}

func (l *LevelDB) GetBlockHeader(_ context.Context, blockHash *chainhash.Hash) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	height, data, err := l.getBlockRecord(blockHash)
	if err != nil {
		return nil, nil, err
	}

	return decodeHeader(blockHash, height, data)
}

func decodeHeader(blockHash *chainhash.Hash, height uint32, data []byte) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	header, err := model.NewBlockHeaderFromBytes(data[:model.BlockHeaderSize])
	if err != nil {
		return nil, nil, errors.NewStorageError("failed to decode header %s", blockHash, err)
	}

	offset := model.BlockHeaderSize

	txCount, err := codec.ReadCompactSize(data, &offset)
	if err != nil {
		return nil, nil, errors.NewStorageError("failed to decode tx count of %s", blockHash, err)
	}

	return header, &model.BlockHeaderMeta{
		Height:      height,
		TxCount:     txCount,
		SizeInBytes: uint64(len(data)),
	}, nil
}

func (l *LevelDB) GetBlockExists(_ context.Context, blockHash *chainhash.Hash) (bool, error) {
	exists, err := l.db.Has(blockKey(blockHash), nil)
	if err != nil {
		return false, errors.NewStorageError("failed to check block %s", blockHash, err)
	}

	return exists, nil
}

func (l *LevelDB) GetTransaction(_ context.Context, txHash *chainhash.Hash) (*model.Transaction, error) {
	value, ok, err := l.get(txKey(txHash))
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errors.NewTxNotFoundError("transaction %s not found", txHash)
	}

	tx, err := model.NewTransactionFromBytes(value)
	if err != nil {
		return nil, errors.NewStorageError("failed to decode transaction %s", txHash, err)
	}

	return tx, nil
}

func (l *LevelDB) GetTransactionExists(_ context.Context, txHash *chainhash.Hash) (bool, error) {
	exists, err := l.db.Has(txKey(txHash), nil)
	if err != nil {
		return false, errors.NewStorageError("failed to check transaction %s", txHash, err)
	}

	return exists, nil
}

func (l *LevelDB) GetBestBlockHeader(ctx context.Context) (*model.BlockHeader, *model.BlockHeaderMeta, error) {
	iter := l.db.NewIterator(util.BytesPrefix([]byte{prefixHeight}), nil)
	defer iter.Release()

	if !iter.Last() {
		if err := iter.Error(); err != nil {
			return nil, nil, errors.NewStorageError("failed to iterate heights", err)
		}

		return nil, nil, errors.NewBlockNotFoundError("store is empty")
	}

	hash, err := chainhash.NewHash(iter.Value())
	if err != nil {
		return nil, nil, errors.NewStorageError("invalid hash at key %x", iter.Key(), err)
	}

	return l.GetBlockHeader(ctx, hash)
}

func (l *LevelDB) StoreBlock(_ context.Context, block *model.Block, height uint32) error {
	if block == nil || block.Header == nil {
		return errors.NewInvalidArgumentError("block is nil")
	}

	hash := block.Hash()

	exists, err := l.db.Has(blockKey(hash), nil)
	if err != nil {
		return errors.NewStorageError("failed to check block %s", hash, err)
	}

	if exists {
		return errors.NewBlockExistsError("block %s already stored", hash)
	}

	record := binary.LittleEndian.AppendUint32(nil, height)
	record = append(record, block.FullBytes()...)

	batch := new(leveldb.Batch)
	batch.Put(blockKey(hash), record)
	batch.Put(heightKey(height), hash[:])

	for _, tx := range block.Transactions {
		batch.Put(txKey(tx.TxID()), tx.Bytes())
	}

	if err = l.db.Write(batch, nil); err != nil {
		return errors.NewStorageError("failed to store block %s", hash, err)
	}

	l.logger.Debugf("stored block %s at height %d", hash, height)

	return nil
}

func (l *LevelDB) StoreTransaction(_ context.Context, tx *model.Transaction) error {
	if tx == nil {
		return errors.NewInvalidArgumentError("transaction is nil")
	}

	if err := l.db.Put(txKey(tx.TxID()), tx.Bytes(), nil); err != nil {
		return errors.NewStorageError("failed to store transaction %s", tx.TxID(), err)
	}

	return nil
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}
