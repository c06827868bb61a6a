// Package sql is a chain store on top of database/sql, backed by sqlite or postgres.
package sql

import (
	"net/url"

	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/bsv-blockchain/litenode/util"
	"github.com/bsv-blockchain/litenode/util/usql"
)

type SQL struct {
	db     *usql.DB
	engine util.SQLEngine
	logger ulogger.Logger
}

func New(logger ulogger.Logger, storeURL *url.URL) (*SQL, error) {
	logger = logger.New("bcsql")

	db, err := util.InitSQLDB(logger, storeURL)
	if err != nil {
		return nil, errors.NewStorageError("failed to init sql db", err)
	}

	engine := util.SQLEngine(storeURL.Scheme)

	switch engine {
	case util.Postgres:
		if err = createPostgresSchema(db); err != nil {
			return nil, errors.NewStorageError("failed to create postgres schema", err)
		}

	case util.Sqlite, util.SqliteMemory:
		if engine == util.SqliteMemory {
			// the memory database lives as long as its last connection
			db.SetMaxOpenConns(1)
		}

		if err = createSqliteSchema(db); err != nil {
			return nil, errors.NewStorageError("failed to create sqlite schema", err)
		}

	default:
		return nil, errors.NewConfigurationError("unknown database engine: %s", storeURL.Scheme)
	}

	return &SQL{
		db:     db,
		engine: engine,
		logger: logger,
	}, nil
}

func (s *SQL) GetDB() *usql.DB {
	return s.db
}

func (s *SQL) GetDBEngine() util.SQLEngine {
	return s.engine
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func createPostgresSchema(db *usql.DB) error {
	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS blocks (
	    id              BIGSERIAL PRIMARY KEY
	    ,hash           BYTEA NOT NULL
	    ,previous_hash  BYTEA NOT NULL
	    ,height         BIGINT NOT NULL
        ,block_time     BIGINT NOT NULL
        ,n_bits         BYTEA NOT NULL
		,tx_count       BIGINT NOT NULL
		,size_in_bytes  BIGINT NOT NULL
	    ,header         BYTEA NOT NULL
	    ,block_data     BYTEA NOT NULL
    	,inserted_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create blocks table", err)
	}

	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_blocks_hash ON blocks (hash);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ux_blocks_hash index", err)
	}

	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS chain (
	    height          BIGINT PRIMARY KEY
	    ,block_id       BIGINT NOT NULL REFERENCES blocks(id)
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create chain table", err)
	}

	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS transactions (
	    hash            BYTEA PRIMARY KEY
	    ,tx             BYTEA NOT NULL
    	,inserted_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create transactions table", err)
	}

	return nil
}

func createSqliteSchema(db *usql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS blocks (
		 id             INTEGER PRIMARY KEY AUTOINCREMENT
	    ,hash           BLOB NOT NULL
	    ,previous_hash  BLOB NOT NULL
	    ,height         BIGINT NOT NULL
        ,block_time     BIGINT NOT NULL
        ,n_bits         BLOB NOT NULL
		,tx_count       BIGINT NOT NULL
		,size_in_bytes  BIGINT NOT NULL
	    ,header         BLOB NOT NULL
	    ,block_data     BLOB NOT NULL
        ,inserted_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create blocks table", err)
	}

	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_blocks_hash ON blocks (hash);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ux_blocks_hash index", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS chain (
		 height         BIGINT PRIMARY KEY
	    ,block_id       INTEGER NOT NULL REFERENCES blocks(id)
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create chain table", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
		 hash           BLOB PRIMARY KEY
	    ,tx             BLOB NOT NULL
        ,inserted_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create transactions table", err)
	}

	return nil
}
