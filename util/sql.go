package util

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/bsv-blockchain/litenode/util/usql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

type SQLEngine string

const (
	Postgres     SQLEngine = "postgres"
	Sqlite       SQLEngine = "sqlite"
	SqliteMemory SQLEngine = "sqlitememory"
)

func InitSQLDB(logger ulogger.Logger, storeURL *url.URL) (*usql.DB, error) {
	switch SQLEngine(storeURL.Scheme) {
	case Postgres:
		return InitPostgresDB(logger, storeURL)
	case Sqlite, SqliteMemory:
		return InitSQLiteDB(logger, storeURL)
	}

	return nil, errors.NewConfigurationError("db: unknown scheme: %s", storeURL.Scheme)
}

func queryInt(values url.Values, key string, defaultValue int) int {
	if v := values.Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}

	return defaultValue
}

func InitPostgresDB(logger ulogger.Logger, storeURL *url.URL) (*usql.DB, error) {
	dbHost := storeURL.Hostname()
	dbPort, _ := strconv.Atoi(storeURL.Port())

	if dbPort == 0 {
		dbPort = 5432
	}

	if len(storeURL.Path) < 2 {
		return nil, errors.NewConfigurationError("postgres URL %s has no database name", storeURL.Redacted())
	}

	dbName := storeURL.Path[1:]
	dbUser := ""
	dbPassword := ""

	if storeURL.User != nil {
		dbUser = storeURL.User.Username()
		dbPassword, _ = storeURL.User.Password()
	}

	queryParams := storeURL.Query()

	sslMode := "disable"
	if val := queryParams.Get("sslmode"); val != "" {
		sslMode = val
	}

	dbInfo := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=%s host=%s port=%d", dbUser, dbPassword, dbName, sslMode, dbHost, dbPort)

	db, err := usql.Open(string(Postgres), dbInfo)
	if err != nil {
		return nil, errors.NewStorageError("failed to open postgres DB", err)
	}

	logger.Infof("Using postgres DB: %s@%s:%d/%s", dbUser, dbHost, dbPort, dbName)

	db.SetMaxIdleConns(queryInt(queryParams, "maxIdleConns", 10))
	db.SetMaxOpenConns(queryInt(queryParams, "maxOpenConns", 80))

	return db, nil
}

// InitSQLiteDB opens the sqlite file at the URL path, sqlite:///var/lib/chain.db for
// example. The sqlitememory scheme opens a private shared-cache memory database.
func InitSQLiteDB(logger ulogger.Logger, storeURL *url.URL) (*usql.DB, error) {
	var (
		filename string
		err      error
	)

	if SQLEngine(storeURL.Scheme) == SqliteMemory {
		filename = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	} else {
		if storeURL.Path == "" || storeURL.Path == "/" {
			return nil, errors.NewConfigurationError("sqlite URL %s has no path", storeURL)
		}

		filename, err = filepath.Abs(storeURL.Path)
		if err != nil {
			return nil, errors.NewConfigurationError("failed to get absolute path for sqlite DB", err)
		}

		if err = os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			return nil, errors.NewStorageError("failed to create folder for %s", filename, err)
		}

		/* Don't be tempted by a large busy_timeout. Just masks a bigger problem.
		Fail fast. */
		filename = fmt.Sprintf("%s?cache=shared&_pragma=busy_timeout=5000&_pragma=journal_mode=WAL", filename)
	}

	logger.Infof("Using sqlite DB: %s", filename)

	db, err := usql.Open(string(Sqlite), filename)
	if err != nil {
		return nil, errors.NewStorageError("failed to open sqlite DB", err)
	}

	if _, err = db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, errors.NewStorageError("could not enable foreign keys support", err)
	}

	if _, err = db.Exec(`PRAGMA locking_mode = SHARED;`); err != nil {
		_ = db.Close()
		return nil, errors.NewStorageError("could not enable shared locking mode", err)
	}

	return db, nil
}
