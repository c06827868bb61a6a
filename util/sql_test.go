package util

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSQLDB(t *testing.T) {
	t.Run("sqlitememory", func(t *testing.T) {
		storeURL, err := url.Parse("sqlitememory:///chain")
		require.NoError(t, err)

		db, err := InitSQLDB(ulogger.TestLogger{}, storeURL)
		require.NoError(t, err)

		defer func() {
			_ = db.Close()
		}()

		var one int
		require.NoError(t, db.QueryRowContext(context.Background(), "SELECT 1").Scan(&one))
		assert.Equal(t, 1, one)
	})

	t.Run("sqlite file", func(t *testing.T) {
		storeURL := &url.URL{Scheme: "sqlite", Path: filepath.Join(t.TempDir(), "data", "chain.db")}

		db, err := InitSQLDB(ulogger.TestLogger{}, storeURL)
		require.NoError(t, err)

		defer func() {
			_ = db.Close()
		}()

		_, err = db.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)")
		require.NoError(t, err)
	})

	t.Run("sqlite without path", func(t *testing.T) {
		_, err := InitSQLDB(ulogger.TestLogger{}, &url.URL{Scheme: "sqlite"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})

	t.Run("unknown scheme", func(t *testing.T) {
		_, err := InitSQLDB(ulogger.TestLogger{}, &url.URL{Scheme: "mysql"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})
}
