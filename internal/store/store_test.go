package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/schema"
	"dump-salvage/internal/store"
)

func TestCreate_DiscardsPreviousStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salvage.db")
	d := &dialect.SQLiteDialect{}

	s, err := store.Create(d, path, "wp_posts")
	require.NoError(t, err)
	_, err = s.DB.Exec(`CREATE TABLE leftover (x INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Create(d, path, "wp_posts")
	require.NoError(t, err)
	defer s.Close()

	tables, err := schema.Tables(s.DB, d)
	require.NoError(t, err)
	require.Empty(t, tables)
}

func TestOpen_KeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salvage.db")
	d := &dialect.SQLiteDialect{}

	s, err := store.Create(d, path, "wp_posts")
	require.NoError(t, err)
	_, err = s.DB.Exec(schema.CreateQuery(d, schema.Canonical("wp_posts")))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(d, path, "wp_posts")
	require.NoError(t, err)
	defer s.Close()

	tables, err := schema.Tables(s.DB, d)
	require.NoError(t, err)
	require.Equal(t, []string{"wp_posts"}, tables)
}

func TestDestroy_RemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salvage.db")

	s, err := store.Create(&dialect.SQLiteDialect{}, path, "wp_posts")
	require.NoError(t, err)
	require.NoError(t, s.Destroy())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestOpen_ServerWithoutDSN(t *testing.T) {
	_, err := store.Open(&dialect.PostgresDialect{}, "", "wp_posts")
	require.Error(t, err)
}

func TestCreate_DiscardsPreviousStoreBehindURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salvage.db")
	d := &dialect.SQLiteDialect{}

	for _, dsn := range []string{path + "?_pragma=busy_timeout(5000)", "file:" + path + "?_pragma=busy_timeout(5000)"} {
		s, err := store.Create(d, dsn, "wp_posts")
		require.NoError(t, err, dsn)
		_, err = s.DB.Exec(`CREATE TABLE leftover (x INTEGER)`)
		require.NoError(t, err, dsn)
		require.NoError(t, s.Close())

		s, err = store.Create(d, dsn, "wp_posts")
		require.NoError(t, err, dsn)
		tables, err := schema.Tables(s.DB, d)
		require.NoError(t, err)
		require.Empty(t, tables, dsn)
		require.NoError(t, s.Destroy())

		_, err = os.Stat(path)
		require.True(t, os.IsNotExist(err), dsn)
	}
}
