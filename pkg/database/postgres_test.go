package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRunMigrations(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	applied, err := db.RunMigrations()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_kv_store.sql"}, applied)

	_, err = db.Exec(`INSERT INTO kv_store (key, value) VALUES ('isp_auth', 'true')`)
	require.NoError(t, err)

	// Migrations are idempotent.
	_, err = db.RunMigrations()
	require.NoError(t, err)

	var value string
	require.NoError(t, db.QueryRow(`SELECT value FROM kv_store WHERE key = 'isp_auth'`).Scan(&value))
	assert.Equal(t, "true", value)
}

func TestRunMigrationsOrderAndFailure(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/002_b.sql":  {Data: []byte(`INSERT INTO t (v) VALUES ('b');`)},
		"m/001_a.sql":  {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"m/readme.txt": {Data: []byte(`ignored`)},
	}
	applied, err := db.runMigrations(fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, applied)

	bad := fstest.MapFS{"m/001_bad.sql": {Data: []byte(`NOT SQL`)}}
	_, err = db.runMigrations(bad, "m")
	assert.ErrorContains(t, err, "001_bad.sql")
}
