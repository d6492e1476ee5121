package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDL(t *testing.T) {
	sql := "-- products\r\nCREATE TABLE a (\n  id STRING(36) NOT NULL, -- key\n) PRIMARY KEY (id);\n\n;\nCREATE INDEX a_by_id ON a(id);\n-- trailing\n"

	assert.Equal(t, []string{
		"CREATE TABLE a (\n  id STRING(36) NOT NULL, \n) PRIMARY KEY (id)",
		"CREATE INDEX a_by_id ON a(id)",
	}, splitDDL(sql))
}

func TestReadDDLDir_Ordered(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_b.sql"), []byte("CREATE TABLE b (id INT64) PRIMARY KEY (id);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_a.sql"), []byte("CREATE TABLE a (id INT64) PRIMARY KEY (id);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("DROP TABLE a;"), 0o600))

	stmts, err := readDDLDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"CREATE TABLE a (id INT64) PRIMARY KEY (id)",
		"CREATE TABLE b (id INT64) PRIMARY KEY (id)",
	}, stmts)
}

func TestSchemaFileParses(t *testing.T) {
	stmts, err := readDDLDir(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, stmts)
	for _, s := range stmts {
		assert.NotContains(t, s, "--")
		assert.NotContains(t, s, ";")
	}
	assert.Contains(t, stmts[0], "CREATE TABLE products")
}

func TestSplitDatabase(t *testing.T) {
	inst, id, err := splitDatabase("projects/p/instances/i/databases/d")
	require.NoError(t, err)
	assert.Equal(t, "projects/p/instances/i", inst)
	assert.Equal(t, "d", id)

	for _, bad := range []string{"", "d", "projects/p/instances/i", "projects//instances/i/databases/d", "projects/p/instance/i/databases/d"} {
		_, _, err := splitDatabase(bad)
		assert.Error(t, err, bad)
	}
}

func TestRun_DryRunNeedsNoSpanner(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001.sql"), []byte("CREATE TABLE a (id INT64) PRIMARY KEY (id);"), 0o600))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--database", "projects/p/instances/i/databases/d", "--dir", dir, "--dry-run"})
	assert.NoError(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetArgs([]string{"--database", "", "--dir", dir})
	assert.Error(t, cmd.Execute())
}
