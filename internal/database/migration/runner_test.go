package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrdersAndChecksums(t *testing.T) {
	r := Runner{FS: fstest.MapFS{
		"V2__add_index.sql": {Data: []byte("CREATE INDEX idx ON t (a);\n")},
		"V1__init.sql":      {Data: []byte("CREATE TABLE t (a INT);")},
		"V10__widen.sql":    {Data: []byte("ALTER TABLE t ALTER COLUMN a TYPE BIGINT;")},
		"README.md":         {Data: []byte("not a migration")},
		"V3__broken.txt":    {Data: []byte("wrong extension")},
	}}

	migs, err := r.load()
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "V1__init.sql", migs[0].Filename)
	assert.Equal(t, "CREATE TABLE t (a INT);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)

	assert.Equal(t, "CREATE INDEX idx ON t (a);", migs[1].SQL)
}

func TestLoadRejectsDuplicateVersions(t *testing.T) {
	r := Runner{FS: fstest.MapFS{
		"V1__one.sql": {Data: []byte("SELECT 1;")},
		"V1__two.sql": {Data: []byte("SELECT 2;")},
	}}

	_, err := r.load()
	assert.ErrorContains(t, err, "duplicate migration version")
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	r := Runner{FS: fstest.MapFS{
		"V1__empty.sql": {Data: []byte("   \n")},
	}}

	_, err := r.load()
	assert.ErrorContains(t, err, "empty migration file")
}

func TestLoadMissingDirIsNotAnError(t *testing.T) {
	r := Runner{Dir: "testdata/does-not-exist"}

	migs, err := r.load()
	require.NoError(t, err)
	assert.Empty(t, migs)
}
