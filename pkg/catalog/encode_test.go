package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRecordsSortsKeys(t *testing.T) {
	records, err := ParseRecords([]byte(`[{"z": 1, "a": "<x>"}]`))
	require.NoError(t, err)

	data, err := EncodeRecords(records)
	require.NoError(t, err)

	want := "[\n  {\n    \"a\": \"<x>\",\n    \"z\": 1\n  }\n]\n"
	assert.Equal(t, want, string(data))
}

func TestEncodeRecordsKeyOrderDoesNotMatter(t *testing.T) {
	first, err := ParseRecords([]byte(`[{"name":"Red","id":"r1","hex":"#ff0000"}]`))
	require.NoError(t, err)
	second, err := ParseRecords([]byte(`[{"hex":"#ff0000","id":"r1","name":"Red"}]`))
	require.NoError(t, err)

	a, err := EncodeRecords(first)
	require.NoError(t, err)
	b, err := EncodeRecords(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeRecordsEmpty(t *testing.T) {
	data, err := EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteFileAtomicReplacesExisting(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "combined.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, WriteFileAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// No temp files left behind.
	leftovers, err := filepath.Glob(filepath.Join(root, ".combined.json.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteCombinedIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.json", `[{"id":"a1","name":"Red","hex":"#ff0000"}]`)
	writeFile(t, root, "b.json", `[{"hex":"#00ff00","name":"Green","id":"b1"}]`)

	opts := testOptions(root)

	report := Combine(opts)
	path, err := WriteCombined(opts, report.Records)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// A second run over the unchanged tree, with the previous output
	// present, produces byte-identical output.
	report = Combine(opts)
	_, err = WriteCombined(opts, report.Records)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteCombinedEmptyTree(t *testing.T) {
	opts := testOptions(t.TempDir())
	path, err := WriteCombined(opts, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteCombinedFailsOnMissingRoot(t *testing.T) {
	opts := testOptions(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := WriteCombined(opts, nil)
	assert.Error(t, err)
}
