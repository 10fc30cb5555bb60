package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// encodeJSON renders v pretty-printed with two-space indentation, no
// HTML escaping, and a trailing newline. Map keys come out in sorted
// order, so encoding the same records always yields the same bytes.
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeRecords renders records as the canonical combined JSON array.
func EncodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return encodeJSON(records)
}

// WriteFileAtomic writes data to path through a temp file in the same
// directory plus a rename, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// WriteCombined serializes records to the combined output file under
// the root. This is the one fatal step of a combine run.
func WriteCombined(opts Options, records []Record) (string, error) {
	opts = opts.withDefaults()

	data, err := EncodeRecords(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode combined output: %w", err)
	}

	path := filepath.Join(opts.Root, opts.OutputName)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
