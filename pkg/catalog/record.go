package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Record is one paint entry drawn from an input file's top-level array.
// No schema is enforced; only the optional "id" field is ever inspected.
type Record map[string]interface{}

// Identifier returns the deduplication key for r. String ids are used
// verbatim and numeric ids use their decimal token, so id: 42 and
// id: "42" collide. Any other type, or a missing id, yields ok=false
// and the record is never deduplicated.
func (r Record) Identifier() (string, bool) {
	switch v := r["id"].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Field returns the named field when it is a JSON string, else "".
func (r Record) Field(key string) string {
	s, _ := r[key].(string)
	return s
}

// errNotObjectArray marks valid JSON whose shape is not an array made
// exclusively of objects. Such files are skipped whole.
var errNotObjectArray = errors.New("not an array of objects")

// ParseRecords decodes data as a JSON array of objects. Numbers are kept
// as json.Number so ids and values survive re-encoding byte for byte.
func ParseRecords(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raw))
	for i, v := range raw {
		obj, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("element %d: %w", i, errNotObjectArray)
		}
		records = append(records, Record(obj))
	}
	return records, nil
}
