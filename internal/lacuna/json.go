package lacuna

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// objectField is one key/value pair of a JSON object
type objectField struct {
	Key   string
	Value json.RawMessage
}

// orderedObject decodes a JSON object keeping its keys in document order.
// The server returns colonies and buildings as id-keyed objects and that
// order is the fetch order.
type orderedObject []objectField

func (o *orderedObject) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	var fields orderedObject
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		fields = append(fields, objectField{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = fields
	return nil
}

// flexInt accepts numbers, numeric strings and null. The server is not
// consistent about quoting levels and timers.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		*f = flexInt(n)
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("not a number: %s", data)
	}
	if v >= math.MaxInt || v < math.MinInt {
		return fmt.Errorf("number out of range: %s", data)
	}
	*f = flexInt(v)
	return nil
}
