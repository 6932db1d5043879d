package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The remote API is loose about representations: ids come back as numbers or
// strings, prices as numbers or numeric strings, and list columns either as JSON
// arrays or as JSON-encoded strings. These types absorb that on decode and
// always encode in the canonical form.

// FlexString decodes a JSON string or number into a string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexInt decodes a JSON number or numeric string into an int.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = 0
			return nil
		}
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*f = FlexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("flex int: %q is not a number", raw)
	}
	if math.IsNaN(fl) || math.IsInf(fl, 0) || fl < float64(math.MinInt) || fl >= -float64(math.MinInt) {
		return fmt.Errorf("flex int: %q is out of range", raw)
	}
	*f = FlexInt(int(fl))
	return nil
}

// FlexList decodes either a JSON array or a JSON-encoded string holding an array.
// Scalar elements become strings, objects are kept as compact JSON. null and "" decode to
// an empty list, so the two representations always normalize to the same slice.
type FlexList []string

func (f *FlexList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlexList{}
		return nil
	}
	if data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		encoded = strings.TrimSpace(encoded)
		if encoded == "" {
			*f = FlexList{}
			return nil
		}
		data = []byte(encoded)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("flex list: %w", err)
	}
	out := make(FlexList, 0, len(items))
	for _, it := range items {
		it = bytes.TrimSpace(it)
		switch {
		case bytes.Equal(it, []byte("null")):
			continue
		case it[0] == '{' || it[0] == '[':
			// Structured references are kept as compact JSON text.
			var buf bytes.Buffer
			if err := json.Compact(&buf, it); err != nil {
				return fmt.Errorf("flex list: %w", err)
			}
			out = append(out, buf.String())
		default:
			var s FlexString
			if err := json.Unmarshal(it, &s); err != nil {
				return fmt.Errorf("flex list: %w", err)
			}
			out = append(out, string(s))
		}
	}
	*f = out
	return nil
}

// MarshalJSON always writes a native array, never null.
func (f FlexList) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}
