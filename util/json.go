// util/json.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// DuplicateJSONKey is a key that appears more than once in the same
// object; encoding/json silently keeps the last one.
type DuplicateJSONKey struct {
	Path string // dotted path of the enclosing object, e.g. "weight"
	Key  string
}

// FindDuplicateJSONKeys returns the duplicated keys in the given JSON in
// the order they are encountered. Array elements share their parent's
// path. Scanning stops at the first syntax error.
func FindDuplicateJSONKeys(data []byte) []DuplicateJSONKey {
	dec := json.NewDecoder(bytes.NewReader(data))
	var dups []DuplicateJSONKey

	// value consumes a single value; it returns false on a syntax error.
	var value func(path string) bool
	value = func(path string) bool {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		delim, ok := tok.(json.Delim)
		if !ok {
			return true
		}

		if delim == '{' {
			seen := make(map[string]bool)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return false
				}
				key, _ := kt.(string)
				if seen[key] {
					dups = append(dups, DuplicateJSONKey{Path: path, Key: key})
				}
				seen[key] = true

				sub := key
				if path != "" {
					sub = path + "." + key
				}
				if !value(sub) {
					return false
				}
			}
		} else {
			for dec.More() {
				if !value(path) {
					return false
				}
			}
		}
		_, err = dec.Token() // closing delimiter
		return err == nil
	}

	value("")
	return dups
}

func UnmarshalJSON[T any](r io.Reader, out *T) error {
	// Unfortunately we need the contents as an array of bytes so that we
	// can issue reasonable errors.
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return UnmarshalJSONBytes(b, out)
}

// Unmarshal the bytes into the given type but go through some efforts to
// return useful error messages when the JSON is invalid...
func UnmarshalJSONBytes[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	switch jerr := err.(type) {
	case *json.SyntaxError:
		line, char := decodeOffset(jerr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %w", line, char, jerr)

	case *json.UnmarshalTypeError:
		line, char := decodeOffset(jerr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %s value for %s.%s invalid for type %s",
			line, char, jerr.Value, jerr.Struct, jerr.Field, jerr.Type.String())

	default:
		return err
	}
}
