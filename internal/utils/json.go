package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadJSON reads a JSON file into target. Unknown fields are rejected so that
// typos in hand-edited seed files surface instead of being silently ignored.
func LoadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from %s: %w", path, err)
	}
	return nil
}
