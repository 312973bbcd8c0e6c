package store

import (
	"fmt"

	"github.com/roach88/facore/internal/ir"
)

// MarshalInput converts a query input to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON so equal inputs store byte-identical text.
func MarshalInput(input map[string]any) (string, error) {
	data, err := ir.MarshalCanonical(input)
	if err != nil {
		return "", fmt.Errorf("marshal input: %w", err)
	}
	return string(data), nil
}

// boolToInt maps bools to the 0/1 INTEGER columns.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
