package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for algorithm migration.
const (
	DomainDefinition = "facore/definition/v1"
	DomainQuery      = "facore/query/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DefinitionHash identifies a definition by content. Two definitions that
// build the same automaton with the same names hash equally.
func DefinitionHash(d *AutomatonDef) (string, error) {
	canonical, err := MarshalCanonical(d.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("DefinitionHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDefinition, canonical), nil
}

// QueryID identifies one membership query within a run.
// input is the canonical form of the queried word or number.
func QueryID(runID string, seq int64, definitionHash string, input map[string]any) (string, error) {
	obj := map[string]any{
		"run_id":          runID,
		"seq":             seq,
		"definition_hash": definitionHash,
		"input":           input,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("QueryID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainQuery, canonical), nil
}

// MustDefinitionHash is like DefinitionHash but panics on error.
// Use only in tests or when the definition is known to be valid.
func MustDefinitionHash(d *AutomatonDef) string {
	h, err := DefinitionHash(d)
	if err != nil {
		panic(err)
	}
	return h
}
