package archive

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Serialization helpers for converting between Lineage and Redis hashes.
// The parallel name and pointer arrays are JSON-encoded into single fields.

// LineageToHash converts a Lineage to a Redis hash.
func LineageToHash(l *Lineage) (map[string]interface{}, error) {
	namesJSON, err := json.Marshal(l.Names)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal names: %w", err)
	}

	pointersJSON, err := json.Marshal(l.Pointers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pointers: %w", err)
	}

	return map[string]interface{}{
		"id":            l.ID,
		"ancestor":      l.Ancestor,
		"descendant":    l.Descendant,
		"names":         string(namesJSON),
		"pointers":      string(pointersJSON),
		"source_file":   l.SourceFile,
		"created_at_ms": l.CreatedAtMs,
	}, nil
}

// HashToLineage converts a Redis hash back to a Lineage.
func HashToLineage(hash map[string]string) (*Lineage, error) {
	var names, pointers []string
	if err := json.Unmarshal([]byte(hash["names"]), &names); err != nil {
		return nil, fmt.Errorf("failed to unmarshal names: %w", err)
	}
	if err := json.Unmarshal([]byte(hash["pointers"]), &pointers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pointers: %w", err)
	}

	createdAtMs, err := strconv.ParseInt(hash["created_at_ms"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at_ms field: %w", err)
	}

	return &Lineage{
		ID:          hash["id"],
		Ancestor:    hash["ancestor"],
		Descendant:  hash["descendant"],
		Names:       names,
		Pointers:    pointers,
		SourceFile:  hash["source_file"],
		CreatedAtMs: createdAtMs,
	}, nil
}
