package storage

import (
	"encoding/json"
	"fmt"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

// MergeMemory shallow-merges update over base field-by-field: fields
// present in update overwrite, fields absent from update are preserved.
// Neither input is modified.
func MergeMemory(base, update map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(update))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}

// MemoryToMap converts a progress record to its JSON field map
func MemoryToMap(mem models.UserMemory) (map[string]interface{}, error) {
	raw, err := json.Marshal(mem)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal memory: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode memory map: %v", err)
	}
	return m, nil
}

// MemoryFromMap converts a JSON field map back to a progress record.
// Unknown fields are dropped.
func MemoryFromMap(m map[string]interface{}) (models.UserMemory, error) {
	var mem models.UserMemory
	raw, err := json.Marshal(m)
	if err != nil {
		return mem, fmt.Errorf("failed to marshal memory map: %v", err)
	}
	if err := json.Unmarshal(raw, &mem); err != nil {
		return mem, fmt.Errorf("failed to decode memory: %v", err)
	}
	return mem, nil
}
