package archive

import "fmt"

// Redis key pattern helpers
//
// All keys are namespaced by instance name so several family trees can share
// one Redis server.
//
// Key pattern: genaialogy:{instance_name}:{entity}:{uuid}

// KeyPrefix is the namespace shared by every archive key.
const KeyPrefix = "genaialogy"

// LineageKey returns the Redis key for a lineage.
// Pattern: genaialogy:{instance_name}:lineage:{lineage_id}
func LineageKey(instanceName, lineageID string) string {
	return fmt.Sprintf("%s:%s:lineage:%s", KeyPrefix, instanceName, lineageID)
}

// LineageKeyPrefix returns the part of LineageKey before the ID.
func LineageKeyPrefix(instanceName string) string {
	return LineageKey(instanceName, "")
}

// LineagePattern returns the SCAN match pattern for lineage keys whose ID
// starts with idPrefix. An empty prefix matches every lineage.
func LineagePattern(instanceName, idPrefix string) string {
	return LineageKey(instanceName, idPrefix) + "*"
}
