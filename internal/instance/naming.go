// Package instance names and locates the archive namespace a genaialogy
// invocation writes to. Several family trees can share one Redis server by
// using different instance names.
package instance

import (
	"fmt"
	"regexp"
)

const (
	// DefaultName is used when no instance is configured.
	DefaultName = "default"

	// MaxNameLength keeps instance names usable as Redis key segments and
	// DNS labels.
	MaxNameLength = 63
)

var (
	// NamePattern matches lowercase alphanumerics with inner hyphens. Colons
	// and glob metacharacters are excluded so a name can never escape its
	// key prefix or widen a SCAN match.
	NamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)
)

// ValidateName checks that an instance name can be embedded in archive keys.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("instance name too long: %d characters (max: %d)", len(name), MaxNameLength)
	}

	if !NamePattern.MatchString(name) {
		return fmt.Errorf("invalid instance name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}
