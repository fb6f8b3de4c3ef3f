package familytree

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a name did not match any individual in the tree.
type NotFoundError struct {
	Name string
	Role string // "ancestor", "descendant" or "individual"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Role, e.Name)
}

// PathNotFoundError indicates both endpoints exist but no parent→child chain
// leads from the ancestor to the descendant.
type PathNotFoundError struct {
	Ancestor   string
	Descendant string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("no path found from '%s' to '%s'", e.Ancestor, e.Descendant)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsPathNotFound reports whether err is, or wraps, a PathNotFoundError.
func IsPathNotFound(err error) bool {
	var target *PathNotFoundError
	return errors.As(err, &target)
}
