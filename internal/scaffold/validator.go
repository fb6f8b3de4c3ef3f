package scaffold

import (
	"errors"
	"fmt"
	"os"
)

// ExistingConfigError is returned when init would overwrite a config file.
type ExistingConfigError struct {
	Path string
}

func (e *ExistingConfigError) Error() string {
	return fmt.Sprintf("%s already exists", e.Path)
}

// IsExisting reports whether err is an ExistingConfigError.
func IsExisting(err error) bool {
	var target *ExistingConfigError
	return errors.As(err, &target)
}

// CheckExisting returns an ExistingConfigError if path is already present.
func CheckExisting(path string) error {
	if _, err := os.Stat(path); err == nil {
		return &ExistingConfigError{Path: path}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	return nil
}
