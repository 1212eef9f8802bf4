package models

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("not found")

// IsUniqueConstraint reports whether err is a sqlite unique-constraint
// violation. The driver exposes this only through the error string.
func IsUniqueConstraint(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
