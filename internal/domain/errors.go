package domain

import "errors"

var ErrNotFound = errors.New("not found")

// truthy mirrors the update rule: an unset or empty value never overwrites.
func truthy(s *string) bool { return s != nil && *s != "" }
