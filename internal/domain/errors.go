package domain

import "errors"

// ErrNotFound is returned by repositories when the addressed record does not exist.
var ErrNotFound = errors.New("resource not found")
