package repository

import "errors"

// ErrNotFound is returned when the requested entity does not exist. Both the
// Postgres and in-memory implementations surface this same sentinel.
var ErrNotFound = errors.New("not found")
