package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches no row. Callers test
// with errors.Is; implementations wrap it with entity context.
var ErrNotFound = errors.New("not found")
