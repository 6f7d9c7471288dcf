package storage

import "errors"

// ErrNotFound is returned by lookups when no row matches. Services map it
// onto the public error taxonomy.
var ErrNotFound = errors.New("not found")
