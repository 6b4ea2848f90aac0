package storage

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("email already exists")
	// ErrPersist wraps failures writing the directory document.
	ErrPersist = errors.New("persist directory")
)
