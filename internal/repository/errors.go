package repository

import "errors"

// Sentinel errors the service layer branches on.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)
