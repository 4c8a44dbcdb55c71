package repository

import "errors"

// Store-level sentinel errors. Implementations translate driver errors
// into these so services never inspect driver types.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("unique constraint violated")
	ErrInUse     = errors.New("record referenced by other rows")
)
