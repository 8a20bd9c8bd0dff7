package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when an entity with the same ID is already stored
	ErrDuplicateID = errors.New("duplicate id")
)
