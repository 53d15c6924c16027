package model

import "github.com/Laisky/errors/v2"

var (
	// ErrNotFound indicates the target document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyLinked indicates the (person, movie) pair is already linked.
	ErrAlreadyLinked = errors.New("movie is already linked to this person")
	// ErrValidation indicates a create/update payload failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates the login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
