package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNotPersisted     = errors.New("dog must be saved to the database before updating")
	ErrAlreadyPersisted = errors.New("dog is already saved")
	ErrMalformedRow     = errors.New("malformed dog row")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidInput     = errors.New("invalid input")
)
