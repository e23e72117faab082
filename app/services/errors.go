package services

import "errors"

var (
	// ErrDuplicateEmail is returned by Register when the email is taken.
	ErrDuplicateEmail = errors.New("services: email already registered")
	// ErrInvalidCredentials is returned by Login for an unknown email and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("services: invalid credentials")
	// ErrUnauthorized is returned by order operations without an owner.
	ErrUnauthorized = errors.New("services: unauthorized")
)
