package admin

import "errors"

var (
	ErrAdminNotFound = errors.New("admin not found")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot learn which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
