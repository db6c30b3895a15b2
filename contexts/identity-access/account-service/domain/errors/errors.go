package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	// ErrInvalidLogin covers both unknown email and wrong password; login
	// never reveals which.
	ErrInvalidLogin = errors.New("invalid email or password")
	// ErrLastAdmin rejects deleting the only remaining admin account.
	ErrLastAdmin = errors.New("cannot delete the last admin")
	// ErrAdminExists rejects the bootstrap endpoint once any admin exists.
	ErrAdminExists = errors.New("an admin account already exists")
)
