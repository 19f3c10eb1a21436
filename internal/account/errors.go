package account

import "errors"

// Creation-time validation errors.
var (
	ErrDuplicateUsername          = errors.New("username already exists")
	ErrUsernameTooShort           = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort           = errors.New("password must be at least 6 characters")
	ErrPasswordMissingSpecialChar = errors.New("password must contain at least one special character (!@#$%^&* etc.)")
)

// Login-time errors.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// ErrNotLoggedIn is returned by operations that need an active session.
var ErrNotLoggedIn = errors.New("not logged in")
