package user

import "errors"

// Domain validation errors
var (
	ErrUsernameTooShort      = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong       = errors.New("username must be at most 30 characters")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong       = errors.New("password must be at most 128 characters")
	ErrEmptyPasswordHash     = errors.New("password hash cannot be empty")
	ErrInvalidAge            = errors.New("age must be between 0 and 150")
	ErrInvalidCaloriesTarget = errors.New("daily calories target cannot be negative")
	ErrInvalidGender         = errors.New("gender must be male, female or other")
	ErrInvalidHealthGoal     = errors.New("unknown health goal")
	ErrSelfFollow            = errors.New("users cannot follow themselves")
)
