package model

import "errors"

// Error codes
const (
	ErrCodeUserNotFound  = "USR001"
	ErrCodeUsernameTaken = "USR002"
	ErrCodeEmailTaken    = "USR003"
	ErrCodeInvalidCode   = "USR004"
	ErrCodeExpiredCode   = "USR005"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already bound to a different email")
	ErrEmailTaken    = errors.New("email already bound to a different username")
	ErrInvalidCode   = errors.New("confirmation code does not match")
	ErrExpiredCode   = errors.New("confirmation code has expired")
)
