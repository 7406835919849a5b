package service

import "errors"

// Lookups that miss surface ErrNotFound; handlers translate it to a 404 (or
// a deliberately silent success for the account-enumeration-sensitive flows).
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserLocked         = errors.New("user is locked")
	ErrUserInactive       = errors.New("user is not activated")
	ErrEmailTaken         = errors.New("email already registered")
)
