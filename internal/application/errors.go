package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPlaceNotFound      = errors.New("place not found")
	ErrNotOwner           = errors.New("requester does not own this place")
)
