package models

import "errors"

var (
	// ErrDuplicateUser is returned when registering an existing username.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown user and password mismatch
	// so the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownMetric indicates a metric key outside the seven selectable
	// columns. Unreachable through the dropdown; a contract mismatch if seen.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrUserNotFound is the store-level miss mapped by the credential gate.
	ErrUserNotFound = errors.New("user not found")
)
