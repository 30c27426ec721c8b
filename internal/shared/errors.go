// Package shared holds sentinels and list filters common to the
// domain packages.
package shared

import "errors"

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID indicates a non-positive or unparseable identifier.
	ErrInvalidID = errors.New("invalid ID")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
