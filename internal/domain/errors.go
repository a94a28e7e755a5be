package domain

import "errors"

var (
	ErrPokemonNotFound = errors.New("pokemon not found")
	ErrUpstream        = errors.New("upstream request failed")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrNotSignedIn     = errors.New("not signed in")
	ErrUnknownType     = errors.New("unknown pokemon type")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrStaleResponse   = errors.New("stale detail response")
)
