package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource or a request is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrTransport is returned when the HTTP exchange with the provider failed before
	// a response body could be obtained (DNS, TLS, connect, timeout, reset...).
	ErrTransport = errors.New("transport failure")
	// ErrDecode is returned when the provider answered but the body was empty, not JSON
	// or not the expected envelope.
	ErrDecode = errors.New("invalid response")
	// ErrRefused is returned by typed operations when the provider answered with a
	// false result, the provider messages explain why.
	ErrRefused = errors.New("refused by provider")
)
