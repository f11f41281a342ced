package lib

import (
	"errors"

	"github.com/slok/jiffybox/internal/model"
)

var (
	// ErrNotFound is returned when a box (or another resource) doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a box with the same name already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned on invalid input, like a missing name or plan id.
	ErrNotValid = errors.New("not valid")
	// ErrTransport is returned when the provider couldn't be reached or the
	// exchange broke before a response was read.
	ErrTransport = errors.New("transport failure")
	// ErrDecode is returned when the provider response is not a valid envelope.
	ErrDecode = errors.New("invalid response")
	// ErrRefused is returned when the provider answered but refused the operation,
	// the error text has the provider messages.
	ErrRefused = errors.New("refused by provider")
)

var errorMappings = []struct {
	internal error
	public   error
}{
	{model.ErrNotFound, ErrNotFound},
	{model.ErrAlreadyExists, ErrAlreadyExists},
	{model.ErrNotValid, ErrNotValid},
	{model.ErrTransport, ErrTransport},
	{model.ErrDecode, ErrDecode},
	{model.ErrRefused, ErrRefused},
}

// mapError makes internal errors match the public sentinels with errors.Is
// while keeping the original message.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.internal) {
			return &mappedError{original: err, sentinel: m.public}
		}
	}

	return err
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool { return target == e.sentinel }

func (e *mappedError) Unwrap() error { return e.original }
