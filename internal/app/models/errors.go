package models

import (
	"errors"
	"fmt"
)

// Domain specific errors shared by the weather, llmchat and trips packages.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrBadRequest = errors.New("bad request")
	ErrValidation = errors.New("validation failed")
	ErrProvider   = errors.New("upstream provider error")
	ErrParse      = errors.New("could not parse model response")
)

// ProviderError reports a failed or non-successful call to an external
// provider. It matches ErrProvider with errors.Is.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.Status)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: request failed with status %d", e.Provider, e.Status)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }
