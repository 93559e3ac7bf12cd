package ipo

import "fmt"

// FetchExhaustedError is returned once every fetch attempt has failed.
type FetchExhaustedError struct {
	Attempts int
	Err      error
}

func (e *FetchExhaustedError) Error() string {
	return fmt.Sprintf("failed fetching IPO list after %d attempts: %v", e.Attempts, e.Err)
}

func (e *FetchExhaustedError) Unwrap() error { return e.Err }

// ParseError means the provider answered but the body is not the expected listing.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed parsing IPO list: %s: %v", e.Reason, e.Err)
	}
	return "failed parsing IPO list: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusError is a non-2xx answer from the provider.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "HTTP " + e.Status
}
