package entities

import (
	"errors"
	"fmt"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrUnsupportedVariant = errors.New("payment response has no payment identity")
	ErrMalformedResponse  = errors.New("malformed gateway response")
	ErrTransport          = errors.New("gateway transport failure")
	ErrAttemptsExhausted  = errors.New("verification attempts exhausted")
)

// GatewayError is an error the gateway reported explicitly in data.error.
// Error returns the gateway text verbatim.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

// StatusMismatchError is returned when a payment moved away from its baseline
// status to something other than the awaited one.
type StatusMismatchError struct {
	Observed string
	Expected string
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("Received status '%s', but expected '%s'", e.Observed, e.Expected)
}

// MalformedResponseError reports a gateway body that lacks a required field or
// carries one with the wrong type.
type MalformedResponseError struct {
	Field string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed gateway response: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed gateway response: %s", e.Field)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// TransportError wraps failures below the JSON layer: network errors, 5xx
// responses without a readable body and an open circuit breaker.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func NewMalformed(field string, err error) error {
	return &MalformedResponseError{Field: field, Err: err}
}
