package entities

import (
	"context"
	"errors"
)

// Failure kinds used when a verification outcome is persisted or rendered.
const (
	VerificationKindNone               = ""
	VerificationKindNotFound           = "not_found"
	VerificationKindGatewayError       = "gateway_error"
	VerificationKindStatusMismatch     = "status_mismatch"
	VerificationKindMalformedResponse  = "malformed_response"
	VerificationKindUnsupportedVariant = "unsupported_variant"
	VerificationKindTransportError     = "transport_error"
	VerificationKindAttemptsExhausted  = "attempts_exhausted"
	VerificationKindCancelled          = "cancelled"
	VerificationKindInternal           = "internal"
)

// Verification is the outcome of a reconciliation run: Success, or Fail with a
// human-readable message. Err classifies the failure and is nil on success.
type Verification struct {
	ok      bool
	message string
	err     error
}

func VerificationSuccess() Verification {
	return Verification{ok: true}
}

// VerificationFail builds a failed outcome. An empty message falls back to
// err's text.
func VerificationFail(message string, err error) Verification {
	if message == "" && err != nil {
		message = err.Error()
	}
	return Verification{message: message, err: err}
}

func (v Verification) Succeeded() bool {
	return v.ok
}

func (v Verification) Message() string {
	return v.message
}

func (v Verification) Err() error {
	return v.err
}

// Kind classifies a failed outcome. It is empty on success.
func (v Verification) Kind() string {
	if v.ok {
		return VerificationKindNone
	}
	return ClassifyVerificationError(v.err)
}

func ClassifyVerificationError(err error) string {
	var (
		gatewayErr  *GatewayError
		mismatchErr *StatusMismatchError
	)
	switch {
	case err == nil:
		return VerificationKindInternal
	case errors.Is(err, ErrPaymentNotFound):
		return VerificationKindNotFound
	case errors.As(err, &gatewayErr):
		return VerificationKindGatewayError
	case errors.As(err, &mismatchErr):
		return VerificationKindStatusMismatch
	case errors.Is(err, ErrMalformedResponse):
		return VerificationKindMalformedResponse
	case errors.Is(err, ErrUnsupportedVariant):
		return VerificationKindUnsupportedVariant
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return VerificationKindCancelled
	case errors.Is(err, ErrTransport):
		return VerificationKindTransportError
	case errors.Is(err, ErrAttemptsExhausted):
		return VerificationKindAttemptsExhausted
	default:
		return VerificationKindInternal
	}
}
