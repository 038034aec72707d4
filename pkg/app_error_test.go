package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamodb unavailable")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected wrapped cause")
	}
	if appErr.Error() != "An internal error occurred: dynamodb unavailable" {
		t.Fatalf("unexpected message: %s", appErr.Error())
	}
	body := appErr.ToHTTPError()
	if body.Code != "INTERNAL_ERROR" || body.Message != "An internal error occurred" {
		t.Fatalf("unexpected body: %+v", body)
	}

	simple := NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	if simple.HTTPStatus != http.StatusNotFound || simple.Error() != "Payment not found" {
		t.Fatalf("unexpected simple error: %+v", simple)
	}
}
