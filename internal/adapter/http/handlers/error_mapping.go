package handlers

import (
	"errors"
	"net/http"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase"
	"bfinancial_sdk/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

func mapPaymentError(err error) *pkg.AppError {
	var gwErr *entities.GatewayError
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentRequest),
		errors.Is(err, usecase.ErrInvalidProduct),
		errors.Is(err, usecase.ErrInvalidTargetStatus),
		errors.Is(err, usecase.ErrInvalidVerificationID),
		errors.Is(err, entities.ErrEmptyPaymentCreate):
		return errInvalidRequest
	case errors.As(err, &gwErr):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", gwErr.Message, err, http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentRecordNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_RECORD_NOT_FOUND", "Payment record not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrVerificationNotFound):
		return pkg.NewDomainErrorSimple("VERIFICATION_NOT_FOUND", "Verification not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQRCodeUnavailable), errors.Is(err, entities.ErrUnsupportedVariant):
		return pkg.NewDomainErrorSimple("QR_CODE_UNAVAILABLE", "QR code unavailable for this payment", http.StatusConflict)
	case errors.Is(err, entities.ErrMalformedResponse):
		return pkg.NewDomainError("PAYMENT_PROVIDER_INVALID_RESPONSE", "Payment provider returned an invalid response", err, http.StatusBadGateway)
	case errors.Is(err, entities.ErrTransport):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrVerificationClosed):
		return pkg.NewDomainErrorSimple("SERVICE_SHUTTING_DOWN", "Service is shutting down", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
