package interfaces

import (
	"context"

	"bfinancial_sdk/internal/domain/entities"
)

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_interface.go -package=mock_interfaces

// IPaymentGateway abstracts the remote payment API (BFlex, or Mercado Pago in
// direct mode).
//
// Errors follow the entities taxonomy: *entities.GatewayError when the gateway
// reported one, entities.ErrMalformedResponse for unreadable bodies and
// entities.ErrTransport for everything below the JSON layer.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, req entities.PaymentCreate) (entities.PaymentResponse, error)
	CreateCheckout(ctx context.Context, product entities.Product) (entities.PaymentResponse, error)
	GetPayment(ctx context.Context, paymentID string) (entities.StatusReport, error)
}
