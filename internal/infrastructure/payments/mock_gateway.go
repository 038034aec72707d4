package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockGateway is an in-memory gateway used when gateway.mock is on. Every
// payment is approved immediately.
type MockGateway struct {
	mu       sync.Mutex
	payments map[string]entities.PaymentResponse
	logger   *zap.Logger
	newID    func() string
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway(logger *zap.Logger) *MockGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("[payment][gateway] mock mode enabled")
	return &MockGateway{
		payments: make(map[string]entities.PaymentResponse),
		logger:   logger,
		newID:    uuid.NewString,
	}
}

func (g *MockGateway) CreatePayment(_ context.Context, req entities.PaymentCreate) (entities.PaymentResponse, error) {
	id := g.newID()
	approved := entities.NormalizeStatus(entities.RawStatusApproved, "")

	var resp entities.PaymentResponse
	switch req.Method() {
	case entities.PaymentMethodPix:
		resp = entities.NewInstantTransferResponse(entities.InstantTransfer{
			Status:     approved,
			PaymentID:  id,
			QRCodeText: "00020126mock" + id,
		})
	case entities.PaymentMethodCard:
		resp = entities.NewCardChargeResponse(entities.CardCharge{
			Status:      approved,
			PaymentID:   id,
			TotalAmount: req.Amount(),
		})
	default:
		return entities.PaymentResponse{}, entities.ErrEmptyPaymentCreate
	}

	g.mu.Lock()
	g.payments[id] = resp
	g.mu.Unlock()

	g.logger.Info("[payment][gateway] mock create success", zap.String("payment_id", id), zap.String("status", entities.RawStatusApproved))
	return resp, nil
}

func (g *MockGateway) CreateCheckout(_ context.Context, product entities.Product) (entities.PaymentResponse, error) {
	if product.IsZero() {
		return entities.PaymentResponse{}, &entities.GatewayError{Message: "product has no variant"}
	}
	return entities.NewCheckoutLinkResponse("https://checkout.mock/" + g.newID()), nil
}

func (g *MockGateway) GetPayment(_ context.Context, paymentID string) (entities.StatusReport, error) {
	g.mu.Lock()
	resp, ok := g.payments[paymentID]
	g.mu.Unlock()

	if !ok {
		return entities.StatusReport{PaymentID: paymentID, Raw: json.RawMessage(`{"data":{}}`)}, nil
	}
	status, _ := resp.Status()
	raw := fmt.Sprintf(`{"data":{"status":%q,"method":%q}}`, status.String(), resp.Method())
	return entities.StatusReport{
		PaymentID: paymentID,
		RawStatus: status.String(),
		HasStatus: true,
		Cause:     status.Reason,
		Payment:   resp,
		Raw:       json.RawMessage(raw),
	}, nil
}

// SetStatus moves a stored payment to raw, as the real gateway would after a
// payer action.
func (g *MockGateway) SetStatus(paymentID, raw, cause string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	resp, ok := g.payments[paymentID]
	if !ok {
		return false
	}
	g.payments[paymentID] = resp.WithStatus(entities.NormalizeStatus(raw, cause))
	return true
}
