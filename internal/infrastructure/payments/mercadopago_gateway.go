package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const mercadoPagoCurrency = "BRL"

type mpPaymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type mpPreferenceAPI interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoGateway serves the payment operations straight from Mercado Pago.
// Only Pix and custom checkout products are supported: card charges need a
// client-side card token the relay never sees.
type MercadoPagoGateway struct {
	payments    mpPaymentAPI
	preferences mpPreferenceAPI
	logger      *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, logger *zap.Logger) (*MercadoPagoGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if accessToken == "" {
		logger.Error("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		logger.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments:    payment.NewClient(cfg),
		preferences: preference.NewClient(cfg),
		logger:      logger,
	}, nil
}

// mpPayment is the subset of the Mercado Pago payment resource the relay reads.
type mpPayment struct {
	ID                 int64   `json:"id"`
	Status             string  `json:"status"`
	StatusDetail       string  `json:"status_detail"`
	PaymentTypeID      string  `json:"payment_type_id"`
	PaymentMethodID    string  `json:"payment_method_id"`
	TransactionAmount  float64 `json:"transaction_amount"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
	TransactionDetails struct {
		TotalPaidAmount float64 `json:"total_paid_amount"`
	} `json:"transaction_details"`
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, req entities.PaymentCreate) (entities.PaymentResponse, error) {
	if g == nil || g.payments == nil {
		return entities.PaymentResponse{}, ErrMercadoPagoGatewayNotConfigured
	}
	pix, ok := req.Pix()
	if !ok {
		if req.Method() == "" {
			return entities.PaymentResponse{}, entities.ErrEmptyPaymentCreate
		}
		return entities.PaymentResponse{}, &entities.GatewayError{Message: fmt.Sprintf("payment method %s is not supported by the mercadopago provider", req.Method())}
	}
	g.logger.Info("[payment][gateway] create start", zap.String("method", string(req.Method())))

	var mpReq payment.Request
	if err := remarshal(map[string]any{
		"transaction_amount": pix.Amount,
		"payment_method_id":  "pix",
		"description":        "bfinancial pix payment",
		"payer":              map[string]any{"email": pix.PayerEmail},
	}, &mpReq); err != nil {
		return entities.PaymentResponse{}, fmt.Errorf("build mercadopago request: %w", err)
	}

	resp, err := g.payments.Create(ctx, mpReq)
	if err != nil {
		g.logger.Warn("[payment][gateway] sdk create failed", zap.Error(err))
		return entities.PaymentResponse{}, classifyMercadoPagoError("create_payment", err)
	}

	var p mpPayment
	if err := remarshal(resp, &p); err != nil {
		return entities.PaymentResponse{}, entities.NewMalformed("payment", err)
	}
	out := p.toResponse(entities.PaymentMethodPix)
	g.logger.Info("[payment][gateway] create success", zap.Int64("payment_id", p.ID), zap.String("status", p.Status))
	return out, nil
}

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, product entities.Product) (entities.PaymentResponse, error) {
	if g == nil || g.preferences == nil {
		return entities.PaymentResponse{}, ErrMercadoPagoGatewayNotConfigured
	}
	custom, ok := product.Custom()
	if !ok {
		return entities.PaymentResponse{}, &entities.GatewayError{Message: "cataloged products are not supported by the mercadopago provider"}
	}

	var prefReq preference.Request
	if err := remarshal(map[string]any{
		"items": []map[string]any{{
			"title":       custom.Name,
			"description": custom.Description,
			"picture_url": custom.Thumbnail,
			"quantity":    1,
			"unit_price":  custom.Price,
			"currency_id": mercadoPagoCurrency,
		}},
	}, &prefReq); err != nil {
		return entities.PaymentResponse{}, fmt.Errorf("build mercadopago preference: %w", err)
	}

	resp, err := g.preferences.Create(ctx, prefReq)
	if err != nil {
		g.logger.Warn("[payment][gateway] sdk preference create failed", zap.Error(err))
		return entities.PaymentResponse{}, classifyMercadoPagoError("create_checkout", err)
	}

	var pref struct {
		InitPoint string `json:"init_point"`
	}
	if err := remarshal(resp, &pref); err != nil {
		return entities.PaymentResponse{}, entities.NewMalformed("preference", err)
	}
	if pref.InitPoint == "" {
		return entities.PaymentResponse{}, entities.NewMalformed("init_point", errMissing)
	}
	return entities.NewCheckoutLinkResponse(pref.InitPoint), nil
}

// GetPayment maps a Mercado Pago lookup onto a StatusReport. Unknown ids
// (including non-numeric ones) come back without a status.
func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (entities.StatusReport, error) {
	if g == nil || g.payments == nil {
		return entities.StatusReport{}, ErrMercadoPagoGatewayNotConfigured
	}
	id, err := strconv.Atoi(strings.TrimSpace(paymentID))
	if err != nil {
		return entities.StatusReport{PaymentID: paymentID}, nil
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		if isGatewayNotFound(err) {
			return entities.StatusReport{PaymentID: paymentID}, nil
		}
		g.logger.Warn("[payment][gateway] sdk get failed", zap.String("payment_id", paymentID), zap.Error(err))
		return entities.StatusReport{}, classifyMercadoPagoError("get_payment", err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return entities.StatusReport{}, entities.NewMalformed("payment", err)
	}
	var p mpPayment
	if err := json.Unmarshal(raw, &p); err != nil {
		return entities.StatusReport{}, entities.NewMalformed("payment", err)
	}

	status := mercadoPagoStatus(p.Status)
	report := entities.StatusReport{
		PaymentID: paymentID,
		RawStatus: status,
		HasStatus: p.Status != "",
		Raw:       raw,
	}
	if status == entities.RawStatusRejected {
		report.Cause = p.StatusDetail
	}
	if p.PaymentTypeID == "credit_card" || p.PaymentTypeID == "debit_card" {
		report.Payment = p.toResponse(entities.PaymentMethodCard)
	} else {
		report.Payment = p.toResponse(entities.PaymentMethodPix)
	}
	return report, nil
}

func (p mpPayment) toResponse(method entities.PaymentMethod) entities.PaymentResponse {
	id := strconv.FormatInt(p.ID, 10)
	raw := mercadoPagoStatus(p.Status)
	cause := ""
	if raw == entities.RawStatusRejected {
		cause = p.StatusDetail
	}
	status := entities.NormalizeStatus(raw, cause)

	if method == entities.PaymentMethodCard {
		total := p.TransactionDetails.TotalPaidAmount
		if total == 0 {
			total = p.TransactionAmount
		}
		return entities.NewCardChargeResponse(entities.CardCharge{
			Status:      status,
			PaymentID:   id,
			TotalAmount: total,
			Increase:    total - p.TransactionAmount,
		})
	}
	return entities.NewInstantTransferResponse(entities.InstantTransfer{
		Status:      status,
		PaymentID:   id,
		QRCodeImage: p.PointOfInteraction.TransactionData.QRCodeBase64,
		QRCodeText:  p.PointOfInteraction.TransactionData.QRCode,
	})
}

// mercadoPagoStatus folds the Mercado Pago vocabulary into the gateway one.
func mercadoPagoStatus(s string) string {
	switch s {
	case "authorized", "in_process", "in_mediation":
		return entities.RawStatusPending
	case "charged_back":
		return entities.RawStatusRefunded
	default:
		return s
	}
}

func classifyMercadoPagoError(op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &entities.TransportError{Op: op, Err: err}
	case isGatewayBadRequest(err), isGatewayUnauthorized(err), isGatewayInvalidUsers(err), isGatewayCustomerNotFound(err):
		return &entities.GatewayError{Message: err.Error()}
	default:
		return &entities.TransportError{Op: op, Err: err}
	}
}

func remarshal(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func isGatewayNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"not_found\"") || strings.Contains(msg, "\"status\":404")
}
