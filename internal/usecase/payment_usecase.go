package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrPaymentRecordNotFound = errors.New("payment record not found")
	ErrInvalidPaymentID      = errors.New("invalid payment_id")
	ErrInvalidPaymentRequest = errors.New("invalid payment request")
	ErrInvalidProduct        = errors.New("invalid product")
	ErrQRCodeUnavailable     = errors.New("qr code unavailable for this payment")
)

// IPaymentUseCase is what the relay exposes over HTTP on top of the gateway:
//   - create a Pix/Card payment and keep a record of it
//   - create a checkout link (not persisted, it has no identity)
//   - look up the live status, served from cache when fresh
//   - render the Pix QR code of a stored payment
type IPaymentUseCase interface {
	Create(ctx context.Context, req entities.PaymentCreate) (entities.PaymentResponse, error)
	CreateCheckout(ctx context.Context, product entities.Product) (entities.PaymentResponse, error)
	Lookup(ctx context.Context, paymentID string) (entities.StatusReport, error)
	GetRecord(ctx context.Context, paymentID string) (entities.PaymentRecord, error)
	QRCode(ctx context.Context, paymentID string) ([]byte, error)
}

type PaymentUseCase struct {
	repo     interfaces.IPaymentRecordRepository
	gateway  interfaces.IPaymentGateway
	cache    interfaces.IStatusCache
	renderer interfaces.IQRCodeRenderer
	logger   *zap.Logger
	now      func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

// NewPaymentUseCase wires the payment flows. cache and renderer are optional.
func NewPaymentUseCase(repo interfaces.IPaymentRecordRepository, gateway interfaces.IPaymentGateway, cache interfaces.IStatusCache, renderer interfaces.IQRCodeRenderer, logger *zap.Logger) *PaymentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentUseCase{
		repo:     repo,
		gateway:  gateway,
		cache:    cache,
		renderer: renderer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) Create(ctx context.Context, req entities.PaymentCreate) (entities.PaymentResponse, error) {
	u.logger.Info("[payment][usecase] create start", zap.String("method", string(req.Method())), zap.Float64("amount", req.Amount()))
	if err := validatePaymentCreate(req); err != nil {
		u.logger.Info("[payment][usecase] invalid request", zap.Error(err))
		return entities.PaymentResponse{}, err
	}
	if u.gateway == nil {
		return entities.PaymentResponse{}, errors.New("payment gateway not configured")
	}
	if u.repo == nil {
		return entities.PaymentResponse{}, errors.New("payment repository not configured")
	}

	resp, err := u.gateway.CreatePayment(ctx, req)
	if err != nil {
		u.logger.Warn("[payment][usecase] payment gateway failed", zap.String("method", string(req.Method())), zap.Error(err))
		return entities.PaymentResponse{}, err
	}

	rec, err := entities.NewPaymentRecord(req, resp, u.now())
	if err != nil {
		u.logger.Error("[payment][usecase] gateway answered without payment identity", zap.Error(err))
		return entities.PaymentResponse{}, err
	}
	if _, err := u.repo.Create(ctx, rec); err != nil {
		u.logger.Error("[payment][usecase] payment repository create failed", zap.String("payment_id", rec.PaymentID), zap.Error(err))
		return entities.PaymentResponse{}, err
	}

	u.logger.Info("[payment][usecase] create success",
		zap.String("payment_id", rec.PaymentID),
		zap.String("method", string(rec.Method)),
		zap.String("status", rec.Status),
	)
	return resp, nil
}

func (u *PaymentUseCase) CreateCheckout(ctx context.Context, product entities.Product) (entities.PaymentResponse, error) {
	if err := validateProduct(product); err != nil {
		return entities.PaymentResponse{}, err
	}
	if u.gateway == nil {
		return entities.PaymentResponse{}, errors.New("payment gateway not configured")
	}

	resp, err := u.gateway.CreateCheckout(ctx, product)
	if err != nil {
		u.logger.Warn("[checkout][usecase] payment gateway failed", zap.Error(err))
		return entities.PaymentResponse{}, err
	}
	url, _ := resp.CheckoutURL()
	u.logger.Info("[checkout][usecase] checkout created", zap.String("url", url))
	return resp, nil
}

// Lookup fetches the current status of a payment. A report without status is
// ErrPaymentNotFound and a report carrying a gateway error is *GatewayError;
// in both cases the report is still returned.
func (u *PaymentUseCase) Lookup(ctx context.Context, paymentID string) (entities.StatusReport, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.StatusReport{}, ErrInvalidPaymentID
	}
	if u.gateway == nil {
		return entities.StatusReport{}, errors.New("payment gateway not configured")
	}

	if u.cache != nil {
		cached, ok, err := u.cache.Get(ctx, paymentID)
		if err != nil {
			u.logger.Warn("[payment][usecase] status cache read failed", zap.String("payment_id", paymentID), zap.Error(err))
		} else if ok {
			u.logger.Debug("[payment][usecase] status cache hit", zap.String("payment_id", paymentID))
			return cached, nil
		}
	}

	report, err := u.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		u.logger.Warn("[payment][usecase] status lookup failed", zap.String("payment_id", paymentID), zap.Error(err))
		return entities.StatusReport{}, err
	}
	if report.HasError {
		return report, &entities.GatewayError{Message: report.GatewayError}
	}
	if !report.HasStatus {
		return report, entities.ErrPaymentNotFound
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, paymentID, report); err != nil {
			u.logger.Warn("[payment][usecase] status cache write failed", zap.String("payment_id", paymentID), zap.Error(err))
		}
	}
	u.refreshRecord(ctx, paymentID, report)
	return report, nil
}

// refreshRecord keeps the stored status in step with the gateway. Failures are
// logged only; the lookup already succeeded.
func (u *PaymentUseCase) refreshRecord(ctx context.Context, paymentID string, report entities.StatusReport) {
	if u.repo == nil {
		return
	}
	rec, err := u.repo.GetByID(ctx, paymentID)
	if err != nil || rec.PaymentID == "" {
		return
	}
	status := report.Status()
	if rec.Status == status.String() && rec.Cause == status.Reason {
		return
	}
	updated := rec.WithResponse(rec.Response().WithStatus(status), u.now())
	if _, err := u.repo.Update(ctx, updated); err != nil {
		u.logger.Warn("[payment][usecase] payment record refresh failed", zap.String("payment_id", paymentID), zap.Error(err))
	}
}

func (u *PaymentUseCase) GetRecord(ctx context.Context, paymentID string) (entities.PaymentRecord, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.PaymentRecord{}, ErrInvalidPaymentID
	}
	if u.repo == nil {
		return entities.PaymentRecord{}, errors.New("payment repository not configured")
	}

	rec, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if rec.PaymentID == "" {
		return entities.PaymentRecord{}, ErrPaymentRecordNotFound
	}
	return rec, nil
}

// QRCode returns the PNG of a stored Pix payment. The image sent by the
// gateway wins; the copy-paste literal is rendered when it is missing.
func (u *PaymentUseCase) QRCode(ctx context.Context, paymentID string) ([]byte, error) {
	rec, err := u.GetRecord(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	pix, ok := rec.Response().InstantTransfer()
	if !ok {
		return nil, ErrQRCodeUnavailable
	}

	if pix.QRCodeImage != "" {
		png, err := decodeQRCodeImage(pix.QRCodeImage)
		if err == nil {
			return png, nil
		}
		u.logger.Warn("[payment][usecase] stored qr image not decodable", zap.String("payment_id", rec.PaymentID), zap.Error(err))
	}
	if pix.QRCodeText == "" || u.renderer == nil {
		return nil, ErrQRCodeUnavailable
	}
	return u.renderer.Render(pix.QRCodeText)
}

func decodeQRCodeImage(image string) ([]byte, error) {
	if i := strings.Index(image, "base64,"); i >= 0 && strings.HasPrefix(image, "data:") {
		image = image[i+len("base64,"):]
	}
	png, err := base64.StdEncoding.DecodeString(strings.TrimSpace(image))
	if err != nil {
		return nil, err
	}
	if len(png) == 0 {
		return nil, ErrQRCodeUnavailable
	}
	return png, nil
}

func validatePaymentCreate(req entities.PaymentCreate) error {
	switch req.Method() {
	case entities.PaymentMethodPix:
		pix, _ := req.Pix()
		if pix.Amount <= 0 || strings.TrimSpace(pix.PayerEmail) == "" {
			return ErrInvalidPaymentRequest
		}
	case entities.PaymentMethodCard:
		card, _ := req.Card()
		if card.Amount <= 0 || strings.TrimSpace(card.PayerEmail) == "" {
			return ErrInvalidPaymentRequest
		}
		if strings.TrimSpace(card.Number) == "" || strings.TrimSpace(card.CVV) == "" {
			return ErrInvalidPaymentRequest
		}
	default:
		return ErrInvalidPaymentRequest
	}
	return nil
}

func validateProduct(p entities.Product) error {
	if p.IsZero() {
		return ErrInvalidProduct
	}
	if custom, ok := p.Custom(); ok {
		if custom.Price <= 0 || strings.TrimSpace(custom.Name) == "" {
			return ErrInvalidProduct
		}
	}
	if cataloged, ok := p.Cataloged(); ok && strings.TrimSpace(cataloged.ProductID) == "" {
		return ErrInvalidProduct
	}
	return nil
}
