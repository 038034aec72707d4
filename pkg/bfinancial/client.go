// Package bfinancial is the client library for the BFlex Financial Solutions
// payment gateway.
//
//	client, err := bfinancial.Login(auth, bfinancial.WithBaseURL(url))
//	resp, err := client.Payments.Create(ctx, bfinancial.Pix(bfinancial.PixCreate{...}))
//	result := <-client.Payments.Verify(ctx, resp, "approved")
package bfinancial

import (
	"context"
	"net/http"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/infrastructure/payments"
	"bfinancial_sdk/internal/usecase"

	"go.uber.org/zap"
)

type options struct {
	baseURL          string
	httpClient       *http.Client
	logger           *zap.Logger
	timeout          time.Duration
	failureThreshold uint32
	reconcile        usecase.ReconcileOptions
}

// Option configures a Client built by Login.
type Option func(*options)

// WithBaseURL sets the gateway root URL. It is required.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTimeout bounds a single gateway request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithFailureThreshold sets how many consecutive transport failures open the
// circuit breaker.
func WithFailureThreshold(n uint32) Option {
	return func(o *options) { o.failureThreshold = n }
}

// WithPollInterval sets the pause between two status fetches during Verify.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.reconcile.PollInterval = d }
}

// WithMaxAttempts caps the fetches Verify performs after the baseline. Zero
// leaves the loop bounded only by its context.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.reconcile.MaxAttempts = n }
}

func WithTransportRetries(n int) Option {
	return func(o *options) { o.reconcile.TransportRetries = n }
}

// Client is an authenticated session with the gateway.
type Client struct {
	Payments *Payments
}

// Login builds a Client that sends "Bearer <auth>" with every request.
// No request is made until a Payments method is called.
func Login(auth string, opts ...Option) (*Client, error) {
	o := options{reconcile: usecase.DefaultReconcileOptions()}
	for _, opt := range opts {
		opt(&o)
	}

	gateway, err := payments.NewBFlexGateway(payments.BFlexOptions{
		BaseURL:          o.baseURL,
		Authorization:    payments.Bearer(auth),
		Timeout:          o.timeout,
		FailureThreshold: o.failureThreshold,
		HTTPClient:       o.httpClient,
		Logger:           o.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		Payments: &Payments{
			gateway:    gateway,
			reconciler: usecase.NewReconciliationUseCase(gateway, nil, o.logger, o.reconcile),
		},
	}, nil
}

// Payments groups the payment operations of a Client.
type Payments struct {
	gateway    *payments.BFlexGateway
	reconciler *usecase.ReconciliationUseCase
}

// Create starts a Pix or Card payment.
func (p *Payments) Create(ctx context.Context, req PaymentCreate) (PaymentResponse, error) {
	return p.gateway.CreatePayment(ctx, req)
}

// Checkout creates a hosted checkout page for product. The response carries
// only the link and cannot be verified.
func (p *Payments) Checkout(ctx context.Context, product Product) (PaymentResponse, error) {
	return p.gateway.CreateCheckout(ctx, product)
}

// Status fetches the current state of a payment once.
func (p *Payments) Status(ctx context.Context, paymentID string) (StatusReport, error) {
	report, err := p.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return StatusReport{}, err
	}
	if report.HasError {
		return report, &entities.GatewayError{Message: report.GatewayError}
	}
	if !report.HasStatus {
		return report, entities.ErrPaymentNotFound
	}
	return report, nil
}

// Verify polls the gateway in the background until the payment reaches
// target. The channel yields exactly one result and is then closed.
func (p *Payments) Verify(ctx context.Context, resp PaymentResponse, target string) <-chan Verification {
	return p.reconciler.VerifyAsync(ctx, resp, target)
}

// VerifyWait is Verify on the calling goroutine.
func (p *Payments) VerifyWait(ctx context.Context, resp PaymentResponse, target string) Verification {
	return p.reconciler.Verify(ctx, resp, target)
}
