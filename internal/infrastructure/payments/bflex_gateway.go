package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/infrastructure/logging"
	"bfinancial_sdk/internal/usecase/interfaces"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	pathPaymentCreate  = "/payment/create"
	pathPaymentGet     = "/payment/get"
	pathCheckoutCreate = "/checkout/create"

	// HeaderAuthorizationKey carries the "Bearer <auth>" credential.
	HeaderAuthorizationKey = "Authorization-key"

	defaultTimeout          = 15 * time.Second
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
	maxResponseBytes        = 1 << 20
)

var ErrMissingBaseURL = errors.New("missing bflex gateway base url")

// CallRecorder receives per-call gateway telemetry. *metrics.Metrics
// satisfies it.
type CallRecorder interface {
	RecordGatewayCall(operation, result string, duration time.Duration)
	SetCircuitState(state int)
}

type BFlexOptions struct {
	BaseURL string
	// Authorization is the full header value, "Bearer <auth>".
	Authorization    string
	Timeout          time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
	HTTPClient       *http.Client
	Logger           *zap.Logger
	Metrics          CallRecorder
}

// BFlexGateway talks to the BFlex Financial Solutions API.
type BFlexGateway struct {
	baseURL       string
	authorization string
	client        *http.Client
	breaker       *gobreaker.CircuitBreaker[[]byte]
	logger        *zap.Logger
	metrics       CallRecorder
}

var _ interfaces.IPaymentGateway = (*BFlexGateway)(nil)

func NewBFlexGateway(opts BFlexOptions) (*BFlexGateway, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = defaultFailureThreshold
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = defaultOpenTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	g := &BFlexGateway{
		baseURL:       baseURL,
		authorization: opts.Authorization,
		client:        opts.HTTPClient,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}

	threshold := opts.FailureThreshold
	g.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "bflex",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Only the transport trips the breaker; gateway answers, even
		// error answers, prove the gateway is up.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, entities.ErrTransport)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.logger.Warn("[payment][gateway] circuit state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if g.metrics != nil {
				g.metrics.SetCircuitState(int(to))
			}
		},
	})
	return g, nil
}

// Bearer formats a BFlex access code as the Authorization-key header value.
func Bearer(auth string) string {
	return "Bearer " + auth
}

func (g *BFlexGateway) CreatePayment(ctx context.Context, req entities.PaymentCreate) (entities.PaymentResponse, error) {
	if req.Method() == "" {
		return entities.PaymentResponse{}, entities.ErrEmptyPaymentCreate
	}
	body, err := g.call(ctx, "create_payment", http.MethodPost, pathPaymentCreate, req)
	if err != nil {
		return entities.PaymentResponse{}, err
	}
	resp, err := decodeCreateResponse(req.Method(), body)
	if err != nil {
		g.logger.Info("[payment][gateway] create rejected", zap.String("method", string(req.Method())), zap.Error(err))
		return entities.PaymentResponse{}, err
	}
	id, _ := resp.PaymentID()
	g.logger.Info("[payment][gateway] create success", zap.String("method", string(req.Method())), zap.String("payment_id", id))
	return resp, nil
}

func (g *BFlexGateway) CreateCheckout(ctx context.Context, product entities.Product) (entities.PaymentResponse, error) {
	body, err := g.call(ctx, "create_checkout", http.MethodPost, pathCheckoutCreate, product)
	if err != nil {
		return entities.PaymentResponse{}, err
	}
	return decodeCheckoutResponse(body)
}

type getPaymentRequest struct {
	PaymentID json.RawMessage `json:"payment_id"`
}

// GetPayment performs GET /payment/get. BFlex reads the identifier from a
// JSON body even on GET; numeric identifiers are sent back as numbers.
func (g *BFlexGateway) GetPayment(ctx context.Context, paymentID string) (entities.StatusReport, error) {
	idJSON, err := paymentIDJSON(paymentID)
	if err != nil {
		return entities.StatusReport{}, err
	}
	body, err := g.call(ctx, "get_payment", http.MethodGet, pathPaymentGet, getPaymentRequest{PaymentID: idJSON})
	if err != nil {
		return entities.StatusReport{}, err
	}
	return decodeStatusResponse(paymentID, body)
}

func paymentIDJSON(id string) (json.RawMessage, error) {
	var n json.Number
	if id != "" && json.Unmarshal([]byte(id), &n) == nil && n.String() == id {
		return json.RawMessage(id), nil
	}
	return json.Marshal(id)
}

// call sends one request through the circuit breaker and returns the raw
// body. Everything below the JSON layer comes back as *entities.TransportError.
func (g *BFlexGateway) call(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", op, err)
	}
	g.logger.Debug("[payment][gateway] request",
		zap.String("op", op),
		zap.String("path", path),
		zap.ByteString("body", logging.MaskSensitiveFields(reqBody)),
	)

	start := time.Now()
	body, err := g.breaker.Execute(func() ([]byte, error) {
		return g.roundTrip(ctx, op, method, path, reqBody)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &entities.TransportError{Op: op, Err: err}
	}
	g.record(op, err, time.Since(start))
	if err != nil {
		g.logger.Warn("[payment][gateway] request failed", zap.String("op", op), zap.Error(err))
		return nil, err
	}
	return body, nil
}

func (g *BFlexGateway) roundTrip(ctx context.Context, op, method, path string, reqBody []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &entities.TransportError{Op: op, Err: err}
	}
	req.Header.Set(HeaderAuthorizationKey, g.authorization)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		// Caller cancellation is not a gateway failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &entities.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &entities.TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode >= http.StatusInternalServerError && !json.Valid(body) {
		return nil, &entities.TransportError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	g.logger.Debug("[payment][gateway] response", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.Int("body_len", len(body)))
	return body, nil
}

func (g *BFlexGateway) record(op string, err error, d time.Duration) {
	if g.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = entities.ClassifyVerificationError(err)
	}
	g.metrics.RecordGatewayCall(op, result, d)
}
