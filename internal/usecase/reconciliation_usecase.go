package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const (
	DefaultPollInterval     = 5 * time.Second
	DefaultTransportRetries = 3

	paymentNotFoundMessage = "Payment not found"
)

var ErrInvalidTargetStatus = errors.New("invalid target status")

// ReconcileOptions tunes the polling loop.
//
//   - PollInterval: pause between two consecutive fetches.
//   - MaxAttempts: fetches allowed after the baseline; 0 means no cap, the
//     caller's context is then the only bound.
//   - TransportRetries: consecutive transport failures tolerated per fetch.
type ReconcileOptions struct {
	PollInterval     time.Duration
	MaxAttempts      int
	TransportRetries int
}

func DefaultReconcileOptions() ReconcileOptions {
	return ReconcileOptions{
		PollInterval:     DefaultPollInterval,
		TransportRetries: DefaultTransportRetries,
	}
}

// IReconciliationUseCase polls the gateway until a payment reaches the awaited
// status.
type IReconciliationUseCase interface {
	Verify(ctx context.Context, resp entities.PaymentResponse, target string) entities.Verification
	VerifyAsync(ctx context.Context, resp entities.PaymentResponse, target string) <-chan entities.Verification
}

type ReconciliationUseCase struct {
	gateway interfaces.IPaymentGateway
	metrics interfaces.IVerificationMetrics
	logger  *zap.Logger
	opts    ReconcileOptions
	sleep   func(ctx context.Context, d time.Duration) error
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

func NewReconciliationUseCase(gateway interfaces.IPaymentGateway, metrics interfaces.IVerificationMetrics, logger *zap.Logger, opts ReconcileOptions) *ReconciliationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopVerificationMetrics{}
	}
	if opts.PollInterval < 0 {
		opts.PollInterval = 0
	}
	if opts.TransportRetries < 0 {
		opts.TransportRetries = 0
	}
	return &ReconciliationUseCase{
		gateway: gateway,
		metrics: metrics,
		logger:  logger,
		opts:    opts,
		sleep:   sleepContext,
	}
}

// Verify runs the loop on the calling goroutine:
//
//	Init     -> resolve the payment id (checkout links fail here, no fetch)
//	Baseline -> first fetch; no status field means the payment does not exist
//	Polling  -> wait, fetch; target reached is success, any other change is a
//	            mismatch, an unchanged status keeps polling
//
// Every failure is returned as a failed Verification, never as a panic.
func (u *ReconciliationUseCase) Verify(ctx context.Context, resp entities.PaymentResponse, target string) entities.Verification {
	started := time.Now()
	u.metrics.VerificationStarted()

	v := u.run(ctx, resp, target)

	u.metrics.VerificationFinished(v, time.Since(started))
	if v.Succeeded() {
		u.logger.Info("[verify][usecase] success", zap.String("target", target), zap.Duration("elapsed", time.Since(started)))
	} else {
		u.logger.Info("[verify][usecase] fail",
			zap.String("target", target),
			zap.String("kind", v.Kind()),
			zap.String("message", v.Message()),
		)
	}
	return v
}

// VerifyAsync runs Verify on its own goroutine. The channel is buffered so a
// caller that stops listening does not block the loop; cancel ctx to stop it.
func (u *ReconciliationUseCase) VerifyAsync(ctx context.Context, resp entities.PaymentResponse, target string) <-chan entities.Verification {
	out := make(chan entities.Verification, 1)
	go func() {
		defer close(out)
		out <- u.Verify(ctx, resp, target)
	}()
	return out
}

func (u *ReconciliationUseCase) run(ctx context.Context, resp entities.PaymentResponse, target string) entities.Verification {
	if target == "" {
		return entities.VerificationFail("", ErrInvalidTargetStatus)
	}

	paymentID, err := resp.PaymentID()
	if err != nil {
		u.logger.Warn("[verify][usecase] response without payment identity", zap.String("method", string(resp.Method())))
		return entities.VerificationFail("", err)
	}
	log := u.logger.With(zap.String("payment_id", paymentID), zap.String("target", target))

	baseline, err := u.fetch(ctx, paymentID)
	if err != nil {
		return fetchFailure(err)
	}
	if baseline.HasError {
		return gatewayFailure(baseline.GatewayError)
	}
	if !baseline.HasStatus {
		return entities.VerificationFail(paymentNotFoundMessage, entities.ErrPaymentNotFound)
	}
	last := baseline.RawStatus
	log.Debug("[verify][usecase] baseline fetched", zap.String("status", last))
	if last == target {
		return entities.VerificationSuccess()
	}

	for attempt := 1; ; attempt++ {
		if u.opts.MaxAttempts > 0 && attempt > u.opts.MaxAttempts {
			msg := fmt.Sprintf("Status remained '%s' after %d attempts, expected '%s'", last, u.opts.MaxAttempts, target)
			return entities.VerificationFail(msg, entities.ErrAttemptsExhausted)
		}
		if err := u.sleep(ctx, u.opts.PollInterval); err != nil {
			return fetchFailure(err)
		}

		report, err := u.fetch(ctx, paymentID)
		if err != nil {
			return fetchFailure(err)
		}
		if report.HasError {
			return gatewayFailure(report.GatewayError)
		}
		if !report.HasStatus {
			return entities.VerificationFail(paymentNotFoundMessage, entities.ErrPaymentNotFound)
		}

		current := report.RawStatus
		log.Debug("[verify][usecase] polled", zap.Int("attempt", attempt), zap.String("status", current))
		if current == target {
			return entities.VerificationSuccess()
		}
		if current != last {
			mismatch := &entities.StatusMismatchError{Observed: current, Expected: target}
			return entities.VerificationFail(mismatch.Error(), mismatch)
		}
	}
}

// fetch performs one status lookup, retrying transport failures up to
// TransportRetries times with the poll interval in between.
func (u *ReconciliationUseCase) fetch(ctx context.Context, paymentID string) (entities.StatusReport, error) {
	var lastErr error
	for try := 0; try <= u.opts.TransportRetries; try++ {
		if try > 0 {
			if err := u.sleep(ctx, u.opts.PollInterval); err != nil {
				return entities.StatusReport{}, err
			}
		}
		if err := ctx.Err(); err != nil {
			return entities.StatusReport{}, err
		}

		report, err := u.gateway.GetPayment(ctx, paymentID)
		if err == nil {
			u.metrics.FetchObserved("ok")
			return report, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			u.metrics.FetchObserved("cancelled")
			return entities.StatusReport{}, ctx.Err()
		}
		if !errors.Is(err, entities.ErrTransport) {
			u.metrics.FetchObserved(entities.ClassifyVerificationError(err))
			return entities.StatusReport{}, err
		}
		u.metrics.FetchObserved(entities.VerificationKindTransportError)
		u.logger.Warn("[verify][usecase] transport failure",
			zap.String("payment_id", paymentID),
			zap.Int("try", try+1),
			zap.Error(err),
		)
	}
	return entities.StatusReport{}, lastErr
}

func fetchFailure(err error) entities.Verification {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return entities.VerificationFail("verification cancelled: "+err.Error(), err)
	}
	return entities.VerificationFail("", err)
}

func gatewayFailure(message string) entities.Verification {
	return entities.VerificationFail(message, &entities.GatewayError{Message: message})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type noopVerificationMetrics struct{}

func (noopVerificationMetrics) FetchObserved(string)                                      {}
func (noopVerificationMetrics) VerificationStarted()                                      {}
func (noopVerificationMetrics) VerificationFinished(entities.Verification, time.Duration) {}
