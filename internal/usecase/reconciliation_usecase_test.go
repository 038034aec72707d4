package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	mock_interfaces "bfinancial_sdk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
	err   error
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waits = append(s.waits, d)
	if s.err != nil {
		return s.err
	}
	return ctx.Err()
}

func (s *sleepRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waits)
}

func newTestReconciler(gateway *mock_interfaces.MockIPaymentGateway, opts ReconcileOptions) (*ReconciliationUseCase, *sleepRecorder) {
	uc := NewReconciliationUseCase(gateway, nil, nil, opts)
	rec := &sleepRecorder{}
	uc.sleep = rec.sleep
	return uc, rec
}

func pixResponse(id string) entities.PaymentResponse {
	return entities.NewInstantTransferResponse(entities.InstantTransfer{
		Status:     entities.NormalizeStatus(entities.RawStatusPending, ""),
		PaymentID:  id,
		QRCodeText: "000201010212",
	})
}

func statusReport(id, status string) entities.StatusReport {
	return entities.StatusReport{PaymentID: id, RawStatus: status, HasStatus: true}
}

func TestReconciliationUseCase_Verify(t *testing.T) {
	t.Run("reaches target after an unchanged poll", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, rec := newTestReconciler(gateway, DefaultReconcileOptions())

		gomock.InOrder(
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "pending"), nil),
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "pending"), nil),
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "approved"), nil),
		)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if !v.Succeeded() {
			t.Fatalf("expected success, got %q", v.Message())
		}
		if rec.count() != 2 {
			t.Fatalf("expected 2 waits, got %d", rec.count())
		}
		for _, d := range rec.waits {
			if d != DefaultPollInterval {
				t.Fatalf("expected %v wait, got %v", DefaultPollInterval, d)
			}
		}
	})

	t.Run("baseline already at target", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, rec := newTestReconciler(gateway, DefaultReconcileOptions())

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "approved"), nil).Times(1)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if !v.Succeeded() {
			t.Fatalf("expected success, got %q", v.Message())
		}
		if rec.count() != 0 {
			t.Fatalf("expected no wait, got %d", rec.count())
		}
	})

	t.Run("status changes to something else", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, rec := newTestReconciler(gateway, DefaultReconcileOptions())

		gomock.InOrder(
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "pending"), nil),
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "rejected"), nil),
		)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if v.Succeeded() {
			t.Fatalf("expected failure")
		}
		if v.Message() != "Received status 'rejected', but expected 'approved'" {
			t.Fatalf("unexpected message %q", v.Message())
		}
		if v.Kind() != entities.VerificationKindStatusMismatch {
			t.Fatalf("expected status_mismatch, got %s", v.Kind())
		}
		if rec.count() != 1 {
			t.Fatalf("expected 1 wait, got %d", rec.count())
		}
	})

	t.Run("payment not found at baseline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, rec := newTestReconciler(gateway, DefaultReconcileOptions())

		gateway.EXPECT().GetPayment(gomock.Any(), "999").Return(entities.StatusReport{PaymentID: "999"}, nil).Times(1)

		v := uc.Verify(context.Background(), pixResponse("999"), "approved")
		if v.Succeeded() || v.Message() != "Payment not found" {
			t.Fatalf("expected payment not found, got ok=%v msg=%q", v.Succeeded(), v.Message())
		}
		if !errors.Is(v.Err(), entities.ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", v.Err())
		}
		if rec.count() != 0 {
			t.Fatalf("expected no wait, got %d", rec.count())
		}
	})

	t.Run("payment disappears while polling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, _ := newTestReconciler(gateway, DefaultReconcileOptions())

		gomock.InOrder(
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "pending"), nil),
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.StatusReport{}, nil),
		)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if v.Kind() != entities.VerificationKindNotFound {
			t.Fatalf("expected not_found, got %s", v.Kind())
		}
	})

	t.Run("gateway error at baseline is forwarded verbatim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, _ := newTestReconciler(gateway, DefaultReconcileOptions())

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.StatusReport{GatewayError: "invalid token", HasError: true}, nil)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if v.Message() != "invalid token" {
			t.Fatalf("expected verbatim gateway message, got %q", v.Message())
		}
		var gwErr *entities.GatewayError
		if !errors.As(v.Err(), &gwErr) {
			t.Fatalf("expected *GatewayError, got %T", v.Err())
		}
	})

	t.Run("gateway error while polling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, _ := newTestReconciler(gateway, DefaultReconcileOptions())

		gomock.InOrder(
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "pending"), nil),
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.StatusReport{GatewayError: "rate limited", HasError: true}, nil),
		)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if v.Kind() != entities.VerificationKindGatewayError || v.Message() != "rate limited" {
			t.Fatalf("unexpected outcome kind=%s msg=%q", v.Kind(), v.Message())
		}
	})

	t.Run("checkout link is rejected without fetching", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, rec := newTestReconciler(gateway, DefaultReconcileOptions())

		v := uc.Verify(context.Background(), entities.NewCheckoutLinkResponse("https://pay.example/abc"), "approved")
		if !errors.Is(v.Err(), entities.ErrUnsupportedVariant) {
			t.Fatalf("expected ErrUnsupportedVariant, got %v", v.Err())
		}
		if rec.count() != 0 {
			t.Fatalf("expected no wait, got %d", rec.count())
		}
	})

	t.Run("card charge is verified like pix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, _ := newTestReconciler(gateway, DefaultReconcileOptions())

		card := entities.NewCardChargeResponse(entities.CardCharge{PaymentID: "77", TotalAmount: 10})
		gateway.EXPECT().GetPayment(gomock.Any(), "77").Return(statusReport("77", "approved"), nil)

		if v := uc.Verify(context.Background(), card, "approved"); !v.Succeeded() {
			t.Fatalf("expected success, got %q", v.Message())
		}
	})

	t.Run("empty target", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, _ := newTestReconciler(gateway, DefaultReconcileOptions())

		v := uc.Verify(context.Background(), pixResponse("123"), "")
		if !errors.Is(v.Err(), ErrInvalidTargetStatus) {
			t.Fatalf("expected ErrInvalidTargetStatus, got %v", v.Err())
		}
	})

	t.Run("malformed response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, _ := newTestReconciler(gateway, DefaultReconcileOptions())

		gateway.EXPECT().GetPayment(gomock.Any(), "123").
			Return(entities.StatusReport{}, entities.NewMalformed("data.status", errors.New("not a string"))).Times(1)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if v.Kind() != entities.VerificationKindMalformedResponse {
			t.Fatalf("expected malformed_response, got %s", v.Kind())
		}
	})

	t.Run("transport failures are retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, rec := newTestReconciler(gateway, DefaultReconcileOptions())

		flaky := &entities.TransportError{Op: "get payment", Err: errors.New("connection reset")}
		gomock.InOrder(
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.StatusReport{}, flaky),
			gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "approved"), nil),
		)

		if v := uc.Verify(context.Background(), pixResponse("123"), "approved"); !v.Succeeded() {
			t.Fatalf("expected success, got %q", v.Message())
		}
		if rec.count() != 1 {
			t.Fatalf("expected 1 wait before retry, got %d", rec.count())
		}
	})

	t.Run("transport failures give up after the retry bound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, _ := newTestReconciler(gateway, ReconcileOptions{PollInterval: time.Second, TransportRetries: 2})

		down := &entities.TransportError{Op: "get payment", Err: errors.New("dial tcp: refused")}
		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.StatusReport{}, down).Times(3)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if v.Kind() != entities.VerificationKindTransportError {
			t.Fatalf("expected transport_error, got %s", v.Kind())
		}
	})

	t.Run("attempt cap", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, rec := newTestReconciler(gateway, ReconcileOptions{PollInterval: time.Second, MaxAttempts: 2})

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "pending"), nil).Times(3)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if !errors.Is(v.Err(), entities.ErrAttemptsExhausted) {
			t.Fatalf("expected ErrAttemptsExhausted, got %v", v.Err())
		}
		if rec.count() != 2 {
			t.Fatalf("expected 2 waits, got %d", rec.count())
		}
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, rec := newTestReconciler(gateway, DefaultReconcileOptions())
		rec.err = context.Canceled

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "pending"), nil).Times(1)

		v := uc.Verify(context.Background(), pixResponse("123"), "approved")
		if v.Kind() != entities.VerificationKindCancelled {
			t.Fatalf("expected cancelled, got %s", v.Kind())
		}
	})

	t.Run("cancelled before the baseline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc, _ := newTestReconciler(gateway, DefaultReconcileOptions())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		v := uc.Verify(ctx, pixResponse("123"), "approved")
		if v.Kind() != entities.VerificationKindCancelled {
			t.Fatalf("expected cancelled, got %s", v.Kind())
		}
	})
}

func TestReconciliationUseCase_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	metrics := mock_interfaces.NewMockIVerificationMetrics(ctrl)

	uc := NewReconciliationUseCase(gateway, metrics, nil, DefaultReconcileOptions())
	uc.sleep = (&sleepRecorder{}).sleep

	gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "approved"), nil)
	metrics.EXPECT().VerificationStarted().Times(1)
	metrics.EXPECT().FetchObserved("ok").Times(1)
	metrics.EXPECT().VerificationFinished(gomock.Any(), gomock.Any()).Do(func(v entities.Verification, _ time.Duration) {
		if !v.Succeeded() {
			t.Fatalf("expected success to be reported")
		}
	})

	uc.Verify(context.Background(), pixResponse("123"), "approved")
}

func TestReconciliationUseCase_VerifyAsync(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc, _ := newTestReconciler(gateway, DefaultReconcileOptions())

	gomock.InOrder(
		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "pending"), nil),
		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(statusReport("123", "approved"), nil),
	)

	select {
	case v, ok := <-uc.VerifyAsync(context.Background(), pixResponse("123"), "approved"):
		if !ok || !v.Succeeded() {
			t.Fatalf("expected success on channel, got ok=%v msg=%q", ok, v.Message())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("verification did not complete")
	}
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := sleepContext(context.Background(), 0); err != nil {
		t.Fatalf("expected nil for zero duration, got %v", err)
	}
}
