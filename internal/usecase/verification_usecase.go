package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultVerificationTimeout = 10 * time.Minute

	completeTimeout = 5 * time.Second
)

var (
	ErrVerificationNotFound  = errors.New("verification not found")
	ErrInvalidVerificationID = errors.New("invalid verification id")
	ErrVerificationClosed    = errors.New("verification service closed")
)

// IVerificationUseCase runs reconciliations in the background for the relay.
//
//   - POST /payments/{id}/verifications => Start()
//   - GET /payments/{id}/verifications => ListByPaymentID()
//   - GET /verifications/{id} => GetByID()
type IVerificationUseCase interface {
	Start(ctx context.Context, paymentID, target string) (entities.VerificationRun, error)
	GetByID(ctx context.Context, id string) (entities.VerificationRun, error)
	ListByPaymentID(ctx context.Context, paymentID string) ([]entities.VerificationRun, error)
	Close()
}

type VerificationUseCase struct {
	repo       interfaces.IVerificationRepository
	records    interfaces.IPaymentRecordRepository
	reconciler IReconciliationUseCase
	logger     *zap.Logger
	timeout    time.Duration
	now        func() time.Time

	root   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

var _ IVerificationUseCase = (*VerificationUseCase)(nil)

// NewVerificationUseCase builds the service. Each run is bounded by timeout
// (DefaultVerificationTimeout when <= 0) and by Close.
func NewVerificationUseCase(repo interfaces.IVerificationRepository, records interfaces.IPaymentRecordRepository, reconciler IReconciliationUseCase, logger *zap.Logger, timeout time.Duration) *VerificationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultVerificationTimeout
	}
	root, cancel := context.WithCancel(context.Background())
	return &VerificationUseCase{
		repo:       repo,
		records:    records,
		reconciler: reconciler,
		logger:     logger,
		timeout:    timeout,
		now:        func() time.Time { return time.Now().UTC() },
		root:       root,
		cancel:     cancel,
	}
}

// Start persists a running VerificationRun for a stored payment and
// reconciles it on a background goroutine. The returned run is the running
// snapshot; poll GetByID for the outcome.
func (u *VerificationUseCase) Start(ctx context.Context, paymentID, target string) (entities.VerificationRun, error) {
	paymentID = strings.TrimSpace(paymentID)
	target = strings.TrimSpace(target)
	if paymentID == "" {
		return entities.VerificationRun{}, ErrInvalidPaymentID
	}
	if !entities.IsKnownRawStatus(target) {
		return entities.VerificationRun{}, ErrInvalidTargetStatus
	}
	if u.isClosed() {
		return entities.VerificationRun{}, ErrVerificationClosed
	}

	rec, err := u.records.GetByID(ctx, paymentID)
	if err != nil {
		return entities.VerificationRun{}, err
	}
	if rec.PaymentID == "" {
		return entities.VerificationRun{}, ErrPaymentRecordNotFound
	}

	now := u.now()
	run := entities.VerificationRun{
		ID:           uuid.NewString(),
		PaymentID:    paymentID,
		TargetStatus: target,
		State:        entities.VerificationStateRunning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := u.repo.Create(ctx, run)
	if err != nil {
		u.logger.Error("[verify][usecase] verification repository create failed", zap.String("payment_id", paymentID), zap.Error(err))
		return entities.VerificationRun{}, err
	}

	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		u.abandon(created)
		return entities.VerificationRun{}, ErrVerificationClosed
	}
	u.wg.Add(1)
	u.mu.Unlock()

	go u.execute(created, rec.Response())

	u.logger.Info("[verify][usecase] verification started",
		zap.String("verification_id", created.ID),
		zap.String("payment_id", paymentID),
		zap.String("target", target),
	)
	return created, nil
}

func (u *VerificationUseCase) execute(run entities.VerificationRun, resp entities.PaymentResponse) {
	defer u.wg.Done()

	ctx, cancel := context.WithTimeout(u.root, u.timeout)
	v := u.reconciler.Verify(ctx, resp, run.TargetStatus)
	cancel()

	u.complete(run, v)
}

// abandon closes a run persisted while Close was in progress.
func (u *VerificationUseCase) abandon(run entities.VerificationRun) {
	u.complete(run, entities.VerificationFail("verification cancelled: service shutting down", context.Canceled))
}

func (u *VerificationUseCase) complete(run entities.VerificationRun, v entities.Verification) {
	done := run.Complete(v, u.now())

	// The root context may already be cancelled; the outcome is still stored.
	storeCtx, storeCancel := context.WithTimeout(context.Background(), completeTimeout)
	defer storeCancel()
	if _, err := u.repo.Complete(storeCtx, done); err != nil {
		u.logger.Error("[verify][usecase] verification repository complete failed",
			zap.String("verification_id", run.ID),
			zap.Error(err),
		)
		return
	}
	u.logger.Info("[verify][usecase] verification finished",
		zap.String("verification_id", run.ID),
		zap.String("state", string(done.State)),
		zap.String("failure_kind", done.FailureKind),
	)
}

func (u *VerificationUseCase) GetByID(ctx context.Context, id string) (entities.VerificationRun, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.VerificationRun{}, ErrInvalidVerificationID
	}

	run, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.VerificationRun{}, err
	}
	if run.ID == "" {
		return entities.VerificationRun{}, ErrVerificationNotFound
	}
	return run, nil
}

func (u *VerificationUseCase) ListByPaymentID(ctx context.Context, paymentID string) ([]entities.VerificationRun, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	return u.repo.ListByPaymentID(ctx, paymentID)
}

func (u *VerificationUseCase) isClosed() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.closed
}

// Close cancels every in-flight run and waits for their outcomes to be
// stored. Start fails with ErrVerificationClosed afterwards.
func (u *VerificationUseCase) Close() {
	u.mu.Lock()
	u.closed = true
	u.mu.Unlock()

	u.cancel()
	u.wg.Wait()
}
