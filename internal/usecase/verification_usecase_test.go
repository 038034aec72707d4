package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	mock_interfaces "bfinancial_sdk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type fakeReconciler struct {
	outcome entities.Verification
	block   bool
	got     chan string
}

func (f *fakeReconciler) Verify(ctx context.Context, resp entities.PaymentResponse, target string) entities.Verification {
	if f.got != nil {
		id, _ := resp.PaymentID()
		f.got <- id + ":" + target
	}
	if f.block {
		<-ctx.Done()
		return entities.VerificationFail("", ctx.Err())
	}
	return f.outcome
}

func (f *fakeReconciler) VerifyAsync(ctx context.Context, resp entities.PaymentResponse, target string) <-chan entities.Verification {
	out := make(chan entities.Verification, 1)
	out <- f.Verify(ctx, resp, target)
	close(out)
	return out
}

func TestVerificationUseCase_Start_Validations(t *testing.T) {
	uc := NewVerificationUseCase(nil, nil, &fakeReconciler{}, nil, 0)
	defer uc.Close()

	if _, err := uc.Start(context.Background(), " ", "approved"); !errors.Is(err, ErrInvalidPaymentID) {
		t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
	}
	if _, err := uc.Start(context.Background(), "abc", "paid"); !errors.Is(err, ErrInvalidTargetStatus) {
		t.Fatalf("expected ErrInvalidTargetStatus, got %v", err)
	}
}

func TestVerificationUseCase_Start(t *testing.T) {
	t.Run("payment record not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIVerificationRepository(ctrl)
		records := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		uc := NewVerificationUseCase(repo, records, &fakeReconciler{}, nil, 0)
		defer uc.Close()

		records.EXPECT().GetByID(gomock.Any(), "abc").Return(entities.PaymentRecord{}, nil)

		if _, err := uc.Start(context.Background(), "abc", "approved"); !errors.Is(err, ErrPaymentRecordNotFound) {
			t.Fatalf("expected ErrPaymentRecordNotFound, got %v", err)
		}
	})

	t.Run("stores the outcome of the background run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIVerificationRepository(ctrl)
		records := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		rec := &fakeReconciler{outcome: entities.VerificationSuccess(), got: make(chan string, 1)}
		uc := NewVerificationUseCase(repo, records, rec, nil, 0)

		records.EXPECT().GetByID(gomock.Any(), "abc").Return(entities.PaymentRecord{PaymentID: "abc", Method: entities.PaymentMethodPix, Status: "pending"}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.VerificationRun) (entities.VerificationRun, error) {
			if r.ID == "" || r.State != entities.VerificationStateRunning || r.TargetStatus != "approved" {
				t.Fatalf("unexpected run %+v", r)
			}
			return r, nil
		})
		completed := make(chan entities.VerificationRun, 1)
		repo.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.VerificationRun) (entities.VerificationRun, error) {
			completed <- r
			return r, nil
		})

		run, err := uc.Start(context.Background(), "abc", "approved")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		uc.Close()

		if got := <-rec.got; got != "abc:approved" {
			t.Fatalf("unexpected reconcile call %q", got)
		}
		done := <-completed
		if done.ID != run.ID || done.State != entities.VerificationStateSucceeded {
			t.Fatalf("unexpected completed run %+v", done)
		}
	})

	t.Run("close cancels in-flight runs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIVerificationRepository(ctrl)
		records := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		uc := NewVerificationUseCase(repo, records, &fakeReconciler{block: true}, nil, 0)

		records.EXPECT().GetByID(gomock.Any(), "abc").Return(entities.PaymentRecord{PaymentID: "abc", Method: entities.PaymentMethodCard}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.VerificationRun) (entities.VerificationRun, error) {
			return r, nil
		})
		repo.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.VerificationRun) (entities.VerificationRun, error) {
			if r.State != entities.VerificationStateFailed || r.FailureKind != entities.VerificationKindCancelled {
				t.Errorf("expected cancelled failure, got %+v", r)
			}
			return r, nil
		})

		if _, err := uc.Start(context.Background(), "abc", "approved"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		uc.Close()

		if _, err := uc.Start(context.Background(), "abc", "approved"); !errors.Is(err, ErrVerificationClosed) {
			t.Fatalf("expected ErrVerificationClosed, got %v", err)
		}
	})
}

func TestVerificationUseCase_Start_Concurrent(t *testing.T) {
	t.Run("starts do not wait on each other's create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIVerificationRepository(ctrl)
		records := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		uc := NewVerificationUseCase(repo, records, &fakeReconciler{outcome: entities.VerificationSuccess()}, nil, 0)

		records.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (entities.PaymentRecord, error) {
			return entities.PaymentRecord{PaymentID: id, Method: entities.PaymentMethodPix, Status: "pending"}, nil
		}).Times(2)

		arrived := make(chan struct{}, 2)
		release := make(chan struct{})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.VerificationRun) (entities.VerificationRun, error) {
			arrived <- struct{}{}
			<-release
			return r, nil
		}).Times(2)
		repo.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.VerificationRun) (entities.VerificationRun, error) {
			return r, nil
		}).Times(2)

		errs := make(chan error, 2)
		for _, id := range []string{"a", "b"} {
			go func(id string) {
				_, err := uc.Start(context.Background(), id, "approved")
				errs <- err
			}(id)
		}

		for i := 0; i < 2; i++ {
			select {
			case <-arrived:
			case <-time.After(2 * time.Second):
				close(release)
				t.Fatalf("second start blocked while the first was persisting")
			}
		}
		close(release)

		for i := 0; i < 2; i++ {
			if err := <-errs; err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		uc.Close()
	})

	t.Run("close during create fails the persisted run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIVerificationRepository(ctrl)
		records := mock_interfaces.NewMockIPaymentRecordRepository(ctrl)
		uc := NewVerificationUseCase(repo, records, &fakeReconciler{}, nil, 0)

		records.EXPECT().GetByID(gomock.Any(), "abc").Return(entities.PaymentRecord{PaymentID: "abc", Method: entities.PaymentMethodPix}, nil)
		arrived := make(chan struct{})
		release := make(chan struct{})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.VerificationRun) (entities.VerificationRun, error) {
			close(arrived)
			<-release
			return r, nil
		})
		completed := make(chan entities.VerificationRun, 1)
		repo.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.VerificationRun) (entities.VerificationRun, error) {
			completed <- r
			return r, nil
		})

		errs := make(chan error, 1)
		go func() {
			_, err := uc.Start(context.Background(), "abc", "approved")
			errs <- err
		}()

		<-arrived
		uc.Close()
		close(release)

		if err := <-errs; !errors.Is(err, ErrVerificationClosed) {
			t.Fatalf("expected ErrVerificationClosed, got %v", err)
		}
		done := <-completed
		if done.State != entities.VerificationStateFailed || done.FailureKind != entities.VerificationKindCancelled {
			t.Fatalf("unexpected completed run %+v", done)
		}
	})
}

func TestVerificationUseCase_Getters(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIVerificationRepository(ctrl)
	uc := NewVerificationUseCase(repo, nil, &fakeReconciler{}, nil, 0)
	defer uc.Close()

	if _, err := uc.GetByID(context.Background(), ""); !errors.Is(err, ErrInvalidVerificationID) {
		t.Fatalf("expected ErrInvalidVerificationID, got %v", err)
	}

	repo.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.VerificationRun{}, nil)
	if _, err := uc.GetByID(context.Background(), "v-1"); !errors.Is(err, ErrVerificationNotFound) {
		t.Fatalf("expected ErrVerificationNotFound, got %v", err)
	}

	repo.EXPECT().ListByPaymentID(gomock.Any(), "abc").Return([]entities.VerificationRun{{ID: "v-1"}, {ID: "v-2"}}, nil)
	runs, err := uc.ListByPaymentID(context.Background(), "abc")
	if err != nil || len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d err=%v", len(runs), err)
	}

	if _, err := uc.ListByPaymentID(context.Background(), ""); !errors.Is(err, ErrInvalidPaymentID) {
		t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
	}
}
