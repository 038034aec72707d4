package interfaces

import (
	"context"

	"bfinancial_sdk/internal/domain/entities"
)

//go:generate mockgen -source=verification_repository_interface.go -destination=mocks/verification_repository_interface.go -package=mock_interfaces

// IVerificationRepository abstracts DynamoDB persistence for VerificationRun.
//
// The relay service must be able to:
//   - record a run when it starts
//   - close it with the reconciliation outcome
//   - list the runs of one payment
type IVerificationRepository interface {
	Create(ctx context.Context, r entities.VerificationRun) (entities.VerificationRun, error)
	GetByID(ctx context.Context, id string) (entities.VerificationRun, error)
	ListByPaymentID(ctx context.Context, paymentID string) ([]entities.VerificationRun, error)
	Complete(ctx context.Context, r entities.VerificationRun) (entities.VerificationRun, error)
}
