package interfaces

import (
	"context"

	"bfinancial_sdk/internal/domain/entities"
)

//go:generate mockgen -source=payment_record_repository_interface.go -destination=mocks/payment_record_repository_interface.go -package=mock_interfaces

// IPaymentRecordRepository abstracts DynamoDB persistence for PaymentRecord.
// GetByID returns a zero record (empty PaymentID) when nothing is stored.
type IPaymentRecordRepository interface {
	Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error)
	GetByID(ctx context.Context, paymentID string) (entities.PaymentRecord, error)
	Update(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error)
}
