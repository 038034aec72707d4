package interfaces

import (
	"context"
	"time"

	"bfinancial_sdk/internal/domain/entities"
)

//go:generate mockgen -source=support_interface.go -destination=mocks/support_interface.go -package=mock_interfaces

// IStatusCache keeps recent lookups so repeated reads of the same payment do not
// hit the gateway.
type IStatusCache interface {
	Get(ctx context.Context, paymentID string) (entities.StatusReport, bool, error)
	Set(ctx context.Context, paymentID string, report entities.StatusReport) error
}

// IQRCodeRenderer renders the Pix copy-paste literal as a PNG.
type IQRCodeRenderer interface {
	Render(content string) ([]byte, error)
}

// IVerificationMetrics receives reconciliation telemetry.
type IVerificationMetrics interface {
	FetchObserved(result string)
	VerificationStarted()
	VerificationFinished(v entities.Verification, elapsed time.Duration)
}
