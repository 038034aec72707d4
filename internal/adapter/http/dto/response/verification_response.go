package response

import (
	"time"

	"bfinancial_sdk/internal/domain/entities"
)

type VerificationRunResponse struct {
	ID           string    `json:"id"`
	PaymentID    string    `json:"payment_id"`
	TargetStatus string    `json:"target_status"`
	State        string    `json:"state"`
	Message      string    `json:"message,omitempty"`
	FailureKind  string    `json:"failure_kind,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromVerificationRun(r entities.VerificationRun) VerificationRunResponse {
	return VerificationRunResponse{
		ID:           r.ID,
		PaymentID:    r.PaymentID,
		TargetStatus: r.TargetStatus,
		State:        string(r.State),
		Message:      r.Message,
		FailureKind:  r.FailureKind,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromVerificationRuns(runs []entities.VerificationRun) []VerificationRunResponse {
	out := make([]VerificationRunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, FromVerificationRun(r))
	}
	return out
}
