package entities

import "time"

// VerificationState represents the lifecycle of a background verification.
type VerificationState string

const (
	VerificationStateRunning   VerificationState = "running"
	VerificationStateSucceeded VerificationState = "succeeded"
	VerificationStateFailed    VerificationState = "failed"
)

func (s VerificationState) IsFinal() bool {
	return s == VerificationStateSucceeded || s == VerificationStateFailed
}

// VerificationRun is a reconciliation started through the relay API and
// persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (payment_id-index): payment_id
type VerificationRun struct {
	ID           string            `json:"id"`
	PaymentID    string            `json:"payment_id"`
	TargetStatus string            `json:"target_status"`
	State        VerificationState `json:"state"`
	Message      string            `json:"message,omitempty"`
	FailureKind  string            `json:"failure_kind,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Complete returns the run closed with outcome v. A run that is already final
// is returned unchanged.
func (r VerificationRun) Complete(v Verification, now time.Time) VerificationRun {
	if r.State.IsFinal() {
		return r
	}
	if v.Succeeded() {
		r.State = VerificationStateSucceeded
		r.Message = ""
		r.FailureKind = ""
	} else {
		r.State = VerificationStateFailed
		r.Message = v.Message()
		r.FailureKind = v.Kind()
	}
	r.UpdatedAt = now
	return r
}
