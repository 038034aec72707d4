package entities

// StatusKind is the closed set of payment states reported by the gateway.
type StatusKind int

const (
	StatusUnknown StatusKind = iota
	StatusPending
	StatusApproved
	StatusCancelled
	StatusRefunded
	StatusRejected
)

// Gateway status strings. Matching is exact and case-sensitive.
const (
	RawStatusPending   = "pending"
	RawStatusApproved  = "approved"
	RawStatusCancelled = "cancelled"
	RawStatusRefunded  = "refunded"
	RawStatusRejected  = "rejected"
	rawStatusUnknown   = "unknown"
)

// Status is a normalized payment status. Reason is only set for StatusRejected
// and carries the cause supplied by the gateway.
type Status struct {
	Kind   StatusKind
	Reason string
}

// NormalizeStatus maps a raw gateway status to a Status. It never fails:
// anything outside the known vocabulary (including "") is StatusUnknown.
func NormalizeStatus(raw, cause string) Status {
	switch raw {
	case RawStatusRejected:
		return Status{Kind: StatusRejected, Reason: cause}
	case RawStatusCancelled:
		return Status{Kind: StatusCancelled}
	case RawStatusApproved:
		return Status{Kind: StatusApproved}
	case RawStatusRefunded:
		return Status{Kind: StatusRefunded}
	case RawStatusPending:
		return Status{Kind: StatusPending}
	default:
		return Status{Kind: StatusUnknown}
	}
}

func (s Status) String() string {
	switch s.Kind {
	case StatusPending:
		return RawStatusPending
	case StatusApproved:
		return RawStatusApproved
	case StatusCancelled:
		return RawStatusCancelled
	case StatusRefunded:
		return RawStatusRefunded
	case StatusRejected:
		return RawStatusRejected
	default:
		return rawStatusUnknown
	}
}

// IsTerminal reports whether the gateway will not move the payment any further
// on its own.
func (s Status) IsTerminal() bool {
	switch s.Kind {
	case StatusApproved, StatusCancelled, StatusRefunded, StatusRejected:
		return true
	default:
		return false
	}
}

// IsKnownRawStatus reports whether raw belongs to the gateway vocabulary.
func IsKnownRawStatus(raw string) bool {
	return NormalizeStatus(raw, "").Kind != StatusUnknown
}
