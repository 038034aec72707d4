package entities

import "encoding/json"

// StatusReport is one answer of the gateway's payment lookup. The presence
// flags distinguish an absent field from an empty one.
type StatusReport struct {
	PaymentID    string
	RawStatus    string
	HasStatus    bool
	Cause        string
	GatewayError string
	HasError     bool

	// Payment is rebuilt from data.method and data.payment_info. It is the zero
	// value when the gateway did not send them.
	Payment PaymentResponse

	Raw json.RawMessage
}

func (r StatusReport) Status() Status {
	return NormalizeStatus(r.RawStatus, r.Cause)
}

// Response returns the reported payment with the freshly fetched status.
func (r StatusReport) Response() PaymentResponse {
	if r.Payment.IsZero() {
		return r.Payment
	}
	return r.Payment.WithStatus(r.Status())
}
