package entities

import (
	"encoding/json"
	"time"
)

// PaymentRecord is the payment persisted by the relay service after a
// successful create, flattened so it can be stored and rebuilt.
//
// Storage model (DynamoDB):
//   - PK: payment_id
//
// RawPayload keeps the gateway answer for traceability.
type PaymentRecord struct {
	PaymentID   string        `json:"payment_id"`
	Method      PaymentMethod `json:"method"`
	Status      string        `json:"status"`
	Cause       string        `json:"cause,omitempty"`
	PayerEmail  string        `json:"payer_email,omitempty"`
	Amount      float64       `json:"amount"`
	QRCodeImage string        `json:"qr_code_image,omitempty"`
	QRCodeText  string        `json:"qr_code_text,omitempty"`
	TotalAmount float64       `json:"total_amount,omitempty"`
	Increase    float64       `json:"increase,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	RawPayload json.RawMessage `json:"raw_payload,omitempty"`
}

// NewPaymentRecord flattens resp. Checkout links have no identity and yield
// ErrUnsupportedVariant.
func NewPaymentRecord(req PaymentCreate, resp PaymentResponse, now time.Time) (PaymentRecord, error) {
	id, err := resp.PaymentID()
	if err != nil {
		return PaymentRecord{}, err
	}
	rec := PaymentRecord{
		PaymentID:  id,
		Method:     resp.Method(),
		PayerEmail: req.PayerEmail(),
		Amount:     req.Amount(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rec.apply(resp)
	return rec, nil
}

// WithResponse returns a copy updated from a fresher response of the same
// payment.
func (r PaymentRecord) WithResponse(resp PaymentResponse, now time.Time) PaymentRecord {
	r.apply(resp)
	r.UpdatedAt = now
	return r
}

func (r *PaymentRecord) apply(resp PaymentResponse) {
	if pix, ok := resp.InstantTransfer(); ok {
		r.Status, r.Cause = pix.Status.String(), pix.Status.Reason
		if pix.QRCodeImage != "" {
			r.QRCodeImage = pix.QRCodeImage
		}
		if pix.QRCodeText != "" {
			r.QRCodeText = pix.QRCodeText
		}
	}
	if card, ok := resp.CardCharge(); ok {
		r.Status, r.Cause = card.Status.String(), card.Status.Reason
		r.TotalAmount = card.TotalAmount
		r.Increase = card.Increase
	}
}

// Response rebuilds the typed response from the stored fields.
func (r PaymentRecord) Response() PaymentResponse {
	status := NormalizeStatus(r.Status, r.Cause)
	switch r.Method {
	case PaymentMethodPix:
		return NewInstantTransferResponse(InstantTransfer{
			Status:      status,
			PaymentID:   r.PaymentID,
			QRCodeImage: r.QRCodeImage,
			QRCodeText:  r.QRCodeText,
		})
	case PaymentMethodCard:
		return NewCardChargeResponse(CardCharge{
			Status:      status,
			PaymentID:   r.PaymentID,
			TotalAmount: r.TotalAmount,
			Increase:    r.Increase,
		})
	default:
		return PaymentResponse{}
	}
}
