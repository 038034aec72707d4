package response

import (
	"time"

	"bfinancial_sdk/internal/domain/entities"
)

type QRCodeResponse struct {
	Base64  string `json:"base64,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// PaymentResponse renders any PaymentResponse variant; fields that do not
// belong to the variant are omitted.
type PaymentResponse struct {
	Method      string          `json:"method"`
	PaymentID   string          `json:"payment_id,omitempty"`
	Status      string          `json:"status,omitempty"`
	Cause       string          `json:"cause,omitempty"`
	QRCode      *QRCodeResponse `json:"qr_code,omitempty"`
	TotalAmount *float64        `json:"total_amount,omitempty"`
	Increase    *float64        `json:"increase,omitempty"`
	URL         string          `json:"url,omitempty"`
}

type paymentResponseBuilder struct {
	out PaymentResponse
}

func (b *paymentResponseBuilder) VisitInstantTransfer(p entities.InstantTransfer) {
	b.out = PaymentResponse{
		Method:    string(entities.PaymentMethodPix),
		PaymentID: p.PaymentID,
		Status:    p.Status.String(),
		Cause:     p.Status.Reason,
	}
	if p.QRCodeImage != "" || p.QRCodeText != "" {
		b.out.QRCode = &QRCodeResponse{Base64: p.QRCodeImage, Literal: p.QRCodeText}
	}
}

func (b *paymentResponseBuilder) VisitCardCharge(c entities.CardCharge) {
	total, increase := c.TotalAmount, c.Increase
	b.out = PaymentResponse{
		Method:      string(entities.PaymentMethodCard),
		PaymentID:   c.PaymentID,
		Status:      c.Status.String(),
		Cause:       c.Status.Reason,
		TotalAmount: &total,
		Increase:    &increase,
	}
}

func (b *paymentResponseBuilder) VisitCheckoutLink(l entities.CheckoutLink) {
	b.out = PaymentResponse{Method: string(entities.PaymentMethodCheckout), URL: l.URL}
}

func FromPaymentResponse(r entities.PaymentResponse) PaymentResponse {
	var b paymentResponseBuilder
	r.Accept(&b)
	return b.out
}

// StatusReportResponse is the body of GET /v1/payments/:payment_id. Terminal
// is set once the gateway will not move the payment any further on its own.
type StatusReportResponse struct {
	PaymentID string           `json:"payment_id"`
	Status    string           `json:"status"`
	Cause     string           `json:"cause,omitempty"`
	Terminal  bool             `json:"terminal"`
	Payment   *PaymentResponse `json:"payment,omitempty"`
}

func FromStatusReport(r entities.StatusReport) StatusReportResponse {
	out := StatusReportResponse{
		PaymentID: r.PaymentID,
		Status:    r.RawStatus,
		Cause:     r.Cause,
		Terminal:  r.Status().IsTerminal(),
	}
	if resp := r.Response(); !resp.IsZero() {
		p := FromPaymentResponse(resp)
		out.Payment = &p
	}
	return out
}

type PaymentRecordResponse struct {
	PaymentID   string    `json:"payment_id"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	Cause       string    `json:"cause,omitempty"`
	PayerEmail  string    `json:"payer_email,omitempty"`
	Amount      float64   `json:"amount"`
	TotalAmount float64   `json:"total_amount,omitempty"`
	Increase    float64   `json:"increase,omitempty"`
	QRCodeText  string    `json:"qr_code_text,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromPaymentRecord(r entities.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		PaymentID:   r.PaymentID,
		Method:      string(r.Method),
		Status:      r.Status,
		Cause:       r.Cause,
		PayerEmail:  r.PayerEmail,
		Amount:      r.Amount,
		TotalAmount: r.TotalAmount,
		Increase:    r.Increase,
		QRCodeText:  r.QRCodeText,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
