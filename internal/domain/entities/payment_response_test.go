package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVisitor struct {
	calls []string
}

func (v *recordingVisitor) VisitInstantTransfer(InstantTransfer) { v.calls = append(v.calls, "pix") }
func (v *recordingVisitor) VisitCardCharge(CardCharge)           { v.calls = append(v.calls, "card") }
func (v *recordingVisitor) VisitCheckoutLink(CheckoutLink)       { v.calls = append(v.calls, "checkout") }

func TestPaymentResponse_Accessors(t *testing.T) {
	pending := Status{Kind: StatusPending}
	pix := NewInstantTransferResponse(InstantTransfer{Status: pending, PaymentID: "p1", QRCodeImage: "aW1n", QRCodeText: "000201"})
	card := NewCardChargeResponse(CardCharge{Status: pending, PaymentID: "42", TotalAmount: 105, Increase: 5})
	link := NewCheckoutLinkResponse("https://pay.example/c/1")

	tests := []struct {
		name       string
		resp       PaymentResponse
		method     PaymentMethod
		isPix      bool
		isCard     bool
		isCheckout bool
		id         string
		visit      string
	}{
		{name: "pix", resp: pix, method: PaymentMethodPix, isPix: true, id: "p1", visit: "pix"},
		{name: "card", resp: card, method: PaymentMethodCard, isCard: true, id: "42", visit: "card"},
		{name: "checkout", resp: link, method: PaymentMethodCheckout, isCheckout: true, visit: "checkout"},
		{name: "zero", resp: PaymentResponse{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.method, tt.resp.Method())
			assert.Equal(t, tt.method == "", tt.resp.IsZero())

			_, ok := tt.resp.InstantTransfer()
			assert.Equal(t, tt.isPix, ok)
			_, ok = tt.resp.CardCharge()
			assert.Equal(t, tt.isCard, ok)
			_, ok = tt.resp.CheckoutLink()
			assert.Equal(t, tt.isCheckout, ok)
			_, ok = tt.resp.CheckoutURL()
			assert.Equal(t, tt.isCheckout, ok)

			_, hasStatus := tt.resp.Status()
			assert.Equal(t, tt.isPix || tt.isCard, hasStatus)

			id, err := tt.resp.PaymentID()
			if tt.id == "" {
				assert.True(t, errors.Is(err, ErrUnsupportedVariant))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, id)
			}

			v := &recordingVisitor{}
			tt.resp.Accept(v)
			if tt.visit == "" {
				assert.Empty(t, v.calls)
			} else {
				assert.Equal(t, []string{tt.visit}, v.calls)
			}
		})
	}
}

func TestPaymentResponse_WithStatus(t *testing.T) {
	approved := Status{Kind: StatusApproved}

	pix := NewInstantTransferResponse(InstantTransfer{Status: Status{Kind: StatusPending}, PaymentID: "p1", QRCodeText: "000201"})
	updated := pix.WithStatus(approved)

	got, _ := updated.Status()
	assert.Equal(t, approved, got)
	old, _ := pix.Status()
	assert.Equal(t, StatusPending, old.Kind)
	transfer, _ := updated.InstantTransfer()
	assert.Equal(t, "000201", transfer.QRCodeText)

	link := NewCheckoutLinkResponse("https://pay.example")
	assert.Equal(t, link, link.WithStatus(approved))
}
