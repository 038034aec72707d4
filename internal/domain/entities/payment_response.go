package entities

// PaymentMethod discriminates the PaymentResponse variants. Pix and Card match
// the gateway's data.method values.
type PaymentMethod string

const (
	PaymentMethodPix      PaymentMethod = "Pix"
	PaymentMethodCard     PaymentMethod = "Card"
	PaymentMethodCheckout PaymentMethod = "Checkout"
)

// InstantTransfer is the Pix outcome: a QR code the payer scans or copies.
type InstantTransfer struct {
	Status      Status
	PaymentID   string
	QRCodeImage string // base64 PNG
	QRCodeText  string // copy-paste literal
}

// CardCharge is the card outcome. PaymentID is the gateway's numeric id in
// decimal form.
type CardCharge struct {
	Status      Status
	PaymentID   string
	TotalAmount float64
	Increase    float64
}

// CheckoutLink is a payment-collection page. It has no status and no payment
// identity.
type CheckoutLink struct {
	URL string
}

// PaymentResponse holds exactly one of InstantTransfer, CardCharge or
// CheckoutLink. Build it with the New*Response constructors; the zero value
// holds no variant.
type PaymentResponse struct {
	method   PaymentMethod
	pix      InstantTransfer
	card     CardCharge
	checkout CheckoutLink
}

func NewInstantTransferResponse(p InstantTransfer) PaymentResponse {
	return PaymentResponse{method: PaymentMethodPix, pix: p}
}

func NewCardChargeResponse(c CardCharge) PaymentResponse {
	return PaymentResponse{method: PaymentMethodCard, card: c}
}

func NewCheckoutLinkResponse(url string) PaymentResponse {
	return PaymentResponse{method: PaymentMethodCheckout, checkout: CheckoutLink{URL: url}}
}

// Method returns the active variant, or "" for the zero value.
func (r PaymentResponse) Method() PaymentMethod {
	return r.method
}

func (r PaymentResponse) IsZero() bool {
	return r.method == ""
}

func (r PaymentResponse) InstantTransfer() (InstantTransfer, bool) {
	if r.method != PaymentMethodPix {
		return InstantTransfer{}, false
	}
	return r.pix, true
}

func (r PaymentResponse) CardCharge() (CardCharge, bool) {
	if r.method != PaymentMethodCard {
		return CardCharge{}, false
	}
	return r.card, true
}

func (r PaymentResponse) CheckoutLink() (CheckoutLink, bool) {
	if r.method != PaymentMethodCheckout {
		return CheckoutLink{}, false
	}
	return r.checkout, true
}

// CheckoutURL is the plain-text view of the checkout variant.
func (r PaymentResponse) CheckoutURL() (string, bool) {
	link, ok := r.CheckoutLink()
	return link.URL, ok
}

// PaymentID returns the gateway identity of the payment. Checkout links and the
// zero value have none and yield ErrUnsupportedVariant.
func (r PaymentResponse) PaymentID() (string, error) {
	switch r.method {
	case PaymentMethodPix:
		return r.pix.PaymentID, nil
	case PaymentMethodCard:
		return r.card.PaymentID, nil
	default:
		return "", ErrUnsupportedVariant
	}
}

// Status returns the last known status. It is only as fresh as the fetch that
// produced this value.
func (r PaymentResponse) Status() (Status, bool) {
	switch r.method {
	case PaymentMethodPix:
		return r.pix.Status, true
	case PaymentMethodCard:
		return r.card.Status, true
	default:
		return Status{}, false
	}
}

// WithStatus returns a copy carrying s. Checkout links are returned unchanged.
func (r PaymentResponse) WithStatus(s Status) PaymentResponse {
	switch r.method {
	case PaymentMethodPix:
		r.pix.Status = s
	case PaymentMethodCard:
		r.card.Status = s
	}
	return r
}

// PaymentResponseVisitor receives the active variant of a PaymentResponse.
type PaymentResponseVisitor interface {
	VisitInstantTransfer(InstantTransfer)
	VisitCardCharge(CardCharge)
	VisitCheckoutLink(CheckoutLink)
}

// Accept calls exactly one visitor method, or none for the zero value.
func (r PaymentResponse) Accept(v PaymentResponseVisitor) {
	switch r.method {
	case PaymentMethodPix:
		v.VisitInstantTransfer(r.pix)
	case PaymentMethodCard:
		v.VisitCardCharge(r.card)
	case PaymentMethodCheckout:
		v.VisitCheckoutLink(r.checkout)
	}
}
