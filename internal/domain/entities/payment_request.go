package entities

import (
	"encoding/json"
	"errors"
)

var ErrEmptyPaymentCreate = errors.New("payment create request has no method")

type PixCreate struct {
	Amount     float64 `json:"amount"`
	PayerEmail string  `json:"payer_email"`
}

type CardCreate struct {
	PayerEmail string  `json:"payer_email"`
	Amount     float64 `json:"amount"`
	Number     string  `json:"number"`
	CVV        string  `json:"cvv"`
}

// PaymentCreate is the body of POST /payment/create: either a Pix or a Card
// request. On the wire it is tagged as {"type": <method>, "data": {...}}.
type PaymentCreate struct {
	method PaymentMethod
	pix    PixCreate
	card   CardCreate
}

func NewPixCreate(p PixCreate) PaymentCreate {
	return PaymentCreate{method: PaymentMethodPix, pix: p}
}

func NewCardCreate(c CardCreate) PaymentCreate {
	return PaymentCreate{method: PaymentMethodCard, card: c}
}

func (p PaymentCreate) Method() PaymentMethod {
	return p.method
}

func (p PaymentCreate) Pix() (PixCreate, bool) {
	return p.pix, p.method == PaymentMethodPix
}

func (p PaymentCreate) Card() (CardCreate, bool) {
	return p.card, p.method == PaymentMethodCard
}

func (p PaymentCreate) Amount() float64 {
	switch p.method {
	case PaymentMethodPix:
		return p.pix.Amount
	case PaymentMethodCard:
		return p.card.Amount
	default:
		return 0
	}
}

func (p PaymentCreate) PayerEmail() string {
	switch p.method {
	case PaymentMethodPix:
		return p.pix.PayerEmail
	case PaymentMethodCard:
		return p.card.PayerEmail
	default:
		return ""
	}
}

type taggedBody struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func (p PaymentCreate) MarshalJSON() ([]byte, error) {
	switch p.method {
	case PaymentMethodPix:
		return json.Marshal(taggedBody{Type: string(PaymentMethodPix), Data: p.pix})
	case PaymentMethodCard:
		return json.Marshal(taggedBody{Type: string(PaymentMethodCard), Data: p.card})
	default:
		return nil, ErrEmptyPaymentCreate
	}
}

// Authorization grants access to a private cataloged product.
type Authorization struct {
	certificate string
}

// Cert builds an Authorization from the certificate issued for a private
// product.
func Cert(certificate string) Authorization {
	return Authorization{certificate: certificate}
}

func (a Authorization) Certificate() string {
	return a.certificate
}

func (a Authorization) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Certificate string `json:"certificate"`
	}{Certificate: a.certificate})
}

// ProductType is Private (with an Authorization) or Public.
type ProductType struct {
	private bool
	auth    Authorization
}

func PrivateProduct(auth Authorization) ProductType {
	return ProductType{private: true, auth: auth}
}

func PublicProduct() ProductType {
	return ProductType{}
}

func (t ProductType) Authorization() (Authorization, bool) {
	return t.auth, t.private
}

func (t ProductType) MarshalJSON() ([]byte, error) {
	if t.private {
		return json.Marshal(taggedBody{Type: "Private", Data: t.auth})
	}
	return json.Marshal(taggedBody{Type: "Public"})
}

// Affiliation states whether the seller is affiliated with a cataloged
// product, and under which access type.
type Affiliation struct {
	affiliated bool
	kind       ProductType
}

func Affiliated(kind ProductType) Affiliation {
	return Affiliation{affiliated: true, kind: kind}
}

func NotAffiliated() Affiliation {
	return Affiliation{}
}

func (a Affiliation) ProductType() (ProductType, bool) {
	return a.kind, a.affiliated
}

func (a Affiliation) MarshalJSON() ([]byte, error) {
	type answer struct {
		Answer string       `json:"answer"`
		Info   *ProductType `json:"info,omitempty"`
	}
	if a.affiliated {
		kind := a.kind
		return json.Marshal(answer{Answer: "Yes", Info: &kind})
	}
	return json.Marshal(answer{Answer: "No"})
}

type CustomProduct struct {
	Price       float64 `json:"price"`
	Thumbnail   string  `json:"thumbnail"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

type CatalogedProduct struct {
	ProductID   string      `json:"product_id"`
	Affiliation Affiliation `json:"affiliation"`
}

// Product is what a checkout link sells: a one-off custom product or an entry
// of the gateway catalog.
type Product struct {
	custom    *CustomProduct
	cataloged *CatalogedProduct
}

func NewCustomProduct(p CustomProduct) Product {
	return Product{custom: &p}
}

func NewCatalogedProduct(p CatalogedProduct) Product {
	return Product{cataloged: &p}
}

func (p Product) Custom() (CustomProduct, bool) {
	if p.custom == nil {
		return CustomProduct{}, false
	}
	return *p.custom, true
}

func (p Product) Cataloged() (CatalogedProduct, bool) {
	if p.cataloged == nil {
		return CatalogedProduct{}, false
	}
	return *p.cataloged, true
}

func (p Product) IsZero() bool {
	return p.custom == nil && p.cataloged == nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	switch {
	case p.custom != nil:
		return json.Marshal(taggedBody{Type: "Custom", Data: p.custom})
	case p.cataloged != nil:
		return json.Marshal(taggedBody{Type: "Cataloged", Data: p.cataloged})
	default:
		return nil, errors.New("product has no variant")
	}
}
