package bfinancial

import "bfinancial_sdk/internal/domain/entities"

// Payment model.
type (
	Status                 = entities.Status
	StatusKind             = entities.StatusKind
	PaymentMethod          = entities.PaymentMethod
	PaymentResponse        = entities.PaymentResponse
	PaymentResponseVisitor = entities.PaymentResponseVisitor
	InstantTransfer        = entities.InstantTransfer
	CardCharge             = entities.CardCharge
	CheckoutLink           = entities.CheckoutLink
	StatusReport           = entities.StatusReport
	Verification           = entities.Verification
)

// Requests.
type (
	PaymentCreate    = entities.PaymentCreate
	PixCreate        = entities.PixCreate
	CardCreate       = entities.CardCreate
	Product          = entities.Product
	CustomProduct    = entities.CustomProduct
	CatalogedProduct = entities.CatalogedProduct
	Affiliation      = entities.Affiliation
	ProductType      = entities.ProductType
	Authorization    = entities.Authorization
)

// Errors.
type (
	GatewayError           = entities.GatewayError
	StatusMismatchError    = entities.StatusMismatchError
	MalformedResponseError = entities.MalformedResponseError
	TransportError         = entities.TransportError
)

const (
	StatusUnknown   = entities.StatusUnknown
	StatusPending   = entities.StatusPending
	StatusApproved  = entities.StatusApproved
	StatusCancelled = entities.StatusCancelled
	StatusRefunded  = entities.StatusRefunded
	StatusRejected  = entities.StatusRejected

	MethodPix      = entities.PaymentMethodPix
	MethodCard     = entities.PaymentMethodCard
	MethodCheckout = entities.PaymentMethodCheckout
)

var (
	ErrPaymentNotFound    = entities.ErrPaymentNotFound
	ErrUnsupportedVariant = entities.ErrUnsupportedVariant
	ErrMalformedResponse  = entities.ErrMalformedResponse
	ErrTransport          = entities.ErrTransport
	ErrAttemptsExhausted  = entities.ErrAttemptsExhausted
)

func NormalizeStatus(raw, cause string) Status { return entities.NormalizeStatus(raw, cause) }

func Pix(p PixCreate) PaymentCreate   { return entities.NewPixCreate(p) }
func Card(c CardCreate) PaymentCreate { return entities.NewCardCreate(c) }

func Custom(p CustomProduct) Product       { return entities.NewCustomProduct(p) }
func Cataloged(p CatalogedProduct) Product { return entities.NewCatalogedProduct(p) }

func Affiliated(kind ProductType) Affiliation { return entities.Affiliated(kind) }
func NotAffiliated() Affiliation              { return entities.NotAffiliated() }
func Private(auth Authorization) ProductType  { return entities.PrivateProduct(auth) }
func Public() ProductType                     { return entities.PublicProduct() }
func Cert(certificate string) Authorization   { return entities.Cert(certificate) }
