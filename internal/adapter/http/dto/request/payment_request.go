package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bfinancial_sdk/internal/domain/entities"
)

var (
	ErrUnknownPaymentType = errors.New("unknown payment type")
	ErrUnknownProductType = errors.New("unknown product type")
	ErrInvalidAffiliation = errors.New("invalid affiliation")
)

// PaymentCreateRequest is the relay body for POST /v1/payments. It mirrors the
// gateway wire format: {"type": "Pix"|"Card", "data": {...}}.
type PaymentCreateRequest struct {
	Type string          `json:"type" binding:"required"`
	Data json.RawMessage `json:"data" binding:"required"`
}

func (r PaymentCreateRequest) ToEntity() (entities.PaymentCreate, error) {
	switch entities.PaymentMethod(strings.TrimSpace(r.Type)) {
	case entities.PaymentMethodPix:
		var pix entities.PixCreate
		if err := json.Unmarshal(r.Data, &pix); err != nil {
			return entities.PaymentCreate{}, fmt.Errorf("decode pix data: %w", err)
		}
		return entities.NewPixCreate(pix), nil
	case entities.PaymentMethodCard:
		var card entities.CardCreate
		if err := json.Unmarshal(r.Data, &card); err != nil {
			return entities.PaymentCreate{}, fmt.Errorf("decode card data: %w", err)
		}
		return entities.NewCardCreate(card), nil
	default:
		return entities.PaymentCreate{}, ErrUnknownPaymentType
	}
}

// ProductRequest is the relay body for POST /v1/checkouts:
// {"type": "Custom"|"Cataloged", "data": {...}}.
type ProductRequest struct {
	Type string          `json:"type" binding:"required"`
	Data json.RawMessage `json:"data" binding:"required"`
}

type catalogedProductRequest struct {
	ProductID   string             `json:"product_id"`
	Affiliation affiliationRequest `json:"affiliation"`
}

type affiliationRequest struct {
	Answer string              `json:"answer"`
	Info   *productTypeRequest `json:"info"`
}

type productTypeRequest struct {
	Type string `json:"type"`
	Data *struct {
		Certificate string `json:"certificate"`
	} `json:"data"`
}

func (r ProductRequest) ToEntity() (entities.Product, error) {
	switch strings.TrimSpace(r.Type) {
	case "Custom":
		var custom entities.CustomProduct
		if err := json.Unmarshal(r.Data, &custom); err != nil {
			return entities.Product{}, fmt.Errorf("decode custom product: %w", err)
		}
		return entities.NewCustomProduct(custom), nil
	case "Cataloged":
		var cataloged catalogedProductRequest
		if err := json.Unmarshal(r.Data, &cataloged); err != nil {
			return entities.Product{}, fmt.Errorf("decode cataloged product: %w", err)
		}
		affiliation, err := cataloged.Affiliation.toEntity()
		if err != nil {
			return entities.Product{}, err
		}
		return entities.NewCatalogedProduct(entities.CatalogedProduct{
			ProductID:   cataloged.ProductID,
			Affiliation: affiliation,
		}), nil
	default:
		return entities.Product{}, ErrUnknownProductType
	}
}

func (a affiliationRequest) toEntity() (entities.Affiliation, error) {
	switch a.Answer {
	case "No":
		return entities.NotAffiliated(), nil
	case "Yes":
		if a.Info == nil {
			return entities.Affiliation{}, ErrInvalidAffiliation
		}
		switch a.Info.Type {
		case "Public":
			return entities.Affiliated(entities.PublicProduct()), nil
		case "Private":
			if a.Info.Data == nil {
				return entities.Affiliation{}, ErrInvalidAffiliation
			}
			return entities.Affiliated(entities.PrivateProduct(entities.Cert(a.Info.Data.Certificate))), nil
		}
	}
	return entities.Affiliation{}, ErrInvalidAffiliation
}

// VerificationRequest is the relay body for POST
// /v1/payments/:payment_id/verifications.
type VerificationRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
}
