package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"bfinancial_sdk/internal/domain/entities"
)

// Every BFlex answer is wrapped as {"data": {...}}. The helpers below tell an
// absent field from a wrong-typed one: absent (or null) is reported through
// the bool, wrong-typed is a MalformedResponseError.

var (
	errMissing   = errors.New("missing")
	errNotObject = errors.New("not an object")
	errNotString = errors.New("not a string")
	errNotNumber = errors.New("not a number")
)

type object map[string]json.RawMessage

func decodeData(body []byte) (object, error) {
	var env object
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, entities.NewMalformed("body", err)
	}
	raw, ok := env["data"]
	if !ok {
		return nil, entities.NewMalformed("data", errMissing)
	}
	data, ok, err := asObject(raw)
	if err != nil || !ok {
		return nil, entities.NewMalformed("data", errNotObject)
	}
	return data, nil
}

func asObject(raw json.RawMessage) (object, bool, error) {
	if isNull(raw) {
		return nil, false, nil
	}
	if len(raw) == 0 || bytes.TrimSpace(raw)[0] != '{' {
		return nil, false, errNotObject
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, false, err
	}
	return o, true, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func (o object) optString(field string) (string, bool, error) {
	raw, ok := o[field]
	if !ok || isNull(raw) {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, entities.NewMalformed(field, errNotString)
	}
	return s, true, nil
}

func (o object) optNumber(field string) (float64, bool, error) {
	raw, ok := o[field]
	if !ok || isNull(raw) {
		return 0, false, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false, entities.NewMalformed(field, errNotNumber)
	}
	return f, true, nil
}

func (o object) optObject(field string) (object, bool, error) {
	raw, ok := o[field]
	if !ok {
		return nil, false, nil
	}
	obj, ok, err := asObject(raw)
	if err != nil {
		return nil, false, entities.NewMalformed(field, errNotObject)
	}
	return obj, ok, nil
}

// optID reads a payment identifier sent either as a JSON string or as a JSON
// number; numbers keep their decimal text.
func (o object) optID(field string) (string, bool, error) {
	raw, ok := o[field]
	if !ok || isNull(raw) {
		return "", false, nil
	}
	t := bytes.TrimSpace(raw)
	if t[0] == '"' {
		return o.optString(field)
	}
	var n json.Number
	if err := json.Unmarshal(t, &n); err != nil {
		return "", false, entities.NewMalformed(field, fmt.Errorf("not a string or number: %w", err))
	}
	return n.String(), true, nil
}

// gatewayError returns the data.error field as *entities.GatewayError.
func (o object) gatewayError() (*entities.GatewayError, error) {
	msg, ok, err := o.optString("error")
	if err != nil || !ok {
		return nil, err
	}
	return &entities.GatewayError{Message: msg}, nil
}

func decodeCreateResponse(method entities.PaymentMethod, body []byte) (entities.PaymentResponse, error) {
	data, err := decodeData(body)
	if err != nil {
		return entities.PaymentResponse{}, err
	}
	if gwErr, err := data.gatewayError(); err != nil {
		return entities.PaymentResponse{}, err
	} else if gwErr != nil {
		return entities.PaymentResponse{}, gwErr
	}

	id, ok, err := data.optID("payment_id")
	if err != nil {
		return entities.PaymentResponse{}, err
	}
	if !ok {
		return entities.PaymentResponse{}, entities.NewMalformed("payment_id", errMissing)
	}
	status, err := createdStatus(data)
	if err != nil {
		return entities.PaymentResponse{}, err
	}
	return decodePaymentInfo(method, id, status, data)
}

// createdStatus is the status of a freshly created payment: data.status when
// sent, pending otherwise.
func createdStatus(data object) (entities.Status, error) {
	raw, ok, err := data.optString("status")
	if err != nil {
		return entities.Status{}, err
	}
	if !ok {
		return entities.NormalizeStatus(entities.RawStatusPending, ""), nil
	}
	cause, _, err := data.optString("cause")
	if err != nil {
		return entities.Status{}, err
	}
	return entities.NormalizeStatus(raw, cause), nil
}

// decodePaymentInfo builds the variant from the method specific fields:
// qr_code.{base64,literal} for Pix, total_amount and increase for Card.
func decodePaymentInfo(method entities.PaymentMethod, id string, status entities.Status, info object) (entities.PaymentResponse, error) {
	switch method {
	case entities.PaymentMethodPix:
		pix := entities.InstantTransfer{Status: status, PaymentID: id}
		qr, ok, err := info.optObject("qr_code")
		if err != nil {
			return entities.PaymentResponse{}, err
		}
		if ok {
			if pix.QRCodeImage, _, err = qr.optString("base64"); err != nil {
				return entities.PaymentResponse{}, err
			}
			if pix.QRCodeText, _, err = qr.optString("literal"); err != nil {
				return entities.PaymentResponse{}, err
			}
		}
		return entities.NewInstantTransferResponse(pix), nil

	case entities.PaymentMethodCard:
		card := entities.CardCharge{Status: status, PaymentID: id}
		var err error
		if card.TotalAmount, _, err = info.optNumber("total_amount"); err != nil {
			return entities.PaymentResponse{}, err
		}
		if card.Increase, _, err = info.optNumber("increase"); err != nil {
			return entities.PaymentResponse{}, err
		}
		return entities.NewCardChargeResponse(card), nil

	default:
		return entities.PaymentResponse{}, entities.NewMalformed("method", fmt.Errorf("unknown payment method %q", method))
	}
}

func decodeStatusResponse(paymentID string, body []byte) (entities.StatusReport, error) {
	data, err := decodeData(body)
	if err != nil {
		return entities.StatusReport{}, err
	}

	report := entities.StatusReport{PaymentID: paymentID, Raw: json.RawMessage(body)}
	if report.GatewayError, report.HasError, err = data.optString("error"); err != nil {
		return entities.StatusReport{}, err
	}
	if report.RawStatus, report.HasStatus, err = data.optString("status"); err != nil {
		return entities.StatusReport{}, err
	}
	if report.Cause, _, err = data.optString("cause"); err != nil {
		return entities.StatusReport{}, err
	}

	method, ok, err := data.optString("method")
	if err != nil {
		return entities.StatusReport{}, err
	}
	if !ok {
		return report, nil
	}
	info, _, err := data.optObject("payment_info")
	if err != nil {
		return entities.StatusReport{}, err
	}
	id := paymentID
	if info != nil {
		if infoID, ok, err := info.optID("payment_id"); err != nil {
			return entities.StatusReport{}, err
		} else if ok {
			id = infoID
		}
	}
	status := entities.NormalizeStatus(report.RawStatus, report.Cause)
	if report.Payment, err = decodePaymentInfo(entities.PaymentMethod(method), id, status, info); err != nil {
		return entities.StatusReport{}, err
	}
	return report, nil
}

func decodeCheckoutResponse(body []byte) (entities.PaymentResponse, error) {
	data, err := decodeData(body)
	if err != nil {
		return entities.PaymentResponse{}, err
	}
	if gwErr, err := data.gatewayError(); err != nil {
		return entities.PaymentResponse{}, err
	} else if gwErr != nil {
		return entities.PaymentResponse{}, gwErr
	}
	url, ok, err := data.optString("url")
	if err != nil {
		return entities.PaymentResponse{}, err
	}
	if !ok {
		return entities.PaymentResponse{}, entities.NewMalformed("url", errMissing)
	}
	return entities.NewCheckoutLinkResponse(url), nil
}
