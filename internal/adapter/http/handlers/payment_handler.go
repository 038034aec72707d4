package handlers

import (
	"net/http"

	request "bfinancial_sdk/internal/adapter/http/dto/request"
	response "bfinancial_sdk/internal/adapter/http/dto/response"
	"bfinancial_sdk/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler handles HTTP requests for payments and checkout links.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
	logger  *zap.Logger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{usecase: uc, logger: logger}
}

// CreatePayment creates a Pix or Card payment.
//
//	@Summary	Create payment
//	@Tags		Payments
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.PaymentCreateRequest	true	"Pix or Card payment"
//	@Success	201		{object}	response.PaymentResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Failure	422		{object}	pkg.HTTPError
//	@Router		/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.PaymentCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	req, err := payload.ToEntity()
	if err != nil {
		h.logger.Info("[payment][handler] invalid payload", zap.String("type", payload.Type), zap.Error(err))
		writeError(c, errInvalidRequest)
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("[payment][handler] create failed", zap.String("method", string(req.Method())), zap.Error(err))
		writeError(c, mapPaymentError(err))
		return
	}
	res := response.FromPaymentResponse(created)
	h.logger.Info("[payment][handler] create success", zap.String("payment_id", res.PaymentID), zap.String("status", res.Status))

	c.JSON(http.StatusCreated, res)
}

// CreateCheckout creates a checkout link for a custom or cataloged product.
//
//	@Summary	Create checkout link
//	@Tags		Payments
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.ProductRequest	true	"Product"
//	@Success	201		{object}	response.PaymentResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Router		/checkouts [post]
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var payload request.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	product, err := payload.ToEntity()
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	link, err := h.usecase.CreateCheckout(c.Request.Context(), product)
	if err != nil {
		h.logger.Warn("[checkout][handler] create failed", zap.Error(err))
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPaymentResponse(link))
}

// GetPayment returns the live gateway status of a payment.
//
//	@Summary	Get payment status
//	@Tags		Payments
//	@Produce	json
//	@Param		payment_id	path		string	true	"Payment ID"
//	@Success	200			{object}	response.StatusReportResponse
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/payments/{payment_id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	report, err := h.usecase.Lookup(c.Request.Context(), paymentID)
	if err != nil {
		h.logger.Info("[payment][handler] lookup failed", zap.String("payment_id", paymentID), zap.Error(err))
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromStatusReport(report))
}

func (h *PaymentHandler) GetPaymentRecord(c *gin.Context) {
	paymentID := c.Param("payment_id")

	rec, err := h.usecase.GetRecord(c.Request.Context(), paymentID)
	if err != nil {
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentRecord(rec))
}

// GetQRCode serves the Pix QR code of a stored payment as a PNG.
func (h *PaymentHandler) GetQRCode(c *gin.Context) {
	paymentID := c.Param("payment_id")

	png, err := h.usecase.QRCode(c.Request.Context(), paymentID)
	if err != nil {
		h.logger.Info("[payment][handler] qrcode failed", zap.String("payment_id", paymentID), zap.Error(err))
		writeError(c, mapPaymentError(err))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
