package handlers

import (
	"net/http"

	request "bfinancial_sdk/internal/adapter/http/dto/request"
	response "bfinancial_sdk/internal/adapter/http/dto/response"
	"bfinancial_sdk/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerificationHandler starts and reports background reconciliations.
type VerificationHandler struct {
	usecase usecase.IVerificationUseCase
	logger  *zap.Logger
}

func NewVerificationHandler(uc usecase.IVerificationUseCase, logger *zap.Logger) *VerificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VerificationHandler{usecase: uc, logger: logger}
}

// StartVerification waits in the background for the payment to reach
// target_status. The run is returned immediately in the running state.
//
//	@Summary	Start verification
//	@Tags		Verifications
//	@Accept		json
//	@Produce	json
//	@Param		payment_id	path		string						true	"Payment ID"
//	@Param		request		body		request.VerificationRequest	true	"Target status"
//	@Success	202			{object}	response.VerificationRunResponse
//	@Failure	400			{object}	pkg.HTTPError
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/payments/{payment_id}/verifications [post]
func (h *VerificationHandler) StartVerification(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var payload request.VerificationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	run, err := h.usecase.Start(c.Request.Context(), paymentID, payload.TargetStatus)
	if err != nil {
		h.logger.Info("[verification][handler] start failed", zap.String("payment_id", paymentID), zap.Error(err))
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusAccepted, response.FromVerificationRun(run))
}

func (h *VerificationHandler) ListVerifications(c *gin.Context) {
	runs, err := h.usecase.ListByPaymentID(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromVerificationRuns(runs))
}

func (h *VerificationHandler) GetVerification(c *gin.Context) {
	run, err := h.usecase.GetByID(c.Request.Context(), c.Param("verification_id"))
	if err != nil {
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromVerificationRun(run))
}
