package routes

import (
	"bfinancial_sdk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, verificationHandler *handlers.VerificationHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("/:payment_id", paymentHandler.GetPayment)
		payments.GET("/:payment_id/record", paymentHandler.GetPaymentRecord)
		payments.GET("/:payment_id/qrcode", paymentHandler.GetQRCode)
		payments.POST("/:payment_id/verifications", verificationHandler.StartVerification)
		payments.GET("/:payment_id/verifications", verificationHandler.ListVerifications)
	}

	rg.POST(PathCheckouts, paymentHandler.CreateCheckout)
	rg.GET(PathVerifications+"/:verification_id", verificationHandler.GetVerification)
}
