// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/designly/marketplace-backend/internal/services"
	"github.com/designly/marketplace-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /payments/intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	userID, ok := requireActor(c)
	if !ok {
		return
	}

	var req services.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	intent, err := h.paymentService.CreatePaymentIntent(userID, &req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":   userID,
			"design_id": req.DesignID,
		}).Warn("payment intent creation failed")
		utils.BadGatewayResponse(c, "Payment provider rejected the request")
		return
	}

	utils.SuccessResponse(c, gin.H{"payment_intent": intent})
}
