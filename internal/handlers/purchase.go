// internal/handlers/purchase.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/designly/marketplace-backend/internal/services"
	"github.com/designly/marketplace-backend/internal/utils"
)

// PaymentVerifier confirms a transaction reference against its rail before
// anything is written to the ledger. *services.PaymentService implements it.
type PaymentVerifier interface {
	VerifyCardPayment(paymentIntentID string) error
	VerifyChainReference(network, txHash string) error
	DefaultNetwork() string
}

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
	payments        PaymentVerifier
}

func NewPurchaseHandler(purchaseService *services.PurchaseService, payments PaymentVerifier) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		payments:        payments,
	}
}

// POST /purchases/:rail
//
// The rail path segment selects the fee schedule: "card" for processor
// payments, anything else is treated as a stablecoin network id.
func (h *PurchaseHandler) RecordPurchase(c *gin.Context) {
	buyerID, ok := requireActor(c)
	if !ok {
		return
	}

	rail := c.Param("rail")
	if rail == "crypto" {
		// Generic crypto rail resolves to the configured default network.
		rail = h.payments.DefaultNetwork()
	}

	var req services.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	// Confirm the payment on its rail before touching the ledger. Card
	// references must name a succeeded payment intent; chain references must
	// at least be shaped like the network could have produced them.
	if rail == "card" {
		if err := h.payments.VerifyCardPayment(req.TxRef); err != nil {
			utils.BadRequestResponse(c, "Payment has not been confirmed", err.Error())
			return
		}
	} else {
		if err := h.payments.VerifyChainReference(rail, req.TxRef); err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
	}

	var amount *decimal.Decimal
	if req.Amount != nil {
		v := decimal.NewFromFloat(*req.Amount)
		amount = &v
	}

	purchase, err := h.purchaseService.Record(buyerID, req.DesignID, amount, rail, req.TxRef)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingReference):
			utils.BadRequestResponse(c, "A transaction reference is required", nil)
		case errors.Is(err, services.ErrDesignNotFound):
			utils.NotFoundResponse(c, "Design")
		case errors.Is(err, services.ErrDuplicatePurchase):
			utils.ConflictResponse(c, "This transaction reference was already recorded")
		default:
			utils.InternalErrorResponse(c, "Failed to record purchase")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"purchase": purchase})
}

// GET /purchases/history
func (h *PurchaseHandler) GetHistory(c *gin.Context) {
	userID, ok := requireActor(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	purchases, total, err := h.purchaseService.GetHistory(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load purchase history")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(purchases, total, params))
}

// GET /purchases/balance
func (h *PurchaseHandler) GetBalance(c *gin.Context) {
	userID, ok := requireActor(c)
	if !ok {
		return
	}

	balance, err := h.purchaseService.GetBalance(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load balance")
		return
	}

	utils.SuccessResponse(c, balance)
}
