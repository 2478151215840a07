// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/designly/marketplace-backend/internal/config"
)

// PaymentService fronts the card rail (Stripe payment intents) and verifies
// transaction references for the stablecoin rails. Neither path writes the
// ledger; PurchaseService does that once the payment is confirmed.
type PaymentService struct {
	cfg *config.Config
}

type CreatePaymentIntentRequest struct {
	DesignID uuid.UUID `json:"design_id" validate:"required"`
	Amount   float64   `json:"amount" validate:"required,min=0.01"`
	Currency string    `json:"currency,omitempty"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

var evmTxHashRegexp = regexp.MustCompile("^0x[0-9a-fA-F]{64}$")

// dollarsToCents converts a dollar amount to the integer cents Stripe
// expects. Rounding, not truncation: 19.99 stored as 19.989999... must
// still charge 1999.
func dollarsToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{cfg: cfg}
}

// DefaultNetwork is the chain used when a caller says "crypto" without
// naming a network.
func (s *PaymentService) DefaultNetwork() string {
	return s.cfg.Chain.Network
}

func (s *PaymentService) CreatePaymentIntent(userID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	amountInCents := dollarsToCents(req.Amount)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", userID.String())
	params.AddMetadata("design_id", req.DesignID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// VerifyCardPayment confirms a Stripe payment intent actually succeeded
// before the ledger write is attempted.
func (s *PaymentService) VerifyCardPayment(paymentIntentID string) error {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent %s is %s, not succeeded", paymentIntentID, pi.Status)
	}

	return nil
}

// VerifyChainReference checks that a stablecoin transaction hash is shaped
// like an on-chain reference for the given network. Full receipt lookup
// against the RPC node is the rail's own confirmation flow; this guards the
// ledger against obviously malformed references.
func (s *PaymentService) VerifyChainReference(network, txHash string) error {
	if txHash == "" {
		return ErrMissingReference
	}

	switch network {
	case "base", "polygon", "ethereum":
		if !evmTxHashRegexp.MatchString(txHash) {
			return errors.New("malformed transaction hash for EVM network")
		}
	case "solana":
		if len(txHash) < 32 || len(txHash) > 90 {
			return errors.New("malformed transaction signature for solana")
		}
	default:
		// Unknown networks only get the opaque-string checks.
		if len(txHash) < 8 {
			return errors.New("transaction reference too short")
		}
	}

	return nil
}
