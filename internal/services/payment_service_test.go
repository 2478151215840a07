// internal/services/payment_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDollarsToCents(t *testing.T) {
	cases := []struct {
		amount float64
		cents  int64
	}{
		{0, 0},
		{0.01, 1},
		{1, 100},
		{19.99, 1999},
		{29.99, 2999},
		{100.00, 10000},
		{1234.56, 123456},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.cents, dollarsToCents(tc.amount), "amount %v", tc.amount)
	}
}

func TestVerifyChainReference_EVMNetworks(t *testing.T) {
	svc := NewPaymentService(newTestConfig())
	validHash := "0x" + strings.Repeat("ab", 32)

	for _, network := range []string{"base", "polygon", "ethereum"} {
		assert.NoError(t, svc.VerifyChainReference(network, validHash))
		assert.Error(t, svc.VerifyChainReference(network, "deadbeef"))
		assert.Error(t, svc.VerifyChainReference(network, validHash+"00"))
	}
}

func TestVerifyChainReference_Solana(t *testing.T) {
	svc := NewPaymentService(newTestConfig())

	assert.NoError(t, svc.VerifyChainReference("solana", strings.Repeat("5", 64)))
	assert.Error(t, svc.VerifyChainReference("solana", "tooshort"))
	assert.Error(t, svc.VerifyChainReference("solana", strings.Repeat("5", 120)))
}

func TestVerifyChainReference_EmptyReference(t *testing.T) {
	svc := NewPaymentService(newTestConfig())

	assert.ErrorIs(t, svc.VerifyChainReference("base", ""), ErrMissingReference)
	assert.ErrorIs(t, svc.VerifyChainReference("unknown", ""), ErrMissingReference)
}
