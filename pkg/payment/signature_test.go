package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name      string
		orderID   string
		paymentID string
		secret    string
		want      string
	}{
		{
			name:      "known vector",
			orderID:   "order_abc",
			paymentID: "pay_123",
			secret:    "shh",
			want:      "8df72dbc152bac770f38f6e9ed616d4b148ceee7c722468b66570b1b203c8d49",
		},
		{
			name:      "razorpay style ids",
			orderID:   "order_test123",
			paymentID: "pay_test456",
			secret:    "test_secret",
			want:      "80c5e4f6be6e2acc8efac61036a58f99b47ead0f6b93feff0ca5cfd41054f0f0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.orderID, tt.paymentID, tt.secret))
		})
	}
}

func TestVerifySignature(t *testing.T) {
	sig := Signature("order_abc", "pay_123", "shh")

	assert.True(t, VerifySignature("order_abc", "pay_123", sig, "shh"))
	assert.False(t, VerifySignature("order_abc", "pay_123", sig, "wrong_secret"))
	assert.False(t, VerifySignature("order_tampered", "pay_123", sig, "shh"))
	assert.False(t, VerifySignature("order_abc", "pay_123", "deadbeef", "shh"))
	assert.False(t, VerifySignature("order_abc", "pay_123", "", "shh"))
}
