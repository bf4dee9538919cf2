package models

type BeginCheckoutRequest struct {
	UID       string `json:"uid" binding:"required"`
	SessionID string `json:"sessionId" binding:"required"`
	Address   string `json:"address" binding:"required"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID string `json:"gatewayOrderId" binding:"required"`
	PaymentID      string `json:"paymentId" binding:"required"`
	Signature      string `json:"signature" binding:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}
