package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pashm-co/storefront-api/internal/checkout"
	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/mongo"
)

type fakeCheckout struct {
	beginResult *checkout.BeginResult
	beginErr    error
	verifyOrder *models.Order
	verifyErr   error
}

func (f *fakeCheckout) Begin(ctx context.Context, uid, sessionID, address string) (*checkout.BeginResult, error) {
	return f.beginResult, f.beginErr
}

func (f *fakeCheckout) Verify(ctx context.Context, gatewayOrderID, paymentID, signature string) (*models.Order, error) {
	return f.verifyOrder, f.verifyErr
}

func checkoutEngine(svc *fakeCheckout) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := &API{Checkout: svc}
	engine.POST("/api/checkout", api.BeginCheckout)
	engine.POST("/api/payment/verify", api.VerifyPayment)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) global.APIResponse {
	t.Helper()
	var resp global.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestBeginCheckoutMissingFields(t *testing.T) {
	engine := checkoutEngine(&fakeCheckout{})

	recorder := postJSON(t, engine, "/api/checkout", `{"uid": "uid_1"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, decodeResponse(t, recorder).Success)
}

func TestBeginCheckoutEmptyCart(t *testing.T) {
	engine := checkoutEngine(&fakeCheckout{beginErr: checkout.ErrEmptyCart})

	recorder := postJSON(t, engine, "/api/checkout",
		`{"uid": "uid_1", "sessionId": "sess_1", "address": "12 Lake Road, Srinagar"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeResponse(t, recorder)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "empty_cart", resp.Errors[0].Code)
}

func TestBeginCheckoutShortAddress(t *testing.T) {
	engine := checkoutEngine(&fakeCheckout{beginErr: checkout.ErrAddressTooShort})

	recorder := postJSON(t, engine, "/api/checkout",
		`{"uid": "uid_1", "sessionId": "sess_1", "address": "short"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeResponse(t, recorder)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "address", resp.Errors[0].Field)
}

func TestBeginCheckoutInternalError(t *testing.T) {
	engine := checkoutEngine(&fakeCheckout{beginErr: errors.New("gateway down")})

	recorder := postJSON(t, engine, "/api/checkout",
		`{"uid": "uid_1", "sessionId": "sess_1", "address": "12 Lake Road, Srinagar"}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	// Internal detail must not leak to the client.
	assert.NotContains(t, recorder.Body.String(), "gateway down")
}

func TestBeginCheckoutSuccess(t *testing.T) {
	engine := checkoutEngine(&fakeCheckout{beginResult: &checkout.BeginResult{
		OrderID:        "650000000000000000000001",
		GatewayOrderID: "order_gw1",
		Amount:         115000,
		Currency:       "INR",
		KeyID:          "rzp_test_key",
	}})

	recorder := postJSON(t, engine, "/api/checkout",
		`{"uid": "uid_1", "sessionId": "sess_1", "address": "12 Lake Road, Srinagar"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.True(t, resp.Success)
	assert.Contains(t, recorder.Body.String(), "order_gw1")
}

func TestVerifyPaymentSignatureMismatch(t *testing.T) {
	engine := checkoutEngine(&fakeCheckout{verifyErr: checkout.ErrSignatureMismatch})

	recorder := postJSON(t, engine, "/api/payment/verify",
		`{"gatewayOrderId": "order_gw1", "paymentId": "pay_1", "signature": "deadbeef"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeResponse(t, recorder)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "signature_mismatch", resp.Errors[0].Code)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	engine := checkoutEngine(&fakeCheckout{verifyErr: mongo.ErrOrderNotFound})

	recorder := postJSON(t, engine, "/api/payment/verify",
		`{"gatewayOrderId": "order_gone", "paymentId": "pay_1", "signature": "abc"}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestVerifyPaymentSuccess(t *testing.T) {
	engine := checkoutEngine(&fakeCheckout{verifyOrder: &models.Order{
		ID:              bson.NewObjectID(),
		RazorpayOrderID: "order_gw1",
		PaymentStatus:   models.PaymentStatusPaid,
	}})

	recorder := postJSON(t, engine, "/api/payment/verify",
		`{"gatewayOrderId": "order_gw1", "paymentId": "pay_1", "signature": "abc"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), models.PaymentStatusPaid)
}

func TestSessionMiddlewareRejectsOversizedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/cart/:sessionId", SessionMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, global.SuccessResponse(c.GetString("sessionId")))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cart/"+strings.Repeat("x", 200), nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
