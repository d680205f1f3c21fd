package v1

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/payment"
)

func TestStripeWebhookSucceeded(t *testing.T) {
	orders := newFakeOrders(&model.Order{
		ID:            "o1",
		UserID:        "u1",
		PaymentStatus: model.PaymentPending,
	})
	env := newTestEnv(orders)

	stripe := &fakeStripe{event: stripeIntentEvent("payment_intent.succeeded", "pi_123", "o1")}
	env.router = routerWithStripe(env, stripe)

	w := env.do(http.MethodPost, "/api/payments/stripe/webhook", "", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	order := orders.byID["o1"]
	assert.Equal(t, model.PaymentCompleted, order.PaymentStatus)
	assert.Equal(t, "pi_123", order.PaymentIntentID)
	require.Len(t, env.email.paymentConfirmations, 1)
	assert.Equal(t, "ana@example.com", env.email.paymentConfirmations[0].To)
}

func TestStripeWebhookReplay(t *testing.T) {
	orders := newFakeOrders(&model.Order{
		ID:            "o1",
		UserID:        "u1",
		PaymentStatus: model.PaymentPending,
	})
	env := newTestEnv(orders)

	stripe := &fakeStripe{event: stripeIntentEvent("payment_intent.succeeded", "pi_123", "o1")}
	env.router = routerWithStripe(env, stripe)

	for i := 0; i < 3; i++ {
		w := env.do(http.MethodPost, "/api/payments/stripe/webhook", "", map[string]any{})
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Replays are acknowledged but only the first delivery transitions the
	// order or sends mail.
	assert.Equal(t, model.PaymentCompleted, orders.byID["o1"].PaymentStatus)
	assert.Len(t, env.email.paymentConfirmations, 1)
}

func TestStripeWebhookFailedPayment(t *testing.T) {
	orders := newFakeOrders(&model.Order{
		ID:            "o1",
		UserID:        "u1",
		PaymentStatus: model.PaymentPending,
	})
	env := newTestEnv(orders)

	stripe := &fakeStripe{event: stripeIntentEvent("payment_intent.payment_failed", "pi_123", "o1")}
	env.router = routerWithStripe(env, stripe)

	w := env.do(http.MethodPost, "/api/payments/stripe/webhook", "", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, model.PaymentFailed, orders.byID["o1"].PaymentStatus)
	assert.Empty(t, env.email.paymentConfirmations)
}

func TestStripeWebhookBadSignature(t *testing.T) {
	orders := newFakeOrders(&model.Order{ID: "o1", UserID: "u1"})
	env := newTestEnv(orders)

	stripe := &fakeStripe{verifyErr: errors.New("signature mismatch")}
	env.router = routerWithStripe(env, stripe)

	w := env.do(http.MethodPost, "/api/payments/stripe/webhook", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.PaymentStatus(""), orders.byID["o1"].PaymentStatus)
}

func TestStripeWebhookUnknownEventType(t *testing.T) {
	env := newTestEnv(newFakeOrders())

	stripe := &fakeStripe{event: stripeIntentEvent("charge.refund.updated", "pi_1", "")}
	env.router = routerWithStripe(env, stripe)

	w := env.do(http.MethodPost, "/api/payments/stripe/webhook", "", map[string]any{})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyPayPalCompleted(t *testing.T) {
	orders := newFakeOrders(&model.Order{
		ID:            "o1",
		UserID:        "u1",
		PaymentStatus: model.PaymentPending,
	})
	env := newTestEnv(orders)
	env.router = routerWithPayPal(env, &fakePayPal{
		order: &payment.PayPalOrder{ID: "PP1", Status: "COMPLETED"},
	})

	w := env.do(http.MethodPost, "/api/payments/paypal/verify", "user-token", map[string]any{
		"order_id":        "o1",
		"paypal_order_id": "PP1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.PaymentCompleted, orders.byID["o1"].PaymentStatus)
	assert.Len(t, env.email.paymentConfirmations, 1)
}

func TestVerifyPayPalNotCompleted(t *testing.T) {
	orders := newFakeOrders(&model.Order{
		ID:            "o1",
		UserID:        "u1",
		PaymentStatus: model.PaymentPending,
	})
	env := newTestEnv(orders)
	env.router = routerWithPayPal(env, &fakePayPal{
		order: &payment.PayPalOrder{ID: "PP1", Status: "PAYER_ACTION_REQUIRED"},
	})

	w := env.do(http.MethodPost, "/api/payments/paypal/verify", "user-token", map[string]any{
		"order_id":        "o1",
		"paypal_order_id": "PP1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.PaymentPending, orders.byID["o1"].PaymentStatus)
}

func TestVerifyPayPalForeignOrder(t *testing.T) {
	orders := newFakeOrders(&model.Order{
		ID:     "o1",
		UserID: "someone-else",
	})
	env := newTestEnv(orders)
	env.router = routerWithPayPal(env, &fakePayPal{
		order: &payment.PayPalOrder{ID: "PP1", Status: "COMPLETED"},
	})

	w := env.do(http.MethodPost, "/api/payments/paypal/verify", "user-token", map[string]any{
		"order_id":        "o1",
		"paypal_order_id": "PP1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMercadoPagoWebhookApproved(t *testing.T) {
	orders := newFakeOrders(&model.Order{
		ID:            "o1",
		UserID:        "u1",
		PaymentStatus: model.PaymentPending,
	})
	env := newTestEnv(orders)
	env.router = routerWithMercadoPago(env, &fakeMercadoPago{
		pay: &payment.Payment{ID: 123, Status: "approved", ExternalReference: "o1"},
	})

	w := env.do(http.MethodPost, "/api/payments/mercadopago/webhook", "", map[string]any{
		"type": "payment",
		"data": map[string]any{"id": "123"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.PaymentCompleted, orders.byID["o1"].PaymentStatus)
	assert.Len(t, env.email.paymentConfirmations, 1)
}

func TestMercadoPagoWebhookIgnoredEvent(t *testing.T) {
	orders := newFakeOrders(&model.Order{ID: "o1", UserID: "u1"})
	env := newTestEnv(orders)
	env.router = routerWithMercadoPago(env, &fakeMercadoPago{})

	w := env.do(http.MethodPost, "/api/payments/mercadopago/webhook", "", map[string]any{
		"type": "plan",
		"data": map[string]any{"id": "123"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.PaymentStatus(""), orders.byID["o1"].PaymentStatus)
}
