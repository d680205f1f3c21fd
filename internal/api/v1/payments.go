package v1

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v78"

	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/payment"
	"github.com/jonylazarte/ecommerce-page/internal/service"
	"github.com/jonylazarte/ecommerce-page/pkg/middleware"
)

// Gateways are consumed through interfaces so handlers can be exercised
// without live provider credentials.
type StripeGateway interface {
	CreateIntent(ctx context.Context, order *model.Order) (clientSecret, intentID string, err error)
	VerifyWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error)
}

type PayPalGateway interface {
	GetOrder(ctx context.Context, orderID string) (*payment.PayPalOrder, error)
}

type MercadoPagoGateway interface {
	CreatePreference(ctx context.Context, order *model.Order) (*payment.Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*payment.Payment, error)
}

type PaymentHandler struct {
	orders      service.OrderService
	users       service.UserService
	email       service.EmailService
	stripe      StripeGateway
	paypal      PayPalGateway
	mercadopago MercadoPagoGateway
}

func NewPaymentHandler(orders service.OrderService, users service.UserService,
	email service.EmailService, stripe StripeGateway, paypal PayPalGateway,
	mercadopago MercadoPagoGateway) *PaymentHandler {
	return &PaymentHandler{
		orders:      orders,
		users:       users,
		email:       email,
		stripe:      stripe,
		paypal:      paypal,
		mercadopago: mercadopago,
	}
}

// loadOwnOrder fetches the order and checks it belongs to the caller.
func (h *PaymentHandler) loadOwnOrder(c *gin.Context, orderID string) (*model.Order, bool) {
	order, err := h.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		failErr(c, "Order not found", err)
		return nil, false
	}
	if order.UserID != c.GetString(middleware.ContextUserID) {
		fail(c, http.StatusNotFound, "Order not found", nil)
		return nil, false
	}
	return order, true
}

type stripeIntentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (h *PaymentHandler) CreateStripeIntent(c *gin.Context) {
	var req stripeIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}

	order, ok := h.loadOwnOrder(c, req.OrderID)
	if !ok {
		return
	}

	clientSecret, intentID, err := h.stripe.CreateIntent(c.Request.Context(), order)
	if err != nil {
		failErr(c, "Failed to create payment", err)
		return
	}
	respond(c, http.StatusOK, "Payment intent created", gin.H{
		"client_secret":     clientSecret,
		"payment_intent_id": intentID,
	})
}

type paypalVerifyRequest struct {
	OrderID       string `json:"order_id" binding:"required"`
	PayPalOrderID string `json:"paypal_order_id" binding:"required"`
}

// VerifyPayPal re-fetches the PayPal order and only trusts a COMPLETED
// status from the provider itself.
func (h *PaymentHandler) VerifyPayPal(c *gin.Context) {
	var req paypalVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}

	order, ok := h.loadOwnOrder(c, req.OrderID)
	if !ok {
		return
	}

	paypalOrder, err := h.paypal.GetOrder(c.Request.Context(), req.PayPalOrderID)
	if err != nil {
		failErr(c, "Failed to verify payment", err)
		return
	}
	if !paypalOrder.Completed() {
		fail(c, http.StatusBadRequest, "Payment was not completed", gin.H{
			"status": paypalOrder.Status,
		})
		return
	}

	h.completePayment(c.Request.Context(), order.ID, paypalOrder.ID)
	respond(c, http.StatusOK, "Payment verified successfully", gin.H{
		"order_id":        order.ID,
		"paypal_order_id": paypalOrder.ID,
	})
}

type preferenceRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (h *PaymentHandler) CreateMercadoPagoPreference(c *gin.Context) {
	var req preferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}

	order, ok := h.loadOwnOrder(c, req.OrderID)
	if !ok {
		return
	}

	pref, err := h.mercadopago.CreatePreference(c.Request.Context(), order)
	if err != nil {
		failErr(c, "Failed to create payment preference", err)
		return
	}
	respond(c, http.StatusOK, "Preference created", gin.H{
		"preference_id": pref.ID,
		"init_point":    pref.InitPoint,
	})
}

type mercadoPagoEvent struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// MercadoPagoWebhook re-fetches the payment from the provider API before
// trusting the event, then applies the guarded transition.
func (h *PaymentHandler) MercadoPagoWebhook(c *gin.Context) {
	var event mercadoPagoEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		fail(c, http.StatusBadRequest, "Invalid webhook payload", gin.H{
			"error": err.Error(),
		})
		return
	}
	if event.Type != "payment" || event.Data.ID == "" {
		respond(c, http.StatusOK, "Event ignored", nil)
		return
	}

	pay, err := h.mercadopago.GetPayment(c.Request.Context(), event.Data.ID)
	if err != nil {
		failErr(c, "Failed to fetch payment", err)
		return
	}
	if pay.Approved() && pay.ExternalReference != "" {
		h.completePayment(c.Request.Context(), pay.ExternalReference, event.Data.ID)
	}
	respond(c, http.StatusOK, "Webhook processed", nil)
}

// completePayment applies the guarded COMPLETED transition and sends the
// payment confirmation email exactly once per transition. Email failures are
// logged and dropped.
func (h *PaymentHandler) completePayment(ctx context.Context, orderID, intentID string) {
	applied, err := h.orders.MarkPaymentStatus(ctx, orderID, model.PaymentCompleted, intentID)
	if err != nil {
		log.Printf("order %s: payment status update failed: %v", orderID, err)
		return
	}
	if !applied {
		return
	}

	order, err := h.orders.Get(ctx, orderID)
	if err != nil {
		log.Printf("order %s: reload after payment failed: %v", orderID, err)
		return
	}
	user, err := h.users.Get(ctx, order.UserID)
	if err != nil {
		log.Printf("order %s: user lookup for confirmation email failed: %v", orderID, err)
		return
	}
	if err := h.email.SendPaymentConfirmation(user.Email, user.Name, order); err != nil {
		log.Printf("order %s: confirmation email failed: %v", orderID, err)
	}
}
