package v1

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v78"

	"github.com/jonylazarte/ecommerce-page/internal/model"
)

// StripeWebhook verifies the event signature against the raw body and applies
// payment transitions. Unknown event types are acknowledged so Stripe stops
// retrying them.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, "Failed to read webhook body", gin.H{
			"error": err.Error(),
		})
		return
	}

	event, err := h.stripe.VerifyWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Webhook signature verification failed", gin.H{
			"error": err.Error(),
		})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		intent, ok := parseIntent(event)
		if !ok {
			fail(c, http.StatusBadRequest, "Malformed event payload", nil)
			return
		}
		orderID := intent.Metadata["orderId"]
		if orderID == "" {
			log.Printf("stripe event %s: payment intent %s has no order reference", event.ID, intent.ID)
			break
		}
		h.completePayment(c.Request.Context(), orderID, intent.ID)

	case "payment_intent.payment_failed":
		intent, ok := parseIntent(event)
		if !ok {
			fail(c, http.StatusBadRequest, "Malformed event payload", nil)
			return
		}
		if orderID := intent.Metadata["orderId"]; orderID != "" {
			if _, err := h.orders.MarkPaymentStatus(c.Request.Context(), orderID, model.PaymentFailed, intent.ID); err != nil {
				log.Printf("stripe event %s: marking order %s failed: %v", event.ID, orderID, err)
			}
		}

	default:
		log.Printf("stripe event %s: ignoring type %s", event.ID, event.Type)
	}

	respond(c, http.StatusOK, "Webhook processed", gin.H{"received": true})
}

func parseIntent(event stripe.Event) (*stripe.PaymentIntent, bool) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		log.Printf("stripe event %s: decoding payment intent: %v", event.ID, err)
		return nil, false
	}
	return &intent, true
}
