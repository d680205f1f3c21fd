package v1

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonylazarte/ecommerce-page/internal/service"
	"github.com/jonylazarte/ecommerce-page/pkg/middleware"
)

type OrderHandler struct {
	orders service.OrderService
	users  service.UserService
	email  service.EmailService
}

func NewOrderHandler(orders service.OrderService, users service.UserService,
	email service.EmailService) *OrderHandler {
	return &OrderHandler{orders: orders, users: users, email: email}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	order, err := h.orders.Create(c.Request.Context(), userID, input)
	if err != nil {
		failErr(c, "Failed to create order", err)
		return
	}

	// Confirmation email is best effort; the order stands either way.
	if user, err := h.users.Get(c.Request.Context(), userID); err != nil {
		log.Printf("order %s: user lookup for confirmation email failed: %v", order.ID, err)
	} else if err := h.email.SendOrderConfirmation(user.Email, user.Name, order); err != nil {
		log.Printf("order %s: confirmation email failed: %v", order.ID, err)
	}

	respond(c, http.StatusCreated, "Order created successfully", order)
}

func (h *OrderHandler) ListOwn(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		failErr(c, "Failed to list orders", err)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}
