package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/service"
	"github.com/jonylazarte/ecommerce-page/pkg/middleware"
)

// Deps bundles everything the route tree needs. Handlers depend on service
// and gateway interfaces so tests can swap in fakes.
type Deps struct {
	Auth      service.AuthService
	Users     service.UserService
	Catalog   service.CatalogService
	Orders    service.OrderService
	Settings  service.SettingsService
	Dashboard service.DashboardService
	Email     service.EmailService

	Stripe      StripeGateway
	PayPal      PayPalGateway
	MercadoPago MercadoPagoGateway
}

func RegisterRoutes(rg *gin.RouterGroup, deps Deps) {
	// Initialize handlers
	authHandler := NewAuthHandler(deps.Auth)
	productHandler := NewProductHandler(deps.Catalog)
	orderHandler := NewOrderHandler(deps.Orders, deps.Users, deps.Email)
	paymentHandler := NewPaymentHandler(deps.Orders, deps.Users, deps.Email,
		deps.Stripe, deps.PayPal, deps.MercadoPago)
	adminHandler := NewAdminHandler(deps.Users, deps.Catalog, deps.Orders,
		deps.Settings, deps.Dashboard)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(deps.Auth)

	// Auth routes
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authMiddleware.SessionAuth(), authHandler.Logout)
		auth.GET("/me", authMiddleware.SessionAuth(), authHandler.Me)
	}

	// Public catalog routes
	products := rg.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
	}

	// Provider webhooks authenticate by signature or provider re-fetch,
	// never by session.
	webhooks := rg.Group("/payments")
	{
		webhooks.POST("/stripe/webhook", paymentHandler.StripeWebhook)
		webhooks.POST("/mercadopago/webhook", paymentHandler.MercadoPagoWebhook)
	}

	// Protected routes
	api := rg.Group("/")
	api.Use(authMiddleware.SessionAuth())
	{
		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.ListOwn)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/stripe/intent", paymentHandler.CreateStripeIntent)
			payments.POST("/paypal/verify", paymentHandler.VerifyPayPal)
			payments.POST("/mercadopago/preference", paymentHandler.CreateMercadoPagoPreference)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.POST("/products/import", adminHandler.ImportProducts)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PUT("/orders/:id", adminHandler.UpdateOrder)

			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.SaveSettings)
		}
	}
}
