package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/jonylazarte/ecommerce-page/internal/api/v1"
	"github.com/jonylazarte/ecommerce-page/internal/app"
	"github.com/jonylazarte/ecommerce-page/internal/db"
	"github.com/jonylazarte/ecommerce-page/internal/payment"
	"github.com/jonylazarte/ecommerce-page/internal/repository/orders"
	"github.com/jonylazarte/ecommerce-page/internal/repository/products"
	"github.com/jonylazarte/ecommerce-page/internal/repository/sessions"
	"github.com/jonylazarte/ecommerce-page/internal/repository/settings"
	"github.com/jonylazarte/ecommerce-page/internal/repository/users"
	"github.com/jonylazarte/ecommerce-page/internal/service"
	"github.com/jonylazarte/ecommerce-page/pkg/middleware"
)

const requestsPerMinute = 100

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := app.LoadConfig()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := users.NewPostgresRepository(conn)
	sessionRepo := sessions.NewPostgresRepository(conn)
	productRepo := products.NewPostgresRepository(conn)
	orderRepo := orders.NewPostgresRepository(conn)
	settingRepo := settings.NewPostgresRepository(conn)

	settingsService := service.NewSettingsService(settingRepo)

	deps := v1.Deps{
		Auth:      service.NewAuthService(userRepo, sessionRepo, cfg.JWTSecret),
		Users:     service.NewUserService(userRepo),
		Catalog:   service.NewCatalogService(productRepo),
		Orders:    service.NewOrderService(orderRepo, productRepo),
		Settings:  settingsService,
		Dashboard: service.NewDashboardService(orderRepo, productRepo, userRepo),
		Email:     service.NewEmailService(cfg),

		Stripe:      payment.NewStripe(cfg, settingsService),
		PayPal:      payment.NewPayPal(cfg, settingsService),
		MercadoPago: payment.NewMercadoPago(cfg, settingsService),
	}

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.BaseURL))
	r.Use(middleware.NewRateLimiter(requestsPerMinute, time.Minute).Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1.RegisterRoutes(r.Group("/api"), deps)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
