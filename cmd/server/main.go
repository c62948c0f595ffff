package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/quickmart/backend/internal/cart"
	"github.com/quickmart/backend/internal/catalog"
	"github.com/quickmart/backend/internal/config"
	"github.com/quickmart/backend/internal/coupon"
	"github.com/quickmart/backend/internal/handlers"
	"github.com/quickmart/backend/internal/middleware"
	"github.com/quickmart/backend/internal/receipt"
	"github.com/quickmart/backend/internal/service"
	"github.com/quickmart/backend/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting quickmart api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Seed the catalog and coupon registry
	cat := catalog.Default()
	registry := coupon.DefaultRegistry()
	log.Info("catalog seeded",
		"products", len(cat.All()),
		"categories", len(cat.Categories()),
		"coupon_codes", registry.Stats()["total_codes"],
	)

	// Cart store with idle-cart reaping so abandoned reservations return
	// to the catalog
	store := cart.NewStore(cat)

	reapCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go store.StartReaper(reapCtx, cfg.Cart.ReapInterval, cfg.Cart.IdleTTL, log)

	// Initialize services
	catalogService := service.NewCatalogService(cat)
	cartService := service.NewCartService(store, registry)
	calc := receipt.NewCalculator(cfg.Pricing.TaxRate, cfg.Pricing.LoyaltyStep, cfg.Pricing.PointsPerStep)
	checkoutService := service.NewCheckoutService(cartService, calc)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(catalogService, log)
	couponHandler := handlers.NewCouponHandler(registry, log)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints (open)
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/search", productHandler.SearchProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/category", productHandler.ListCategories)

		// Coupon endpoints (open)
		r.Get("/coupon/stats", couponHandler.GetStats)
		r.Get("/coupon/{couponCode}", couponHandler.ValidateCoupon)

		// Cart and checkout endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))

			r.Post("/cart", cartHandler.CreateCart)
			r.Get("/cart/{cartId}", cartHandler.GetCart)
			r.Post("/cart/{cartId}/items", cartHandler.AddItem)
			r.Delete("/cart/{cartId}/items/{productId}", cartHandler.RemoveItem)
			r.Post("/cart/{cartId}/coupon", cartHandler.ApplyCoupon)
			r.Delete("/cart/{cartId}/coupon", cartHandler.RemoveCoupon)
			r.Get("/cart/{cartId}/receipt", cartHandler.PreviewReceipt)
			r.Post("/cart/{cartId}/checkout", cartHandler.Checkout)
			r.Post("/cart/{cartId}/cancel", cartHandler.Cancel)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopReaper()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
