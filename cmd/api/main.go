package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"b2bportal/internal/config"
	"b2bportal/internal/database"
	"b2bportal/internal/events"
	"b2bportal/internal/middleware"
	"b2bportal/internal/modules/admin"
	"b2bportal/internal/modules/auth"
	"b2bportal/internal/modules/cart"
	"b2bportal/internal/modules/catalog"
	"b2bportal/internal/modules/order"
	"b2bportal/internal/modules/stock"
	"b2bportal/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	clientRepo := repository.NewClientRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(clientRepo, sessionRepo, resetRepo,
		cfg.ClientSessionTTL, cfg.ResetTokenTTL, cfg.ResetTokenSecret)
	authHandler := auth.NewHandler(authService, auth.CookieSettings{
		Secure:   cfg.CookieSecure,
		SameSite: cfg.SameSite(),
		Domain:   cfg.CookieDomain,
		TTL:      cfg.ClientSessionTTL,
	}, !cfg.IsProd())

	catalogService := catalog.NewService(categoryRepo, productRepo, variantRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	cartService := cart.NewService(cartRepo, productRepo, variantRepo)
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(orderRepo, cartRepo, productRepo, variantRepo, clientRepo, db, hub)
	orderHandler := order.NewHandler(orderService)

	stockService := stock.NewService(variantRepo, db, hub)
	stockHandler := stock.NewHandler(stockService)

	adminService := admin.NewService(adminRepo, sessionRepo, clientRepo,
		categoryRepo, productRepo, variantRepo, orderRepo, cfg.AdminSessionTTL)
	adminHandler := admin.NewHandler(adminService, orderService, hub, admin.CookieSettings{
		Secure:   cfg.CookieSecure,
		SameSite: cfg.SameSite(),
		Domain:   cfg.CookieDomain,
		TTL:      cfg.AdminSessionTTL,
	})
	wsHandler := admin.NewWSHandler(hub)

	sessionAuth := middleware.NewSessionAuth(sessionRepo, clientRepo, adminRepo)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)

		// client session required
		client := v1.Group("/")
		client.Use(sessionAuth.RequireClient())
		{
			authHandler.RegisterProtectedRoutes(client)
			cartHandler.RegisterRoutes(client)
			orderHandler.RegisterRoutes(client)
		}

		// admin session required
		back := v1.Group("/admin")
		back.Use(sessionAuth.RequireAdmin())
		{
			adminHandler.RegisterProtectedRoutes(back)
			stockHandler.RegisterRoutes(back)
			wsHandler.RegisterRoutes(back)
		}
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
