package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"b2bportal/internal/database"
	"b2bportal/internal/domain"
	"b2bportal/internal/pkg/password"
	"b2bportal/internal/repository"
)

// Seeds a development database with demo operators, clients and a small
// catalog. Destructive: wipes existing rows first.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "portal.db"
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"order_items", "orders", "cart_items", "carts",
		"password_resets", "sessions",
		"product_variants", "products", "categories",
		"clients", "admins",
	} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()
	admins := repository.NewAdminRepository(db)
	clients := repository.NewClientRepository(db)
	categories := repository.NewCategoryRepository(db)
	products := repository.NewProductRepository(db)
	variants := repository.NewVariantRepository(db)

	log.Println("Creating admins...")
	for _, a := range []struct {
		email string
		name  string
		role  domain.AdminRole
	}{
		{"super@portal.test", "Super Admin", domain.RoleSuperAdmin},
		{"admin@portal.test", "Admin", domain.RoleAdmin},
		{"manager@portal.test", "Manager", domain.RoleManager},
	} {
		hash, err := password.Hash("admin123")
		if err != nil {
			log.Fatal(err)
		}
		if err := admins.Create(ctx, &domain.Admin{
			Email:        a.email,
			PasswordHash: hash,
			Name:         a.name,
			Role:         a.role,
			IsActive:     true,
		}); err != nil {
			log.Fatal(err)
		}
		log.Printf("admin created: %s / admin123", a.email)
	}

	log.Println("Creating clients...")
	statuses := []domain.ClientStatus{domain.ClientApproved, domain.ClientApproved, domain.ClientPending}
	for i, email := range []string{"acme@corp.test", "globex@corp.test", "initech@corp.test"} {
		hash, err := password.Hash("client123")
		if err != nil {
			log.Fatal(err)
		}
		if err := clients.Create(ctx, &domain.Client{
			Email:         email,
			PasswordHash:  hash,
			CompanyName:   fmt.Sprintf("Company %d", i+1),
			ContactPerson: fmt.Sprintf("Contact %d", i+1),
			Phone:         fmt.Sprintf("+7 777 123 45%02d", i+10),
			Status:        statuses[i],
		}); err != nil {
			log.Fatal(err)
		}
		log.Printf("client created: %s / client123 (%s)", email, statuses[i])
	}

	log.Println("Creating catalog...")
	bags := &domain.Category{Name: "Bags", Description: "Branded totes and backpacks", IsActive: true}
	drinkware := &domain.Category{Name: "Drinkware", Description: "Mugs and bottles", IsActive: true}
	for _, c := range []*domain.Category{bags, drinkware} {
		if err := categories.Create(ctx, c); err != nil {
			log.Fatal(err)
		}
	}

	tote := &domain.Product{
		CategoryID:       bags.ID,
		Name:             "Canvas Tote Bag",
		Description:      "Heavy canvas tote, screen-printable",
		BasePrice:        300,
		MinOrderQuantity: 10,
		IsCustomizable:   true,
		IsActive:         true,
	}
	mug := &domain.Product{
		CategoryID:       drinkware.ID,
		Name:             "Ceramic Mug 330ml",
		Description:      "Standard ceramic mug",
		BasePrice:        250,
		MinOrderQuantity: 24,
		IsCustomizable:   true,
		// large prints on mugs cost extra over the default table
		CustomizationOptions: json.RawMessage(`{"sizes":{"large":200}}`),
		IsActive:             true,
	}
	bottle := &domain.Product{
		CategoryID:       drinkware.ID,
		Name:             "Steel Bottle 500ml",
		Description:      "Insulated bottle, no print area",
		BasePrice:        1200,
		MinOrderQuantity: 5,
		IsCustomizable:   false,
		IsActive:         true,
	}
	for _, p := range []*domain.Product{tote, mug, bottle} {
		if err := products.Create(ctx, p); err != nil {
			log.Fatal(err)
		}
	}

	for _, v := range []*domain.ProductVariant{
		{ProductID: tote.ID, SKU: "TOTE-NV-L", Name: "Navy / Large", Price: 350, StockQuantity: 500, LowStockThreshold: 50, IsActive: true},
		{ProductID: tote.ID, SKU: "TOTE-BK-L", Name: "Black / Large", Price: 350, StockQuantity: 40, LowStockThreshold: 50, IsActive: true},
		{ProductID: mug.ID, SKU: "MUG-WH-330", Name: "White", Price: 250, StockQuantity: 1000, LowStockThreshold: 100, IsActive: true},
		{ProductID: mug.ID, SKU: "MUG-BK-330", Name: "Black", Price: 280, StockQuantity: 0, LowStockThreshold: 100, IsActive: true},
		{ProductID: bottle.ID, SKU: "BTL-SS-500", Name: "Stainless", Price: 1200, StockQuantity: 200, LowStockThreshold: 20, IsActive: true},
	} {
		if err := variants.Create(ctx, v); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed completed.")
}
