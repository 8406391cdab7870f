package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/juicyplanet/config"
	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

// seeds a verified admin account and a few products
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required to seed the admin account")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	hash, err := helpers.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, role, is_verified)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role, is_verified = true, updated_at = now()
		RETURNING id
	`, email, hash, string(entity.RoleAdmin)).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)

	products := []entity.Product{
		{Name: "Mango Sunrise", Description: "Mango, orange and passion fruit", Category: "juice", PriceCents: 2500, Stock: 40},
		{Name: "Green Detox", Description: "Kale, cucumber, apple and ginger", Category: "juice", PriceCents: 3000, Stock: 25},
		{Name: "Pineapple Chunks", Description: "Fresh-cut pineapple, 500g", Category: "fruit", PriceCents: 1800, Stock: 60},
	}
	for _, p := range products {
		res, err := db.Exec(`
			INSERT INTO products (name, description, category, price_cents, stock)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
		`, p.Name, p.Description, p.Category, p.PriceCents, p.Stock)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", p.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			fmt.Printf("seeded product: %s\n", p.Name)
		}
	}
}
