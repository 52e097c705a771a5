// Package main seeds the database: an admin account from the
// environment, plus an optional demo dataset for local development.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"sentra/internal/config"
	"sentra/internal/models"
	"sentra/internal/repositories"
	"sentra/internal/services/ingest"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("failed to initialize databases:", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	seedAdmin(adminEmail, adminPassword)

	if config.GetEnv("SEED_DEMO_DATA", "") == "true" {
		seedDemoData()
	}
}

func seedAdmin(email, password string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password:", err)
	}

	admin := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     config.GetEnv("ADMIN_NAME", "Administrator"),
		Role:     models.RoleAdmin,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin user:", err)
	}
	log.Println("admin user created:", email)
}

// seedDemoData loads a small transaction network with the patterns the
// analyzer looks for: a structuring burst into a shell company, a
// circular flow, and some ordinary commerce.
func seedDemoData() {
	svc := ingest.NewService(
		repositories.NewEntityRepository(repositories.DB),
		repositories.NewTransactionRepository(repositories.DB),
		nil,
	)

	base := time.Now().UTC().AddDate(0, 0, -30)
	records := []ingest.Record{
		// ordinary commerce
		rec("demo-001", "Acme Corp", "Jane Smith", "1250.00", base),
		rec("demo-002", "Acme Corp", "Northwind Ltd", "8420.15", base.AddDate(0, 0, 2)),
		rec("demo-003", "Northwind Ltd", "First National Bank", "3100.00", base.AddDate(0, 0, 5)),

		// structuring burst into a shell, each just under the threshold
		rec("demo-101", "Jane Smith", "Meridian Holdings", "9500.00", base.AddDate(0, 0, 10)),
		rec("demo-102", "Jane Smith", "Meridian Holdings", "9800.00", base.AddDate(0, 0, 10).Add(2*time.Hour)),
		rec("demo-103", "Jane Smith", "Meridian Holdings", "9200.00", base.AddDate(0, 0, 10).Add(5*time.Hour)),
		rec("demo-104", "Jane Smith", "Meridian Holdings", "9900.00", base.AddDate(0, 0, 11)),

		// circular flow
		rec("demo-201", "Meridian Holdings", "Offshore Ventures SA", "25000.00", base.AddDate(0, 0, 15)),
		rec("demo-202", "Offshore Ventures SA", "Meridian Holdings", "24000.00", base.AddDate(0, 0, 18)),

		// charity pass-through
		rec("demo-301", "Bright Futures Foundation", "Acme Corp", "500.00", base.AddDate(0, 0, 20)),
	}

	summary, err := svc.IngestRecords(context.Background(), records, "seed")
	if err != nil {
		log.Fatal("failed to seed demo data:", err)
	}
	log.Printf("demo data seeded: %d transactions, %d entities created, %d skipped",
		summary.Inserted, summary.Entities, summary.Skipped)
}

func rec(id, sender, receiver, amount string, ts time.Time) ingest.Record {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		log.Fatal("bad seed amount:", amount)
	}
	return ingest.Record{
		TransactionID: id,
		Sender:        sender,
		Receiver:      receiver,
		Amount:        amt,
		Currency:      "USD",
		Type:          "transfer",
		Timestamp:     ts,
	}
}
