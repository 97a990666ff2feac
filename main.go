package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/UchinthaB/SDP-Project-sub000/auth"
	"github.com/UchinthaB/SDP-Project-sub000/models"
	"github.com/UchinthaB/SDP-Project-sub000/notify"
	"github.com/UchinthaB/SDP-Project-sub000/routes"
)

func main() {
	log.Println("Starting juice bar API...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.JuiceBar{},
		&models.Product{},
		&models.CartEntry{},
		&models.Order{},
		&models.OrderItem{},
		&models.TokenSequence{},
		&models.Message{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// First-boot owner account
	seedOwner(db)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, notify.FromEnv())

	// Purge old cancelled orders at 3 AM daily, keep 30 days
	go startDailyPurgeAtFixedTime(db, purgeRetention(), 3, 0)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}

// seedOwner creates the first owner account from OWNER_EMAIL/OWNER_PASSWORD
// when no owner exists yet.
func seedOwner(db *gorm.DB) {
	email := os.Getenv("OWNER_EMAIL")
	password := os.Getenv("OWNER_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing models.User
	err := db.Where("role = ?", models.RoleOwner).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Owner seed check failed: %v", err)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Owner seed failed: %v", err)
		return
	}
	owner := models.User{
		Name:         "Owner",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleOwner,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Printf("Owner seed failed: %v", err)
		return
	}
	log.Printf("Seeded owner account %s", email)
}

func purgeRetention() time.Duration {
	days := 30
	if v := os.Getenv("PURGE_RETENTION_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// startDailyPurgeAtFixedTime hard-deletes old cancelled orders daily at a
// fixed hour.
func startDailyPurgeAtFixedTime(db *gorm.DB, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("Next cancelled-order purge scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		if err := purgeCancelledOrders(db, retention); err != nil {
			log.Printf("Failed to purge cancelled orders: %v", err)
		}
	}
}

// purgeCancelledOrders removes cancelled orders older than the retention
// window, items first, one transaction per order.
func purgeCancelledOrders(db *gorm.DB, retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	var orders []models.Order
	if err := db.
		Where("status = ? AND created_at < ?", models.OrderStatusCancelled, cutoff).
		Find(&orders).Error; err != nil {
		return err
	}

	for _, order := range orders {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.OrderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			log.Printf("Failed to purge order %d: %v", order.OrderID, err)
			continue
		}
		log.Printf("Purged cancelled order %d", order.OrderID)
	}
	return nil
}
