package main

import (
	"flag"
	"log"

	"go-stock-tracker/internal/model"
	"go-stock-tracker/pkg/config"
	"go-stock-tracker/pkg/database"

	"github.com/joho/godotenv"
)

// Bootstraps (or resets the password of) an admin account, since the
// public register endpoint only creates regular users.
func main() {
	username := flag.String("username", "admin", "admin username")
	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var user model.User
	err = db.Where("username = ?", *username).First(&user).Error
	if err == nil {
		if err := user.SetPassword(*password); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := db.Model(&user).Updates(map[string]interface{}{
			"password": user.Password,
			"role":     model.RoleAdmin,
		}).Error; err != nil {
			log.Fatalf("Failed to update admin: %v", err)
		}
		log.Printf("Password reset for admin %q", *username)
		return
	}

	user = model.User{
		Username: *username,
		Email:    *email,
		Role:     model.RoleAdmin,
	}
	user.CreatedBy = "system"
	user.UpdatedBy = "system"
	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Admin user %q created", *username)
}
